package cli

import (
	"context"
	"fmt"
)

func (a *App) runLogin(ctx context.Context, args []string) {
	email := ""
	if len(args) > 1 {
		email = args[1]
	}
	if email == "" {
		value, ok := a.readLine("email: ")
		if !ok {
			return
		}
		email = value
	}

	password, ok := a.readLine("password: ")
	if !ok {
		return
	}

	user, err := a.ident.Login(ctx, a.client, email, password)
	if err != nil {
		a.printError(err)
		return
	}

	// The identity-appropriate landing screen, console style.
	if user.Role == "admin" {
		fmt.Fprintf(a.out, "Welcome back, %s. Admin commands are available (help).\n", user.Name)
	} else {
		fmt.Fprintf(a.out, "Welcome back, %s. Try 'quizzes' to browse.\n", user.Name)
	}
}

func (a *App) runRegister(ctx context.Context) {
	name, ok := a.readLine("name: ")
	if !ok {
		return
	}
	email, ok := a.readLine("email: ")
	if !ok {
		return
	}
	role, ok := a.readLine("role (user/admin): ")
	if !ok {
		return
	}
	if role == "" {
		role = "user"
	}
	password, ok := a.readLine("password: ")
	if !ok {
		return
	}
	confirmation, ok := a.readLine("confirm password: ")
	if !ok {
		return
	}

	user, err := a.ident.Register(ctx, a.client, name, email, role, password, confirmation)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "Registered and signed in as %s (%s).\n", user.Name, user.Role)
}

func (a *App) runLogout(ctx context.Context) {
	if _, ok := a.ident.User(); !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}
	if err := a.ident.Logout(ctx, a.client); err != nil {
		// Local identity is gone either way; the revocation failure is
		// informational.
		fmt.Fprintf(a.out, "Signed out locally (server revocation failed: %v).\n", err)
		return
	}
	fmt.Fprintln(a.out, "Signed out.")
}

func (a *App) runWhoami() {
	user, ok := a.ident.User()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
}
