// Package cli is the interactive console: the screens of the quiz client
// rendered as commands over a line-based terminal. Command guards mirror
// the routing guards of a browser client: user commands need an identity,
// admin commands need the admin role, and a failed guard points the user at
// login instead of erroring.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"quiz-console/internal/api"
	"quiz-console/internal/identity"
	"quiz-console/internal/localstore"
)

type App struct {
	client *api.Client
	ident  *identity.Manager
	store  *localstore.Store

	out   io.Writer
	lines <-chan string

	// quizCache holds the last listed quiz summaries so "take <n>" can
	// start by list position and skip the redundant summary fetch.
	quizCache []api.Quiz
}

func New(client *api.Client, ident *identity.Manager, store *localstore.Store) *App {
	return &App{
		client: client,
		ident:  ident,
		store:  store,
	}
}

// Run drives the command loop until exit or end of input. All input flows
// through a single channel so the quiz-taking screen can race user lines
// against countdown expiry.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	a.out = out

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()
	a.lines = lines

	fmt.Fprintln(out, "quiz-console")
	if user, ok := a.ident.User(); ok {
		fmt.Fprintf(out, "signed in as %s (%s)\n", user.Name, user.Role)
	}
	a.printHelp()

	for {
		fmt.Fprint(out, "\n> ")
		line, ok := <-lines
		if !ok {
			fmt.Fprintln(out)
			return <-scanErr
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			a.printHelp()
		case "exit", "quit":
			return nil
		case "login":
			a.runLogin(ctx, args)
		case "register":
			a.runRegister(ctx)
		case "logout":
			a.runLogout(ctx)
		case "whoami":
			a.runWhoami()
		case "quizzes":
			if a.requireUser() {
				a.runQuizzes(ctx, args)
			}
		case "take":
			if a.requireUser() {
				a.runTake(ctx, args)
			}
		case "history":
			if a.requireUser() {
				a.runHistory(ctx)
			}
		case "categories", "category":
			if a.requireAdmin() {
				a.runCategories(ctx, args)
			}
		case "difficulties", "difficulty":
			if a.requireAdmin() {
				a.runDifficulties(ctx, args)
			}
		case "quiz":
			if a.requireAdmin() {
				a.runQuizAdmin(ctx, args)
			}
		case "questions", "question":
			if a.requireAdmin() {
				a.runQuestions(ctx, args)
			}
		case "answers", "answer":
			if a.requireAdmin() {
				a.runAnswers(ctx, args)
			}
		case "attempts":
			if a.requireAdmin() {
				a.runAttemptReports(ctx, args)
			}
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  help")
	fmt.Fprintln(a.out, "  login [email] | register | logout | whoami")
	fmt.Fprintln(a.out, "  quizzes [category] [difficulty]")
	fmt.Fprintln(a.out, "  take <quiz#|quiz_id>")
	fmt.Fprintln(a.out, "  history")
	if a.ident.IsAdmin() {
		fmt.Fprintln(a.out, "  categories | category add|rename|delete ...")
		fmt.Fprintln(a.out, "  difficulties | difficulty add|rename|delete ...")
		fmt.Fprintln(a.out, "  quiz create")
		fmt.Fprintln(a.out, "  questions [quiz_id] | question add|delete ...")
		fmt.Fprintln(a.out, "  answers <question_id> | answer add|delete ...")
		fmt.Fprintln(a.out, "  attempts [page]")
	}
	fmt.Fprintln(a.out, "  exit")
}

// requireUser is the private-route guard: commands behind it need any
// authenticated identity.
func (a *App) requireUser() bool {
	if _, ok := a.ident.User(); ok {
		return true
	}
	fmt.Fprintln(a.out, "Please login first (login <email>).")
	return false
}

// requireAdmin gates the management surface on the admin role.
func (a *App) requireAdmin() bool {
	if !a.requireUser() {
		return false
	}
	if a.ident.IsAdmin() {
		return true
	}
	fmt.Fprintln(a.out, "Admin access required.")
	return false
}

// readLine prompts and consumes one line from the shared input channel.
func (a *App) readLine(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	line, ok := <-a.lines
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// printError renders any failure the way the screens do: the backend's own
// message when it sent one, a reachability hint for transport failures, and
// the error text otherwise.
func (a *App) printError(err error) {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "error: %s\n", apiErr.Message)
	case errors.Is(err, api.ErrServiceUnavailable):
		fmt.Fprintln(a.out, "error: quiz service unavailable, try again")
	default:
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}
