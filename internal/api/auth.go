package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type Credentials struct {
	Token string
	User  User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Credentials{}, errors.New("email and password are required")
	}

	var payload authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/login", loginRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: payload.Token, User: payload.User}, nil
}

func (c *Client) Register(ctx context.Context, name, email, role, password, passwordConfirmation string) (Credentials, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return Credentials{}, errors.New("name, email and password are required")
	}
	if password != passwordConfirmation {
		return Credentials{}, errors.New("password confirmation does not match")
	}

	request := registerRequest{
		Name:                 name,
		Email:                email,
		Role:                 role,
		Password:             password,
		PasswordConfirmation: passwordConfirmation,
	}
	var payload authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", request, &payload); err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: payload.Token, User: payload.User}, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil)
}
