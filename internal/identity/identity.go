// Package identity holds the authenticated user for the lifetime of the
// process and persists the token + role across runs. It enforces nothing by
// itself; command guards read it and the backend rejects stale tokens.
package identity

import (
	"context"
	"sync"

	"quiz-console/internal/api"
	"quiz-console/internal/localstore"
)

const RoleAdmin = "admin"

type Manager struct {
	store *localstore.Store

	mu      sync.RWMutex
	token   string
	user    api.User
	present bool
}

func NewManager(store *localstore.Store) *Manager {
	return &Manager{store: store}
}

// Token implements api.TokenSource: it yields "" when logged out, which
// omits the Authorization header entirely.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) User() (api.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.present
}

func (m *Manager) Role() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return ""
	}
	return m.user.Role
}

func (m *Manager) IsAdmin() bool {
	return m.Role() == RoleAdmin
}

// Restore loads the persisted identity on startup. A token whose claims show
// it already expired is discarded rather than restored; a token that is not
// a JWT at all is kept as-is and left to the backend to judge.
func (m *Manager) Restore(ctx context.Context) error {
	creds, ok, err := m.store.LoadCredentials(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	claims := inspectToken(creds.Token)
	if claims.expired {
		return m.store.ClearCredentials(ctx)
	}
	if claims.role != "" {
		creds.Role = claims.role
	}

	m.set(creds.Token, api.User{Name: creds.Name, Email: creds.Email, Role: creds.Role})
	return nil
}

// Login authenticates through the backend and persists the result.
func (m *Manager) Login(ctx context.Context, client *api.Client, email, password string) (api.User, error) {
	creds, err := client.Login(ctx, email, password)
	if err != nil {
		return api.User{}, err
	}
	return creds.User, m.establish(ctx, creds)
}

// Register creates an account and signs in with the returned credentials.
func (m *Manager) Register(ctx context.Context, client *api.Client, name, email, role, password, passwordConfirmation string) (api.User, error) {
	creds, err := client.Register(ctx, name, email, role, password, passwordConfirmation)
	if err != nil {
		return api.User{}, err
	}
	return creds.User, m.establish(ctx, creds)
}

// Logout clears the local identity even when the backend revocation call
// fails; the token is client-local state and discarding it always works.
func (m *Manager) Logout(ctx context.Context, client *api.Client) error {
	revokeErr := client.Logout(ctx)

	m.mu.Lock()
	m.token = ""
	m.user = api.User{}
	m.present = false
	m.mu.Unlock()

	if err := m.store.ClearCredentials(ctx); err != nil {
		return err
	}
	return revokeErr
}

func (m *Manager) establish(ctx context.Context, creds api.Credentials) error {
	m.set(creds.Token, creds.User)
	return m.store.SaveCredentials(ctx, localstore.Credentials{
		Token: creds.Token,
		Role:  creds.User.Role,
		Name:  creds.User.Name,
		Email: creds.User.Email,
	})
}

func (m *Manager) set(token string, user api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
	m.present = true
}
