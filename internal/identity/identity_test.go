package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-console/internal/api"
	"quiz-console/internal/localstore"
)

func openTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginEstablishesAndPersistsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tkn-abc",
			"user":  map[string]string{"name": "Alice", "email": "alice@example.com", "role": "admin"},
		})
	}))
	defer server.Close()

	store := openTestStore(t)
	manager := NewManager(store)
	client := api.NewClient(server.URL, server.Client(), manager.Token)

	user, err := manager.Login(context.Background(), client, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Role != "admin" || !manager.IsAdmin() {
		t.Fatalf("role = %q, IsAdmin = %t", user.Role, manager.IsAdmin())
	}
	if manager.Token() != "tkn-abc" {
		t.Fatalf("token = %q", manager.Token())
	}

	// A fresh manager over the same store restores the identity.
	restored := NewManager(store)
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Token() != "tkn-abc" || restored.Role() != "admin" {
		t.Fatalf("restored token=%q role=%q", restored.Token(), restored.Role())
	}
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	store := openTestStore(t)
	expired := signedToken(t, jwt.MapClaims{
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	if err := store.SaveCredentials(context.Background(), localstore.Credentials{
		Token: expired, Role: "user", Name: "Bob", Email: "bob@example.com",
	}); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	manager := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, ok := manager.User(); ok {
		t.Fatalf("expired identity must not be restored")
	}
	if _, ok, _ := store.LoadCredentials(context.Background()); ok {
		t.Fatalf("expired credentials must be cleared from the store")
	}
}

func TestRestorePrefersTokenRoleClaim(t *testing.T) {
	store := openTestStore(t)
	token := signedToken(t, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	// Stored role drifted; the token claim wins.
	if err := store.SaveCredentials(context.Background(), localstore.Credentials{
		Token: token, Role: "user", Name: "Carol", Email: "carol@example.com",
	}); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	manager := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !manager.IsAdmin() {
		t.Fatalf("role claim from token must override the stored role")
	}
}

func TestRestoreKeepsOpaqueToken(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveCredentials(context.Background(), localstore.Credentials{
		Token: "1|sanctum-opaque-token", Role: "user", Name: "Dave", Email: "dave@example.com",
	}); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	manager := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if manager.Token() != "1|sanctum-opaque-token" {
		t.Fatalf("opaque tokens must be restored as-is for the backend to judge")
	}
}

func TestLogoutClearsLocallyEvenWhenRevocationFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/login" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tkn-abc",
				"user":  map[string]string{"name": "Alice", "email": "alice@example.com", "role": "user"},
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "revocation backend down"})
	}))
	defer server.Close()

	store := openTestStore(t)
	manager := NewManager(store)
	client := api.NewClient(server.URL, server.Client(), manager.Token)

	if _, err := manager.Login(context.Background(), client, "alice@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	err := manager.Logout(context.Background(), client)
	if err == nil {
		t.Fatalf("expected the revocation failure to be reported")
	}
	if manager.Token() != "" {
		t.Fatalf("token must be cleared regardless of revocation outcome")
	}
	if _, ok, _ := store.LoadCredentials(context.Background()); ok {
		t.Fatalf("stored credentials must be cleared regardless of revocation outcome")
	}
}
