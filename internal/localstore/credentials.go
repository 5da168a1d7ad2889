package localstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Credentials struct {
	Token string
	Role  string
	Name  string
	Email string
}

// SaveCredentials replaces the stored identity.
func (s *Store) SaveCredentials(ctx context.Context, creds Credentials) error {
	if creds.Token == "" {
		return errors.New("token is required")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO credentials (id, token, role, name, email, saved_at_unix)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			role = excluded.role,
			name = excluded.name,
			email = excluded.email,
			saved_at_unix = excluded.saved_at_unix`,
		creds.Token,
		creds.Role,
		creds.Name,
		creds.Email,
		time.Now().UTC().Unix(),
	)
	return err
}

// LoadCredentials returns the stored identity, if any.
func (s *Store) LoadCredentials(ctx context.Context) (Credentials, bool, error) {
	var creds Credentials
	err := s.db.QueryRowContext(
		ctx,
		`SELECT token, role, name, email FROM credentials WHERE id = 1`,
	).Scan(&creds.Token, &creds.Role, &creds.Name, &creds.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}
	return creds, true, nil
}

func (s *Store) ClearCredentials(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`)
	return err
}
