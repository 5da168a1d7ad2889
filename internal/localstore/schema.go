package localstore

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		// Single-row table: the console holds at most one identity.
		`CREATE TABLE IF NOT EXISTS credentials (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			role TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			saved_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_log (
			id TEXT PRIMARY KEY,
			attempt_id INTEGER NOT NULL UNIQUE,
			quiz_id INTEGER NOT NULL,
			quiz_title TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			started_at_unix INTEGER NOT NULL,
			completed_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_log_completed_at ON attempt_log(completed_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
