package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AttemptRecord struct {
	AttemptID      int64
	QuizID         int64
	QuizTitle      string
	Score          int
	TotalQuestions int
	StartedAt      time.Time
	CompletedAt    time.Time
}

// RecordAttempt upserts one finished attempt, keyed by the server-issued
// attempt id so re-fetches never duplicate rows.
func (s *Store) RecordAttempt(ctx context.Context, record AttemptRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO attempt_log (id, attempt_id, quiz_id, quiz_title, score, total_questions, started_at_unix, completed_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(attempt_id) DO UPDATE SET
			quiz_title = excluded.quiz_title,
			score = excluded.score,
			total_questions = excluded.total_questions,
			started_at_unix = excluded.started_at_unix,
			completed_at_unix = excluded.completed_at_unix`,
		uuid.NewString(),
		record.AttemptID,
		record.QuizID,
		record.QuizTitle,
		record.Score,
		record.TotalQuestions,
		record.StartedAt.UTC().Unix(),
		record.CompletedAt.UTC().Unix(),
	)
	return err
}

// RefreshAttempts replaces the cache with the backend's attempt list in one
// transaction, keeping the cache an exact snapshot of the authoritative
// copy.
func (s *Store) RefreshAttempts(ctx context.Context, records []AttemptRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attempt_log`); err != nil {
		return err
	}

	for _, record := range records {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO attempt_log (id, attempt_id, quiz_id, quiz_title, score, total_questions, started_at_unix, completed_at_unix)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			record.AttemptID,
			record.QuizID,
			record.QuizTitle,
			record.Score,
			record.TotalQuestions,
			record.StartedAt.UTC().Unix(),
			record.CompletedAt.UTC().Unix(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentAttempts lists cached attempts, most recently completed first.
func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]AttemptRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT attempt_id, quiz_id, quiz_title, score, total_questions, started_at_unix, completed_at_unix
		 FROM attempt_log
		 ORDER BY completed_at_unix DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]AttemptRecord, 0)
	for rows.Next() {
		var (
			record        AttemptRecord
			startedUnix   int64
			completedUnix int64
		)
		if err := rows.Scan(
			&record.AttemptID,
			&record.QuizID,
			&record.QuizTitle,
			&record.Score,
			&record.TotalQuestions,
			&startedUnix,
			&completedUnix,
		); err != nil {
			return nil, err
		}
		record.StartedAt = time.Unix(startedUnix, 0).UTC()
		record.CompletedAt = time.Unix(completedUnix, 0).UTC()
		records = append(records, record)
	}

	return records, rows.Err()
}
