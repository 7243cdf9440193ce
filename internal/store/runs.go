package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartRun opens an audit row for one invocation and returns its id.
func (s *Store) StartRun(ctx context.Context, kind string, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, started_at) VALUES (?, ?, ?)`,
		id, kind, startedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun closes a run's audit row with its outcome.
func (s *Store) FinishRun(ctx context.Context, id string, finishedAt time.Time, replied int, summary string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, replied = ?, summary = ? WHERE id = ?`,
		finishedAt.UTC().Format(time.RFC3339Nano), replied, summary, id,
	); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
