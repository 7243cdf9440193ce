package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReplyRecord is one recorded outbound reply, keyed by the remote
// comment id. Its presence is the dedup signal: at most one record per
// comment ever exists.
type ReplyRecord struct {
	CommentID string
	VideoID   string
	UserID    string
	CardKey   string
	RepliedAt time.Time
}

// HasReply reports whether a reply for this comment was already
// recorded.
func (s *Store) HasReply(ctx context.Context, commentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM replies WHERE comment_id = ?`, commentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup reply: %w", err)
	}
	return true, nil
}

// RecordReply records a successful reply in one transaction: the dedup
// row, the user's new cooldown timestamp, and today's counter for the
// card. All-or-nothing; on error no partial state is visible.
func (s *Store) RecordReply(ctx context.Context, commentID, videoID, userID, cardKey string, now time.Time) error {
	now = now.UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record reply: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO replies (comment_id, video_id, user_id, card_key, replied_at)
		 VALUES (?, ?, ?, ?, ?)`,
		commentID, videoID, userID, cardKey, now.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (user_id, last_reply_at) VALUES (?, ?)`,
		userID, now.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("update user cooldown: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO counters (date, card_key, count) VALUES (?, ?, 1)
		 ON CONFLICT(date, card_key) DO UPDATE SET count = count + 1`,
		now.Format(time.DateOnly), cardKey,
	); err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record reply: %w", err)
	}
	return nil
}

// UserOnCooldown reports whether the user received a reply within the
// cooldown window ending at now. A user with no record is eligible.
func (s *Store) UserOnCooldown(ctx context.Context, userID string, window time.Duration, now time.Time) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_reply_at FROM users WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user cooldown: %w", err)
	}
	last, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return false, fmt.Errorf("parse last reply time %q: %w", raw, err)
	}
	return now.UTC().Sub(last) < window, nil
}
