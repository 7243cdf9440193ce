package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Usage is the rolling per-day reply budget state, reconciled against
// the current UTC date at the start of every run.
type Usage struct {
	Day  string
	Used int
}

func (s *Store) getMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) setMeta(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

// Watermark returns the last-checked timestamp for a video, or ok=false
// when the video was never scanned.
func (s *Store) Watermark(ctx context.Context, videoID string) (time.Time, bool, error) {
	raw, ok, err := s.getMeta(ctx, "last_checked_"+videoID)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse watermark %q: %w", raw, err)
	}
	return ts, true, nil
}

// SetWatermark advances the last-checked timestamp for a video.
func (s *Store) SetWatermark(ctx context.Context, videoID string, ts time.Time) error {
	return s.setMeta(ctx, "last_checked_"+videoID, ts.UTC().Format(time.RFC3339Nano))
}

// DailyUsage loads the budget counter for today. When the stored day
// differs from today the counter rolls over: both keys are rewritten and
// a zeroed usage is returned.
func (s *Store) DailyUsage(ctx context.Context, today string) (Usage, error) {
	day, _, err := s.getMeta(ctx, "day")
	if err != nil {
		return Usage{}, err
	}
	if day != today {
		usage := Usage{Day: today, Used: 0}
		if err := s.SetDailyUsage(ctx, usage); err != nil {
			return Usage{}, err
		}
		return usage, nil
	}
	raw, ok, err := s.getMeta(ctx, "replies_used_today")
	if err != nil {
		return Usage{}, err
	}
	used := 0
	if ok {
		used, err = strconv.Atoi(raw)
		if err != nil {
			return Usage{}, fmt.Errorf("parse replies_used_today %q: %w", raw, err)
		}
	}
	return Usage{Day: today, Used: used}, nil
}

// SetDailyUsage persists the budget counter.
func (s *Store) SetDailyUsage(ctx context.Context, usage Usage) error {
	if err := s.setMeta(ctx, "day", usage.Day); err != nil {
		return err
	}
	return s.setMeta(ctx, "replies_used_today", strconv.Itoa(usage.Used))
}
