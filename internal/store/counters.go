package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TopSymbol is the most-counted card for a day.
type TopSymbol struct {
	CardKey string
	Count   int
}

// TopSymbolToday returns the card with the highest counter for the given
// UTC date, or ok=false when no replies were counted that day. Ties are
// broken by sqlite's scan order, not by any documented rule; callers
// must not rely on which of two equal counts wins.
func (s *Store) TopSymbolToday(ctx context.Context, day string) (TopSymbol, bool, error) {
	var top TopSymbol
	err := s.db.QueryRowContext(ctx,
		`SELECT card_key, count FROM counters WHERE date = ? ORDER BY count DESC LIMIT 1`,
		day).Scan(&top.CardKey, &top.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return TopSymbol{}, false, nil
	}
	if err != nil {
		return TopSymbol{}, false, fmt.Errorf("query top symbol: %w", err)
	}
	return top, true, nil
}

// CounterFor returns the counter value for one card on one UTC date.
// Missing rows read as zero.
func (s *Store) CounterFor(ctx context.Context, day, cardKey string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM counters WHERE date = ? AND card_key = ?`,
		day, cardKey).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query counter: %w", err)
	}
	return count, nil
}
