package bot

import (
	"context"

	"github.com/katalystkat/lucenttarotreadings/internal/store"
)

// dispatch sends replies for at most
// min(per-run cap, daily budget - used, len(candidates)) candidates, in
// the order intake produced them. Each successful remote reply is
// recorded atomically before the next one is attempted. A transport
// failure stops the rest of the batch immediately; replies already
// recorded stand, since the remote side cannot be rolled back.
func (b *Bot) dispatch(ctx context.Context, videoID string, candidates []Candidate, usage store.Usage) (int, store.Usage, error) {
	allow := b.opts.PerRunCap
	if remaining := b.opts.DailyBudget - usage.Used; remaining < allow {
		allow = remaining
	}
	if len(candidates) < allow {
		allow = len(candidates)
	}
	if allow <= 0 {
		return 0, usage, nil
	}

	completed := 0
	for _, candidate := range candidates[:allow] {
		url, _ := b.cards.Lookup(candidate.CardKey)
		text := RenderReply(candidate.CardKey, url)
		if err := b.api.InsertReply(ctx, candidate.CommentID, text); err != nil {
			return completed, usage, err
		}
		if err := b.state.RecordReply(ctx, candidate.CommentID, videoID, candidate.UserID, candidate.CardKey, b.now()); err != nil {
			return completed, usage, err
		}
		completed++
		usage.Used++
	}
	return completed, usage, nil
}
