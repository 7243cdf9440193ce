package bot

import (
	"context"
	"time"

	"github.com/katalystkat/lucenttarotreadings/internal/deck"
)

// intake collects every new candidate comment published strictly after
// the watermark, across all pages, in remote-delivery order (newest
// first). A failure mid-intake returns the candidates gathered so far
// together with the error; the caller must then leave the watermark
// untouched so the unseen window is re-scanned next run.
func (b *Bot) intake(ctx context.Context, videoID string, watermark time.Time, haveWatermark bool) ([]Candidate, error) {
	var candidates []Candidate
	pageToken := ""
	for {
		comments, nextToken, err := b.api.CommentPage(ctx, videoID, pageToken)
		if err != nil {
			return candidates, err
		}

		fresh := 0
		for _, comment := range comments {
			if haveWatermark && !comment.PublishedAt.After(watermark) {
				continue
			}
			fresh++

			key, ok := deck.Match(comment.Text)
			if !ok {
				continue
			}
			if _, mapped := b.cards.Lookup(key); !mapped {
				// Provisionally excluded: the card stays unmatched until
				// the mapping table gains an entry for it.
				continue
			}
			replied, err := b.state.HasReply(ctx, comment.CommentID)
			if err != nil {
				return candidates, err
			}
			if replied {
				continue
			}
			cooled, err := b.state.UserOnCooldown(ctx, comment.UserID, b.opts.Cooldown, b.now())
			if err != nil {
				return candidates, err
			}
			if cooled {
				continue
			}
			candidates = append(candidates, Candidate{
				CommentID: comment.CommentID,
				UserID:    comment.UserID,
				CardKey:   key,
			})
		}

		if fresh == 0 || nextToken == "" {
			return candidates, nil
		}
		pageToken = nextToken
	}
}
