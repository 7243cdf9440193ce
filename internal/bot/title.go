package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/katalystkat/lucenttarotreadings/internal/deck"
	"github.com/katalystkat/lucenttarotreadings/internal/store"
)

// ComposeTitle renders the title line for a day's most-drawn card.
func ComposeTitle(prefix string, top store.TopSymbol) string {
	return fmt.Sprintf("%sMost drawn today: %s (%d)", prefix, deck.Pretty(top.CardKey), top.Count)
}

// RunUpdateTitle is the independently triggered aggregation path: it
// reads today's most-frequent card from the counters the reply runs
// wrote and pushes a new title to the target video. When no replies were
// counted today there is nothing to report and the remote call is
// skipped.
func (b *Bot) RunUpdateTitle(ctx context.Context) (string, error) {
	today := b.now().UTC().Format(time.DateOnly)

	top, ok, err := b.state.TopSymbolToday(ctx, today)
	if err != nil {
		return "", err
	}
	if !ok {
		return "No card counts today; not updating title.", nil
	}

	videoID, err := b.resolveVideo(ctx)
	if err != nil {
		b.logger.Error("video lookup failed", "error", err)
		return "No video found.", nil
	}
	if videoID == "" {
		return "No video found.", nil
	}

	newTitle := ComposeTitle(b.opts.TitlePrefix, top)

	snippet, found, err := b.api.VideoSnippet(ctx, videoID)
	if err != nil {
		b.logger.Error("video metadata read failed", "error", err, "video_id", videoID)
		return "", err
	}
	if !found {
		return "No video found.", nil
	}
	snippet["title"] = newTitle
	if err := b.api.UpdateVideoSnippet(ctx, videoID, snippet); err != nil {
		b.logger.Error("title update failed", "error", err, "video_id", videoID)
		return "", err
	}

	b.logger.Info("title updated", "video_id", videoID, "title", newTitle)
	return "Updated title: " + newTitle, nil
}
