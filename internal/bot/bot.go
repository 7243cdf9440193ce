package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalystkat/lucenttarotreadings/internal/deck"
	"github.com/katalystkat/lucenttarotreadings/internal/store"
	"github.com/katalystkat/lucenttarotreadings/internal/youtube"
)

// API is the video platform surface the engine depends on. The real
// implementation is internal/youtube; tests substitute a fake.
type API interface {
	LatestVideo(ctx context.Context, channelID string) (string, error)
	CommentPage(ctx context.Context, videoID, pageToken string) ([]youtube.Comment, string, error)
	InsertReply(ctx context.Context, parentCommentID, text string) error
	VideoSnippet(ctx context.Context, videoID string) (map[string]any, bool, error)
	UpdateVideoSnippet(ctx context.Context, videoID string, snippet map[string]any) error
}

// Options configures one bot instance.
type Options struct {
	ChannelID   string
	VideoID     string // optional pin; empty means latest video of the channel
	DailyBudget int
	PerRunCap   int
	Cooldown    time.Duration
	TitlePrefix string
	Clock       func() time.Time
}

// Bot runs the comment-intake and reply-dispatch engine for one channel.
// One invocation processes one video end to end, single-threaded; the
// caller is responsible for never overlapping two runs against the same
// state (serve mode serializes them, one-shot runs rely on the external
// scheduler).
type Bot struct {
	api    API
	state  *store.Store
	cards  *deck.CardMap
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// Candidate is a comment that passed every intake filter and is eligible
// for a reply, pending budget.
type Candidate struct {
	CommentID string
	UserID    string
	CardKey   deck.Key
}

func New(api API, state *store.Store, cards *deck.CardMap, opts Options, logger *slog.Logger) *Bot {
	if opts.DailyBudget < 1 {
		opts.DailyBudget = 180
	}
	if opts.PerRunCap < 1 {
		opts.PerRunCap = 15
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 24 * time.Hour
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Bot{
		api:    api,
		state:  state,
		cards:  cards,
		opts:   opts,
		logger: logger,
		now:    now,
	}
}

// resolveVideo returns the pinned video id or the channel's latest.
func (b *Bot) resolveVideo(ctx context.Context) (string, error) {
	if b.opts.VideoID != "" {
		return b.opts.VideoID, nil
	}
	videoID, err := b.api.LatestVideo(ctx, b.opts.ChannelID)
	if err != nil {
		return "", fmt.Errorf("resolve target video: %w", err)
	}
	return videoID, nil
}

// RenderReply builds the outbound reply text for a card and its mapped
// resource URL.
func RenderReply(key deck.Key, url string) string {
	pretty := deck.Pretty(key)
	if deck.IsReversed(key) {
		return fmt.Sprintf("You pulled **%s** 🌙 Shadow focus + guidance → %s", pretty, url)
	}
	return fmt.Sprintf("You pulled **%s** ✨ Quick hits + explainer → %s", pretty, url)
}
