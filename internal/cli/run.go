package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalystkat/lucenttarotreadings/internal/bot"
	"github.com/katalystkat/lucenttarotreadings/internal/config"
	"github.com/katalystkat/lucenttarotreadings/internal/deck"
	"github.com/katalystkat/lucenttarotreadings/internal/store"
	"github.com/katalystkat/lucenttarotreadings/internal/youtube"
)

// engine bundles everything one run needs.
type engine struct {
	bot   *bot.Bot
	state *store.Store
	cards *deck.CardMap
}

func buildEngine(ctx context.Context, cfg config.Config, logger *slog.Logger) (*engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	state, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := state.AutoMigrate(ctx); err != nil {
		state.Close()
		return nil, err
	}

	cards, err := deck.LoadCardMap(cfg.CardMapPath)
	if err != nil {
		state.Close()
		return nil, err
	}

	httpClient, err := youtube.AuthedHTTPClient(ctx, cfg.OAuthClientFile, cfg.OAuthTokenFile,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	if err != nil {
		state.Close()
		return nil, err
	}
	api := youtube.NewClient(cfg.APIBase, cfg.CommentPageSize, httpClient)

	b := bot.New(api, state, cards, bot.Options{
		ChannelID:   cfg.ChannelID,
		VideoID:     cfg.VideoID,
		DailyBudget: cfg.DailyBudget,
		PerRunCap:   cfg.PerRunCap,
		Cooldown:    time.Duration(cfg.CooldownHours) * time.Hour,
		TitlePrefix: cfg.TitlePrefix,
	}, logger)

	return &engine{bot: b, state: state, cards: cards}, nil
}

func (e *engine) Close() error {
	return e.state.Close()
}

func newRepliesCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "replies",
		Short: "Run one reply pass over new comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runtime, err := buildEngine(ctx, config.FromEnv(), logger)
			if err != nil {
				return err
			}
			defer runtime.Close()

			result, err := runtime.bot.RunReplies(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Line())
			return nil
		},
	}
}

func newUpdateTitleCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "update-title",
		Short: "Set the video title to today's most-drawn card",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runtime, err := buildEngine(ctx, config.FromEnv(), logger)
			if err != nil {
				return err
			}
			defer runtime.Close()

			line, err := runtime.bot.RunUpdateTitle(ctx)
			if err != nil {
				return err
			}
			fmt.Println(line)
			return nil
		},
	}
}
