package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalystkat/lucenttarotreadings/internal/config"
	"github.com/katalystkat/lucenttarotreadings/internal/watcher"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run reply and title passes on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg := config.FromEnv()
			runtime, err := buildEngine(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer runtime.Close()

			// Runs never overlap inside this process: a firing that
			// lands while the previous one is still going is skipped.
			scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

			if _, err := scheduler.AddFunc(cfg.RepliesCron, func() {
				result, err := runtime.bot.RunReplies(ctx)
				if err != nil {
					logger.Error("replies run failed", "error", err)
					return
				}
				fmt.Println(result.Line())
			}); err != nil {
				return fmt.Errorf("schedule replies: %w", err)
			}

			if _, err := scheduler.AddFunc(cfg.TitleCron, func() {
				line, err := runtime.bot.RunUpdateTitle(ctx)
				if err != nil {
					logger.Error("title run failed", "error", err)
					return
				}
				fmt.Println(line)
			}); err != nil {
				return fmt.Errorf("schedule title update: %w", err)
			}

			mapWatcher, err := watcher.New(cfg.CardMapPath, logger, func(context.Context) {
				if err := runtime.cards.Reload(); err != nil {
					logger.Error("card map reload failed", "error", err)
					return
				}
				logger.Info("card map reloaded", "cards", runtime.cards.Len())
			})
			if err != nil {
				return err
			}

			logger.Info("serve started",
				"replies_cron", cfg.RepliesCron,
				"title_cron", cfg.TitleCron,
				"card_map", cfg.CardMapPath,
			)

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return mapWatcher.Start(groupCtx)
			})
			group.Go(func() error {
				scheduler.Start()
				<-groupCtx.Done()
				<-scheduler.Stop().Done()
				return nil
			})
			return group.Wait()
		},
	}
}
