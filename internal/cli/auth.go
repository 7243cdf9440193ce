package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/katalystkat/lucenttarotreadings/internal/config"
	"github.com/katalystkat/lucenttarotreadings/internal/youtube"
)

func newAuthCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize the bot account and cache the oauth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if cfg.OAuthClientFile == "" {
				return fmt.Errorf("set LUCENT_OAUTH_CLIENT_FILE")
			}
			if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}

			oauthCfg, err := youtube.OAuthConfig(cfg.OAuthClientFile)
			if err != nil {
				return err
			}

			url := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Println("Open this URL, authorize the bot account, and paste the code:")
			fmt.Println(url)
			fmt.Print("Code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("empty authorization code")
			}

			token, err := oauthCfg.Exchange(context.Background(), code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if err := youtube.SaveToken(cfg.OAuthTokenFile, token); err != nil {
				return err
			}
			logger.Info("oauth token cached", "path", cfg.OAuthTokenFile)
			return nil
		},
	}
}
