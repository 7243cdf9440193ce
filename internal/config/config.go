package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	ChannelID     string
	VideoID       string // optional pin; empty means latest video
	DailyBudget   int
	PerRunCap     int
	CooldownHours int
	TitlePrefix   string

	StateDir    string
	DBPath      string
	CardMapPath string

	APIBase            string
	CommentPageSize    int
	HTTPTimeoutSeconds int
	OAuthClientFile    string
	OAuthTokenFile     string

	RepliesCron string
	TitleCron   string
}

func FromEnv() Config {
	stateDir := stringOrDefault("LUCENT_STATE_DIR", "state")
	return Config{
		ChannelID:     strings.TrimSpace(os.Getenv("LUCENT_CHANNEL_ID")),
		VideoID:       strings.TrimSpace(os.Getenv("LUCENT_VIDEO_ID")),
		DailyBudget:   intOrDefault("LUCENT_DAILY_REPLY_BUDGET", 180),
		PerRunCap:     intOrDefault("LUCENT_PER_RUN_REPLY_CAP", 15),
		CooldownHours: intOrDefault("LUCENT_USER_COOLDOWN_HOURS", 24),
		TitlePrefix:   os.Getenv("LUCENT_TITLE_PREFIX"),

		StateDir:    stateDir,
		DBPath:      stringOrDefault("LUCENT_DB_PATH", filepath.Join(stateDir, "state.sqlite")),
		CardMapPath: stringOrDefault("LUCENT_CARD_MAP_PATH", "card_map.json"),

		APIBase:            stringOrDefault("LUCENT_YOUTUBE_API_BASE", "https://www.googleapis.com/youtube/v3"),
		CommentPageSize:    intOrDefault("LUCENT_COMMENT_PAGE_SIZE", 50),
		HTTPTimeoutSeconds: intOrDefault("LUCENT_HTTP_TIMEOUT_SECONDS", 30),
		OAuthClientFile:    strings.TrimSpace(os.Getenv("LUCENT_OAUTH_CLIENT_FILE")),
		OAuthTokenFile:     stringOrDefault("LUCENT_OAUTH_TOKEN_FILE", filepath.Join(stateDir, "oauth_token.json")),

		RepliesCron: stringOrDefault("LUCENT_REPLIES_CRON", "@every 10m"),
		TitleCron:   stringOrDefault("LUCENT_TITLE_CRON", "@every 1h"),
	}
}

// Validate checks the identifiers a run cannot start without. A failure
// here is fatal before any state is touched.
func (c Config) Validate() error {
	if c.ChannelID == "" && c.VideoID == "" {
		return errors.New("set LUCENT_CHANNEL_ID (or pin LUCENT_VIDEO_ID)")
	}
	if c.OAuthClientFile == "" {
		return errors.New("set LUCENT_OAUTH_CLIENT_FILE")
	}
	return nil
}

func stringOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func intOrDefault(name string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
