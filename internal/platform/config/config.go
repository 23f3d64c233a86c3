package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds the monitor's environment-derived settings.
type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"8080"`

	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	RedditUserAgent    string `env:"REDDIT_USER_AGENT" default:"guardline:monitor:0.1 (by /u/guardline)"`

	// Subreddits is a Reddit multireddit expression, e.g. "teenagers+AskTeenGirls+AskTeenBoys".
	Subreddits    string        `env:"SUBREDDITS" default:"teenagers+AskTeenGirls+AskTeenBoys"`
	FlagSentiment string        `env:"FLAG_SENTIMENT" default:"negative"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" default:"5s"`

	// KeywordsFile optionally points at a JSON override file merged into the
	// built-in dictionaries at startup.
	KeywordsFile string `env:"KEYWORDS_FILE"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"REDDIT_CLIENT_ID":     cfg.RedditClientID,
		"REDDIT_CLIENT_SECRET": cfg.RedditClientSecret,
		"SUBREDDITS":           cfg.Subreddits,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	switch cfg.FlagSentiment {
	case "positive", "negative", "neutral":
	default:
		return fmt.Errorf("FLAG_SENTIMENT must be positive, negative or neutral, got %q", cfg.FlagSentiment)
	}

	if cfg.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}

	return nil
}
