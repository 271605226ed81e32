package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"3000" validate:"gt=0,lt=65536"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"45s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"5s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
	Telegram TelegramConfig `yaml:"telegram"`
	Sources  struct {
		FetchTimeout time.Duration `yaml:"fetch_timeout" default:"5s" validate:"gt=0"`
		UserAgent    string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; PumpStat/1.0)"`
		MaxBodyBytes int64         `yaml:"max_body_bytes" default:"5242880" validate:"gt=0"`
		RSS          struct {
			URLs      []string `yaml:"urls" default:"[\"https://rsshub.app/telegram/channel/pumpfunvolumereports\",\"https://tg.i-c-a.su/rss/pumpfunvolumereports\",\"https://rss.app/feeds/telegram/pumpfunvolumereports\"]" validate:"dive,url"`
			MinFields int      `yaml:"min_fields" default:"1" validate:"gte=0"`
		} `yaml:"rss"`
		Page struct {
			URL       string `yaml:"url" default:"https://t.me/s/pumpfunvolumereports" validate:"omitempty,url"`
			MirrorURL string `yaml:"mirror_url" default:"https://rsshub.app/telegram/channel/pumpfunvolumereports" validate:"omitempty,url"`
			MinFields int    `yaml:"min_fields" default:"0" validate:"gte=0"`
		} `yaml:"page"`
	} `yaml:"sources"`
}

// AIConfig configures the text-completion service.
type AIConfig struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url" default:"https://api.anthropic.com/v1/messages" validate:"url"`
	Version   string        `yaml:"version" default:"2023-06-01"`
	Model     string        `yaml:"model" default:"claude-3-sonnet-20240229" validate:"required"`
	MaxTokens int           `yaml:"max_tokens" default:"800" validate:"gt=0"`
	Timeout   time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	Retries   int           `yaml:"retries" default:"2" validate:"gte=1"`
}

// Configured reports whether the credential is present.
func (a AIConfig) Configured() bool { return strings.TrimSpace(a.APIKey) != "" }

// TelegramConfig configures the Bot API source.
type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	BotUsername string `yaml:"bot_username" default:"pumpfun_analytics_bot"`
	Channel     string `yaml:"channel" default:"pumpfunvolumereports"`
	APIBase     string `yaml:"api_base" default:"https://api.telegram.org" validate:"url"`
	UpdateLimit int    `yaml:"update_limit" default:"20" validate:"gt=0,lte=100"`
	MinFields   int    `yaml:"min_fields" default:"0" validate:"gte=0"`
}

// Configured reports whether the bot credential is present.
func (t TelegramConfig) Configured() bool { return strings.TrimSpace(t.BotToken) != "" }

// UpdatesURL is the getUpdates endpoint. It embeds the token and must not be logged.
func (t TelegramConfig) UpdatesURL() string {
	return fmt.Sprintf("%s/bot%s/getUpdates?limit=%d&offset=-%d",
		strings.TrimRight(t.APIBase, "/"), t.BotToken, t.UpdateLimit, t.UpdateLimit)
}

// Default returns the configuration with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return c, nil
}

// LoadWithEnv loads config from YAML, overrides with environment variables
// and validates the result.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ANTHROPIC_API_KEY"); ok {
		c.AI.APIKey = v
	}
	if v, ok := lookup("TELEGRAM_BOT_TOKEN"); ok {
		c.Telegram.BotToken = v
	}
	if v, ok := lookup("TELEGRAM_CHANNEL"); ok && v != "" {
		c.Telegram.Channel = strings.TrimPrefix(v, "@")
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if len(c.Sources.RSS.URLs) == 0 && c.Sources.Page.URL == "" && c.Sources.Page.MirrorURL == "" {
		return fmt.Errorf("sources: at least one feed or page url is required")
	}
	return nil
}
