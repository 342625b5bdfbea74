package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "NEWS_SIEVE_CONFIG"
	embeddingHostEnv  = "EMBEDDING_HOST"
	embeddingModelEnv = "EMBEDDING_MODEL"
	keywordsFileEnv   = "KEYWORDS_FILE"
	outputDirEnv      = "OUTPUT_DIR"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Feeds         map[string]string  `yaml:"feeds"`
	Classifier    ClassifierConfig   `yaml:"classifier"`
	Embedding     EmbeddingConfig    `yaml:"embedding"`
	Output        OutputConfig       `yaml:"output"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// ClassifierConfig defines relevance matching parameters.
type ClassifierConfig struct {
	Threshold    float64 `yaml:"threshold"`
	KeywordsFile string  `yaml:"keywordsFile"`
}

// EmbeddingConfig describes the embedding backend.
type EmbeddingConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// OutputConfig describes where run batches are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// SchedulerConfig defines when the daily run fires (24h HH:MM).
type SchedulerConfig struct {
	Time     string         `yaml:"time"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(embeddingHostEnv); v != "" {
		c.Embedding.Host = v
	}

	if v := os.Getenv(embeddingModelEnv); v != "" {
		c.Embedding.Model = v
	}

	if v := os.Getenv(keywordsFileEnv); v != "" {
		c.Classifier.KeywordsFile = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	if override.Classifier.Threshold != 0 {
		base.Classifier.Threshold = override.Classifier.Threshold
	}
	if override.Classifier.KeywordsFile != "" {
		base.Classifier.KeywordsFile = override.Classifier.KeywordsFile
	}

	if override.Embedding.Host != "" {
		base.Embedding.Host = override.Embedding.Host
	}
	if override.Embedding.Model != "" {
		base.Embedding.Model = override.Embedding.Model
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}

	if override.Scheduler.Time != "" {
		base.Scheduler.Time = override.Scheduler.Time
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Feeds: map[string]string{
			"techcrunch": "https://techcrunch.com/feed/",
			"wired":      "https://www.wired.com/feed/rss",
			"forbes":     "https://www.forbes.com/business/feed/",
		},
		Classifier: ClassifierConfig{
			Threshold:    0.6,
			KeywordsFile: "keywords.tsv",
		},
		Embedding: EmbeddingConfig{
			Host:  "http://localhost:11434",
			Model: "nomic-embed-text",
		},
		Output:    OutputConfig{Dir: "output"},
		Scheduler: SchedulerConfig{Time: "01:00", Timezone: defaultTimezone, location: tz},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
