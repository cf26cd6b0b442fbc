package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Line  LineConfig  `yaml:"line"`
	CWA   CWAConfig   `yaml:"cwa"`
	Store StoreConfig `yaml:"store"`
	Push  PushConfig  `yaml:"push"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LineConfig carries the Messaging API credentials.
type LineConfig struct {
	ChannelSecret string `yaml:"channelSecret"`
	ChannelToken  string `yaml:"channelToken"`
	// ImageBaseURL serves the outfit card illustrations. Empty disables the
	// hero images.
	ImageBaseURL string `yaml:"imageBaseUrl"`
}

// CWAConfig points at the Central Weather Administration open-data API.
type CWAConfig struct {
	APIKey   string        `yaml:"apiKey"`
	BaseURL  string        `yaml:"baseUrl"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
}

// StoreConfig wires the profile store and the upstream payload cache.
type StoreConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings. An empty DSN falls back
// to the in-memory profile store.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PushConfig tunes the proactive push schedule, in Taiwan local time.
type PushConfig struct {
	Enabled     bool `yaml:"enabled"`
	DailyHour   int  `yaml:"dailyHour"`
	WeekendHour int  `yaml:"weekendHour"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("LINE_CHANNEL_SECRET"); v != "" {
		cfg.Line.ChannelSecret = v
	}
	if v := os.Getenv("LINE_CHANNEL_TOKEN"); v != "" {
		cfg.Line.ChannelToken = v
	}
	if v := os.Getenv("LINE_IMAGE_BASE_URL"); v != "" {
		cfg.Line.ImageBaseURL = v
	}
	if v := os.Getenv("CWA_API_KEY"); v != "" {
		cfg.CWA.APIKey = v
	}
	if v := os.Getenv("CWA_BASE_URL"); v != "" {
		cfg.CWA.BaseURL = v
	}
	if v := os.Getenv("CWA_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.CWA.Timeout = parsed
		}
	}
	if v := os.Getenv("CWA_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.CWA.CacheTTL = parsed
		}
	}
	if v := os.Getenv("STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("STORE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_VALKEY_ENABLED"); v != "" {
		cfg.Store.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("STORE_VALKEY_ADDR"); v != "" {
		cfg.Store.Valkey.Addr = v
	}
	if v := os.Getenv("PUSH_ENABLED"); v != "" {
		cfg.Push.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("PUSH_DAILY_HOUR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Push.DailyHour = parsed
		}
	}
	if v := os.Getenv("PUSH_WEEKEND_HOUR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Push.WeekendHour = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             40,
			},
		},
		CWA: CWAConfig{
			BaseURL:  "https://opendata.cwa.gov.tw/api/v1/rest/datastore",
			Timeout:  10 * time.Second,
			CacheTTL: 10 * time.Minute,
		},
		Store: StoreConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Push: PushConfig{
			Enabled:     true,
			DailyHour:   8,
			WeekendHour: 19,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Line.ChannelSecret) == "" {
		return errors.New("line.channelSecret cannot be empty")
	}
	if strings.TrimSpace(c.Line.ChannelToken) == "" {
		return errors.New("line.channelToken cannot be empty")
	}
	if strings.TrimSpace(c.CWA.APIKey) == "" {
		return errors.New("cwa.apiKey cannot be empty")
	}
	if c.CWA.BaseURL == "" {
		return errors.New("cwa.baseUrl cannot be empty")
	}
	if c.CWA.Timeout <= 0 {
		return errors.New("cwa.timeout must be positive")
	}
	if c.CWA.CacheTTL < 0 {
		return errors.New("cwa.cacheTtl cannot be negative")
	}
	if c.Store.Valkey.Enabled && strings.TrimSpace(c.Store.Valkey.Addr) == "" {
		return errors.New("store.valkey.addr cannot be empty when the cache is enabled")
	}
	if c.Push.Enabled {
		if c.Push.DailyHour < 0 || c.Push.DailyHour > 23 {
			return errors.New("push.dailyHour must be between 0 and 23")
		}
		if c.Push.WeekendHour < 0 || c.Push.WeekendHour > 23 {
			return errors.New("push.weekendHour must be between 0 and 23")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
