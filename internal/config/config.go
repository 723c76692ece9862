package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings. Precedence: defaults, then the YAML file
// named by CANTEIRO_CONFIG, then CANTEIRO_* environment variables.
type Config struct {
	DBPath string      `yaml:"db"`
	User   string      `yaml:"user"`
	Log    LogConfig   `yaml:"log"`
	Feed   FeedConfig  `yaml:"feed"`
	Redis  RedisConfig `yaml:"redis"`
	HTTP   HTTPConfig  `yaml:"http"`
	// Timezone names the IANA zone used for calendar-day comparisons and
	// spreadsheet dates. Empty means the host zone.
	Timezone string `yaml:"timezone"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type FeedConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

// RedisConfig enables cross-process change notification when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type HTTPConfig struct {
	Addr      string `yaml:"addr"`
	JWTSecret string `yaml:"jwt_secret"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DBPath: defaultDBPath(),
		Log:    LogConfig{Level: "info", Format: "console"},
		Feed:   FeedConfig{PollInterval: 5 * time.Second},
		Redis:  RedisConfig{Channel: "canteiro:projects:changed"},
		HTTP:   HTTPConfig{Addr: ":8080"},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".canteiro", "canteiro.db")
	}
	return filepath.Join(home, ".canteiro", "canteiro.db")
}

// Load resolves the configuration from the environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CANTEIRO_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CANTEIRO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CANTEIRO_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("CANTEIRO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CANTEIRO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CANTEIRO_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CANTEIRO_POLL_INTERVAL: %w", err)
		}
		cfg.Feed.PollInterval = d
	}
	if v := os.Getenv("CANTEIRO_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CANTEIRO_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CANTEIRO_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CANTEIRO_JWT_SECRET"); v != "" {
		cfg.HTTP.JWTSecret = v
	}
	if v := os.Getenv("CANTEIRO_TZ"); v != "" {
		cfg.Timezone = v
	}
	return nil
}

// Validate rejects values that would only fail later at use.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: want console or json", c.Log.Format)
	}
	if c.Feed.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Feed.PollInterval)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured zone, or time.Local when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
