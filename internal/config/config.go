package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	API    APIConfig    `mapstructure:"api"`
	UI     UIConfig     `mapstructure:"ui"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds the web listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIConfig points at the upstream countries API.
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryMaxElapsed time.Duration `mapstructure:"retry_max_elapsed"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// UIConfig holds presentation settings shared by the web and terminal front-ends.
type UIConfig struct {
	PageSize       int           `mapstructure:"page_size"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	Theme          string        `mapstructure:"theme"`
}

// CacheConfig controls the optional snapshot cache. A zero TTL disables it.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

const (
	DefaultBaseURL = "https://frontend-mentor-apis-6efy.onrender.com"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		API: APIConfig{
			BaseURL:         DefaultBaseURL,
			Timeout:         20 * time.Second,
			RetryMaxElapsed: 10 * time.Second,
			UserAgent:       "country-explorer/1.0",
		},
		UI: UIConfig{
			PageSize:       12,
			SearchDebounce: 300 * time.Millisecond,
			Theme:          ThemeLight,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional file and the environment. Env var
// overrides use prefix COUNTRIES_, e.g. COUNTRIES_API_BASE_URL. When path is
// empty, COUNTRIES_CONFIG is consulted, then ./countries.{yaml,toml,json}.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path == "" {
		path = os.Getenv("COUNTRIES_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("countries")
	}

	v.SetEnvPrefix("COUNTRIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("config: api.base_url must not be empty")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("config: ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.Theme != ThemeLight && c.UI.Theme != ThemeDark {
		return fmt.Errorf("config: ui.theme must be %q or %q, got %q", ThemeLight, ThemeDark, c.UI.Theme)
	}
	if c.UI.SearchDebounce < 0 {
		return errors.New("config: ui.search_debounce must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.retry_max_elapsed", d.API.RetryMaxElapsed)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("ui.page_size", d.UI.PageSize)
	v.SetDefault("ui.search_debounce", d.UI.SearchDebounce)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}
