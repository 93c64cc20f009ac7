// Package config loads fundboard settings from TOML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. FUNDBOARD_DATA_FILE.
const EnvPrefix = "FUNDBOARD"

// DefaultDataFile is used when neither flags, env nor config name a file.
const DefaultDataFile = "startup_funding.csv"

// Config holds all fundboard configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Forecast   ForecastConfig   `toml:"forecast"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataFile string `toml:"data_file"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr              string `toml:"addr"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
	MaxSessions       int    `toml:"max_sessions"`
}

// SessionTTL returns the idle session lifetime.
func (s ServerConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// ForecastConfig holds projection settings.
type ForecastConfig struct {
	HorizonDays int `toml:"horizon_days"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// envOverrides mirrors the settings that may come from the environment.
// Empty values leave the file setting alone. Keys are derived from field
// names so that only prefixed variables are consulted.
type envOverrides struct {
	DataFile    string `split_words:"true"`
	Theme       string
	Addr        string
	LogLevel    string `split_words:"true"`
	LogFormat   string `split_words:"true"`
	HorizonDays int    `split_words:"true"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataFile: DefaultDataFile,
		},
		Appearance: AppearanceConfig{
			Theme: "midnight",
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8501",
			SessionTTLMinutes: 30,
			MaxSessions:       64,
		},
		Forecast: ForecastConfig{
			HorizonDays: 365,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fundboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fundboard")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, and
// then applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays FUNDBOARD_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.DataFile != "" {
		cfg.General.DataFile = env.DataFile
	}
	if env.Theme != "" {
		cfg.Appearance.Theme = env.Theme
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
	if env.HorizonDays > 0 {
		cfg.Forecast.HorizonDays = env.HorizonDays
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
