// Package config loads skilltrack settings from ~/.skilltrack/config.yaml,
// SKILLTRACK_* environment variables and defaults, in that precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	dirName  = ".skilltrack"
	fileName = "config.yaml"

	redactedSecret = "********"
)

// Config represents the skilltrack configuration
type Config struct {
	Backend        string      `mapstructure:"backend" yaml:"backend"`
	DataDir        string      `mapstructure:"data_dir" yaml:"data_dir"`
	StorageKey     string      `mapstructure:"storage_key" yaml:"storage_key"`
	Redis          RedisConfig `mapstructure:"redis" yaml:"redis"`
	MilestoneLimit int         `mapstructure:"milestone_limit" yaml:"milestone_limit"`
	StrictProgress bool        `mapstructure:"strict_progress" yaml:"strict_progress"`
	SeedOnFirstRun bool        `mapstructure:"seed_on_first_run" yaml:"seed_on_first_run"`
	Log            LogConfig   `mapstructure:"log" yaml:"log"`
}

// RedisConfig contains settings for the redis backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Mode  string `mapstructure:"mode" yaml:"mode"`   // "dev" or "prod"
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// DefaultDir returns ~/.skilltrack.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns ~/.skilltrack/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{SeedOnFirstRun: true}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads the config file at path (DefaultPath when empty).
// A missing file is not an error; defaults and environment still apply.
// The result is not validated so callers can apply overrides first.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SKILLTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path (DefaultPath when empty).
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (expected sqlite, file, redis or memory)", c.Backend)
	}
	if c.MilestoneLimit < 1 {
		return fmt.Errorf("milestone_limit must be positive, got %d", c.MilestoneLimit)
	}
	return nil
}

// Redacted returns a copy safe to print, with secrets masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Redis.Password != "" {
		out.Redis.Password = redactedSecret
	}
	return &out
}

// SQLitePath returns the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "skilltrack.db")
}

// viper only binds env vars for keys it knows about.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("data_dir", "")
	v.SetDefault("storage_key", "skills")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("milestone_limit", 5)
	v.SetDefault("strict_progress", false)
	v.SetDefault("seed_on_first_run", true)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "warn")
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.DataDir == "" {
		if dir, err := DefaultDir(); err == nil {
			cfg.DataDir = dir
		}
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = "skills"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.MilestoneLimit == 0 {
		cfg.MilestoneLimit = 5
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = "dev"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}
