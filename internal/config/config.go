// Package config loads application settings with a defaults -> file ->
// environment layering, validated once at load time.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/stargazer/internal/application"
	"github.com/spf13/viper"
)

// STARGAZER_CACHE_TTL_SECONDS maps to cache.ttl_seconds and so on
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config is the full application configuration.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Folders  FoldersConfig  `mapstructure:"folders"`
	Behavior BehaviorConfig `mapstructure:"behavior"`
	LogLevel string         `mapstructure:"log_level"`
}

// GitHubConfig configures the remote API collaborator.
type GitHubConfig struct {
	// Token is the personal access token. Usually supplied via the
	// STARGAZER_GITHUB_TOKEN environment variable rather than the file.
	Token string `mapstructure:"token"`
}

// CacheConfig configures the local SQLite store.
type CacheConfig struct {
	// Path to the database file; empty means <config dir>/stargazer.db
	Path string `mapstructure:"path"`

	// TTLSeconds is how long a cached snapshot stays valid
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// TTL returns the snapshot time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// FolderConfig declares one default folder created at startup.
type FolderConfig struct {
	Name        string   `mapstructure:"name"`
	AutoTags    []string `mapstructure:"auto_tags"`
	Description string   `mapstructure:"description"`
}

// FoldersConfig declares the default folder set.
type FoldersConfig struct {
	Defaults []FolderConfig `mapstructure:"defaults"`
}

// BehaviorConfig toggles optional background behavior.
type BehaviorConfig struct {
	// AutoCategorize gates the categorization sweep after each refresh
	AutoCategorize bool `mapstructure:"auto_categorize"`
}

// Load reads configuration from <config dir>/config.yaml layered over the
// built-in defaults, with STARGAZER_* environment variables on top.
func Load() (*Config, error) {
	appDir, err := application.Directory()
	if err != nil {
		return nil, err
	}
	return LoadFrom(appDir)
}

// LoadFrom is Load with an explicit config directory, used by tests.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("github.token", "")
	v.SetDefault("cache.path", "")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("behavior.auto_categorize", true)
	v.SetDefault("log_level", "warn")
	v.SetDefault("folders.defaults", defaultFolders())

	v.SetEnvPrefix("STARGAZER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults and env apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(dir, "stargazer.db")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}

	seen := make(map[string]struct{}, len(c.Folders.Defaults))
	for _, f := range c.Folders.Defaults {
		if f.Name == "" {
			return fmt.Errorf("folders.defaults entries need a name")
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("folders.defaults declares %q twice", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	return nil
}

// defaultFolders mirrors the stock folder set shipped out of the box.
func defaultFolders() []map[string]any {
	return []map[string]any{
		{"name": "Python", "auto_tags": []string{"python"}},
		{"name": "Go", "auto_tags": []string{"go", "golang"}},
		{"name": "Rust", "auto_tags": []string{"rust"}},
		{"name": "Web", "auto_tags": []string{"javascript", "typescript", "web"}},
		{"name": "Machine Learning", "auto_tags": []string{"machine-learning", "deep-learning", "ml", "ai"}},
		{"name": "DevOps", "auto_tags": []string{"docker", "kubernetes", "devops", "ci"}},
	}
}
