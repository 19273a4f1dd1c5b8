package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Log       LogConfig       `mapstructure:"log"`
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
	Commands  CommandsConfig  `mapstructure:"commands"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BookmarksConfig struct {
	// Seed is appended to the store, in order, when the process starts.
	Seed []string `mapstructure:"seed"`
}

type CommandsConfig struct {
	Workers int `mapstructure:"workers"`
}

// Load reads configuration from defaults, an optional config.yaml and BMARK_*
// environment variables. A non-empty configFile replaces the default search
// path.
func Load(configFile string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".bmark")

	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("bookmarks.seed", []string{})
	v.SetDefault("commands.workers", 8)

	// Environment variable overrides
	v.SetEnvPrefix("BMARK")
	v.AutomaticEnv()
	v.BindEnv("data_dir", "BMARK_DATA_DIR")
	v.BindEnv("log.level", "BMARK_LOG_LEVEL")
	v.BindEnv("log.format", "BMARK_LOG_FORMAT")
	v.BindEnv("commands.workers", "BMARK_COMMANDS_WORKERS")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultDataDir)

		// A missing config file is fine, a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Commands.Workers < 1 {
		cfg.Commands.Workers = 1
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LogPath is where the interactive shell writes its log.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "bmark.log")
}
