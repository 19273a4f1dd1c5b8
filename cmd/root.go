package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/bmark/internal/commands"
	"github.com/user/bmark/internal/config"
	"github.com/user/bmark/internal/logging"
	"github.com/user/bmark/internal/store"
	"github.com/user/bmark/internal/tui"
)

var (
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "bmark",
	Short: "In-memory bookmark manager",
	Long:  "A terminal bookmark manager. Bookmarks live in memory for the life of the process.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, so logs go to a file.
		logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		logging.Init(cfg.Log.Level, cfg.Log.Format, logFile)

		return tui.Run(newRegistry(cfg))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.bmark/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadConfig reads the config and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

// newRegistry builds the single store for this process and the command
// registry that serves it.
func newRegistry(cfg *config.Config) *commands.Registry {
	s := store.NewWithSeed(cfg.Bookmarks.Seed)
	return commands.NewRegistry(commands.NewHandlers(s), cfg.Commands.Workers)
}
