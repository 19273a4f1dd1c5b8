package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/bmark/internal/commands"
	"github.com/user/bmark/internal/logging"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	Long:  "Print the bookmarks the store starts with (the configured seed list).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

		ctx := cmd.Context()
		resp := newRegistry(cfg).Invoke(ctx, commands.NewGetBookmarksRequest())
		bookmarks, err := commands.DecodeBookmarks(resp)
		if err != nil {
			return fmt.Errorf("failed to list bookmarks: %w", err)
		}
		return writeBookmarks(cmd.OutOrStdout(), bookmarks)
	},
}

func init() {
	addOutputFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}
