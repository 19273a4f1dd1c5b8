package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/bmark/internal/commands"
	"github.com/user/bmark/internal/logging"
)

var addCmd = &cobra.Command{
	Use:   "add <url>...",
	Short: "Add bookmarks",
	Long:  "Add one or more URLs as bookmarks, concurrently, then print the resulting list.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

		registry := newRegistry(cfg)
		ctx := cmd.Context()

		reqs := make([]commands.Request, len(args))
		for i, url := range args {
			reqs[i] = commands.NewAddBookmarkRequest(url)
		}

		var failed int
		for i, resp := range registry.InvokeAll(ctx, reqs) {
			if !resp.OK() {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to add %s: %s\n", args[i], resp.Error)
			}
		}

		bookmarks, err := commands.DecodeBookmarks(registry.Invoke(ctx, commands.NewGetBookmarksRequest()))
		if err != nil {
			return fmt.Errorf("failed to list bookmarks: %w", err)
		}
		if err := writeBookmarks(cmd.OutOrStdout(), bookmarks); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("failed to add %d bookmark(s)", failed)
		}
		return nil
	},
}

func init() {
	addOutputFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}
