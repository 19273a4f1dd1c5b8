package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	jsonOutput      bool
	plaintextOutput bool
)

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	c.Flags().BoolVarP(&plaintextOutput, "plaintext", "p", false, "Output as plaintext")
}

func writeBookmarks(w io.Writer, bookmarks []string) error {
	if jsonOutput {
		return outputJSON(w, bookmarks)
	}
	if plaintextOutput {
		return outputPlaintext(w, bookmarks)
	}
	return outputDefault(w, bookmarks)
}

func outputJSON(w io.Writer, bookmarks []string) error {
	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputPlaintext(w io.Writer, bookmarks []string) error {
	for _, b := range bookmarks {
		fmt.Fprintln(w, b)
	}
	return nil
}

func outputDefault(w io.Writer, bookmarks []string) error {
	if len(bookmarks) == 0 {
		fmt.Fprintln(w, "No bookmarks.")
		return nil
	}
	for i, b := range bookmarks {
		fmt.Fprintf(w, "%d. %s\n", i+1, b)
	}
	return nil
}
