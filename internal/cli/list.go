package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <archive.zip|backup.json>...",
	Short: "List conversations from archives or a backup",
	Long: `Load the given inputs and print the conversation collection.

Arguments ending in .json restore a backup snapshot; everything else is
ingested as an archive.

Examples:
  chatvault list export.zip
  chatvault list backup.json
  chatvault list backup.json extra.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if err := loadInputs(args); err != nil {
		return err
	}

	convs := session.Conversations()
	if len(convs) == 0 {
		fmt.Println("No conversations loaded.")
		return nil
	}

	fmt.Printf("\nConversations (%d):\n\n", len(convs))
	for _, c := range convs {
		relink := ""
		if c.NeedsRelink {
			relink = " [media needs relink]"
		}
		fmt.Printf("- %s (%d messages, %d media)%s\n",
			c.Name, len(c.Messages), len(c.MediaFiles), relink)
		if verbose {
			last := time.UnixMilli(c.Timestamp).Format("2006-01-02 15:04")
			fmt.Printf("  last activity: %s\n", last)
			fmt.Printf("  preview: %s\n", c.LastMessage)
		}
	}
	return nil
}
