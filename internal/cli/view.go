package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkeller/chatvault/internal/archive"
	"github.com/mkeller/chatvault/internal/tui"
)

var (
	viewMediaDir  string
	viewBackupDir string
)

var viewCmd = &cobra.Command{
	Use:   "view <archive.zip|backup.json>...",
	Short: "Browse conversations interactively",
	Long: `Load the given inputs and open the interactive viewer.

Arguments ending in .json restore a backup snapshot; everything else is
ingested as an archive. A restored backup carries no media content;
pass --media with a directory of the original attachment files to relink
them by filename.

Keys: up/down select, enter open, tab switch pane, d remove, c clear all,
b write backup, q quit.

Examples:
  chatvault view export.zip
  chatvault view backup.json --media ./attachments
  chatvault view backup.json extra.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVarP(&viewMediaDir, "media", "m", "", "directory of attachment files to relink after restore")
	viewCmd.Flags().StringVar(&viewBackupDir, "backup-dir", ".", "directory for backups written from the viewer")
}

func runView(cmd *cobra.Command, args []string) error {
	if err := loadInputs(args); err != nil {
		return err
	}

	if viewMediaDir != "" {
		files, err := archive.FilesFromDir(viewMediaDir)
		if err != nil {
			return fmt.Errorf("scan media dir: %w", err)
		}
		relinked, err := session.Relink(files)
		if err != nil {
			return fmt.Errorf("relink: %w", err)
		}
		fmt.Printf("Relinked %d media file(s)\n", relinked)
	}

	return tui.Run(session, cfg.SidePolicy, viewBackupDir)
}
