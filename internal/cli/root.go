// Package cli provides the command-line interface for chatvault.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkeller/chatvault/internal/config"
	"github.com/mkeller/chatvault/internal/media"
	"github.com/mkeller/chatvault/internal/models"
	"github.com/mkeller/chatvault/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configPath string
	verbose    bool

	// Global config, session, and logger cleanup
	cfg        config.Config
	session    *service.Session
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatvault",
	Short: "View and back up exported chat archives",
	Long: `Chatvault ingests exported chat archives (zip files holding a text
transcript plus media), reconstructs the conversations, and lets you browse
them in the terminal.

Backups are structural snapshots: text and metadata survive the round trip,
binary media does not and is re-attached later with a relink batch.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		for ext, kind := range cfg.MediaExtensions {
			media.RegisterExtension(ext, models.Kind(kind))
		}

		// The viewer owns the terminal, so its logs go to file only.
		console := cmd.Name() != "view"
		level := cfg.LogLevel
		if verbose {
			level = config.ParseLogLevel("debug")
		}
		logger, cleanup := config.SetupLogger(cfg.LogFile, level, console)
		logCleanup = cleanup

		session = service.NewSession(service.Options{
			Logger:    logger,
			NameLimit: cfg.NameLimit,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
}

// loadInputs feeds the session from mixed arguments: ".json" files restore
// a backup, everything else ingests as an archive batch. The restore runs
// first so archives stack on top of the restored collection.
func loadInputs(args []string) error {
	var backups, archives []string
	for _, arg := range args {
		if strings.HasSuffix(strings.ToLower(arg), ".json") {
			backups = append(backups, arg)
		} else {
			archives = append(archives, arg)
		}
	}

	if len(backups) > 1 {
		return fmt.Errorf("at most one backup file may be given, got %d", len(backups))
	}
	for _, b := range backups {
		if err := session.RestoreFromFile(b); err != nil {
			return fmt.Errorf("restore %s: %w", b, err)
		}
		fmt.Printf("Restored %d chat(s) from %s (media needs relink)\n",
			len(session.Conversations()), b)
	}

	if len(archives) > 0 {
		result := ingestPaths(archives)
		reportIngest(result)
	}
	return nil
}
