package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkeller/chatvault/internal/archive"
	"github.com/mkeller/chatvault/internal/metrics"
	"github.com/mkeller/chatvault/internal/service"
)

var (
	ingestBackup string
	ingestStats  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <archive.zip>...",
	Short: "Ingest exported chat archives",
	Long: `Ingest one or more exported chat archives and print a summary.

Each archive becomes one conversation. A corrupt archive or one without a
transcript is reported and skipped; the rest of the batch still loads.

Examples:
  chatvault ingest export.zip
  chatvault ingest a.zip b.zip -o backup.json
  chatvault ingest export.zip --stats`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestBackup, "output", "o", "", "write a backup snapshot after ingest")
	ingestCmd.Flags().BoolVar(&ingestStats, "stats", false, "print pipeline timing stats")
}

func runIngest(cmd *cobra.Command, args []string) error {
	result := ingestPaths(args)
	reportIngest(result)

	if ingestBackup != "" {
		if err := session.BackupToFile(ingestBackup); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Printf("Backup written to %s\n", ingestBackup)
	}

	if ingestStats {
		printStats()
	}

	if len(result.Ingested) == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("no archives could be ingested")
	}
	return nil
}

// ingestPaths wraps filesystem paths as a batch and runs it.
func ingestPaths(paths []string) service.IngestResult {
	files := make([]archive.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, archive.FileFromPath(p))
	}
	return session.IngestArchives(files)
}

func reportIngest(result service.IngestResult) {
	for _, c := range result.Ingested {
		fmt.Printf("Loaded %q: %d messages, %d media files\n",
			c.Name, len(c.Messages), len(c.MediaFiles))
	}
	if verbose {
		fmt.Printf("Parsed %d messages, extracted %d media, linked %d (batch %s)\n",
			result.MessagesParsed, result.MediaExtracted, result.MediaLinked, result.BatchID)
	}
	if result.TimestampFallbacks > 0 {
		fmt.Printf("Warning: %d malformed timestamp(s) degraded to ingest time\n",
			result.TimestampFallbacks)
	}
	for _, e := range result.Errors {
		fmt.Printf("Error: %s\n", e)
	}
}

func printStats() {
	snap := session.Metrics()
	rows := []struct {
		name string
		op   *metrics.OperationSnapshot
	}{
		{"archive extract", snap.ArchiveExtract},
		{"transcript parse", snap.TranscriptParse},
		{"media link", snap.MediaLink},
		{"backup encode", snap.BackupEncode},
		{"backup decode", snap.BackupDecode},
	}

	fmt.Println("\nPipeline timings:")
	for _, r := range rows {
		if r.op == nil {
			continue
		}
		fmt.Printf("  %-17s %d op(s), avg %.1f ms, min %d ms, max %d ms\n",
			r.name, r.op.Count, r.op.AvgTimeMs, r.op.MinTimeMs, r.op.MaxTimeMs)
	}
}
