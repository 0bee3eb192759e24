package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/username/finsift/src/config"
	"github.com/username/finsift/src/enrich"
	"github.com/username/finsift/src/ingest"
	"github.com/username/finsift/src/pipeline"
	"github.com/username/finsift/src/utils"
)

func newProcessCommand(dbPath *string) *cobra.Command {
	var forceReimport bool
	var dateRange string

	cmd := &cobra.Command{
		Use:   "process <input-dir>",
		Short: "Scan a directory and import every supported document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFrom, dateTo, err := parseDateRange(dateRange)
			if err != nil {
				return err
			}

			s, closeDB, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			paths, err := ingest.ScanDir(args[0], config.Cfg.MaxFileSizeBytes)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println("No supported files found.")
				return nil
			}

			p := pipeline.New(s, enrich.NewRecurringDetector())
			p.ForceReimport = forceReimport
			p.DateFrom = dateFrom
			p.DateTo = dateTo

			summary := p.Run(paths)
			fmt.Printf("Processed %d file(s): %d imported, %d skipped, %d failed\n",
				len(paths), summary.FilesProcessed, summary.FilesSkipped, summary.FilesFailed)
			fmt.Printf("Records inserted: %d, duplicates skipped: %d, recurring flagged: %d\n",
				summary.RecordsInserted, summary.DuplicatesSkipped, summary.RecurringFlagged)
			for _, failure := range summary.Failures {
				fmt.Printf("  failed: %s: %v\n", failure.Path, failure.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceReimport, "force-reimport", false,
		"reprocess files even when their content identity is already imported")
	cmd.Flags().StringVar(&dateRange, "date-range", "",
		"only extract transactions inside this window, format FROM:TO (ISO dates)")

	return cmd
}

// parseDateRange splits "FROM:TO" and normalizes both bounds. Either side
// may be empty for an open-ended window.
func parseDateRange(s string) (string, string, error) {
	if s == "" {
		return "", "", nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid --date-range %q, expected FROM:TO", s)
	}
	from, to := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if from != "" {
		iso, ok := utils.NormalizeDate(from)
		if !ok {
			return "", "", fmt.Errorf("invalid --date-range start %q", from)
		}
		from = iso
	}
	if to != "" {
		iso, ok := utils.NormalizeDate(to)
		if !ok {
			return "", "", fmt.Errorf("invalid --date-range end %q", to)
		}
		to = iso
	}
	return from, to, nil
}
