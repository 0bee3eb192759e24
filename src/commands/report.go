package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/finsift/src/reports"
)

func newReportCommand(dbPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a human-readable summary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeDB, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := reports.WriteSummaryReport(w, s); err != nil {
				return err
			}
			if out != "" {
				fmt.Printf("Wrote summary report to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	return cmd
}
