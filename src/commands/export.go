package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/finsift/src/reports"
	"github.com/username/finsift/src/store"
)

func newExportCommand(dbPath *string) *cobra.Command {
	var out string
	var noMetadata bool
	var filter store.TransactionFilter

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
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

			if err := reports.WriteTransactionsCSV(w, s, filter, !noMetadata); err != nil {
				return err
			}
			if out != "" {
				fmt.Printf("Exported transactions to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "omit the explanatory '#' header")
	cmd.Flags().StringVar(&filter.From, "from", "", "only transactions on or after this date")
	cmd.Flags().StringVar(&filter.To, "to", "", "only transactions on or before this date")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.Bank, "bank", "", "filter by bank name")
	cmd.Flags().StringVar(&filter.AccountType, "account-type", "", "filter by account type")

	return cmd
}
