package commands

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/username/finsift/src/reports"
)

func newDebtCommand(dbPath *string) *cobra.Command {
	var out string
	var monthlyPayment string

	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Plan credit-card payoff with snowball and avalanche strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			payment, err := decimal.NewFromString(monthlyPayment)
			if err != nil {
				return fmt.Errorf("parsing --monthly-payment %q: %w", monthlyPayment, err)
			}

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

			if err := reports.WriteDebtReport(w, s, payment); err != nil {
				return err
			}
			if out != "" {
				fmt.Printf("Wrote debt payoff plan to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&monthlyPayment, "monthly-payment", "",
		"total monthly budget for debt payments")
	_ = cmd.MarkFlagRequired("monthly-payment")
	return cmd
}
