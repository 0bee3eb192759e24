package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeDB, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			stats, err := s.GatherStatistics()
			if err != nil {
				return err
			}

			fmt.Printf("Imported files:          %d\n", stats.ImportedFiles)
			fmt.Printf("Transactions:            %d (%d recurring)\n",
				stats.Transactions, stats.RecurringTransactions)
			fmt.Printf("Account balances:        %d\n", stats.AccountBalances)
			fmt.Printf("Investment accounts:     %d (%d holdings, %d transactions)\n",
				stats.InvestmentAccounts, stats.Holdings, stats.InvestmentTransactions)
			fmt.Printf("Paystubs:                %d\n", stats.Paystubs)
			fmt.Printf("Tax documents:           %d\n", stats.TaxDocuments)
			fmt.Printf("Total spent:             %s\n", stats.TotalSpent.StringFixed(2))
			fmt.Printf("Total received:          %s\n", stats.TotalReceived.StringFixed(2))
			return nil
		},
	}
}
