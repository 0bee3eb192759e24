package commands

import (
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"

	"github.com/username/finsift/src/config"
	"github.com/username/finsift/src/database"
	"github.com/username/finsift/src/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:   "finsift",
		Short: "Classify and extract financial documents into SQLite",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "export-db", "",
		"path to the SQLite database (defaults to DATABASE_PATH)")

	rootCmd.AddCommand(newProcessCommand(&dbPath))
	rootCmd.AddCommand(newExportCommand(&dbPath))
	rootCmd.AddCommand(newStatsCommand(&dbPath))
	rootCmd.AddCommand(newReportCommand(&dbPath))
	rootCmd.AddCommand(newDebtCommand(&dbPath))

	return rootCmd
}

// openStore opens the database and wraps it with the query cache. The
// returned close function must run before process exit.
func openStore(dbPath string) (*store.Store, func() error, error) {
	path := dbPath
	if path == "" {
		path = config.Cfg.DatabasePath
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}
	c := cache.New(config.Cfg.CacheExpiry, config.Cfg.CacheCleanupInterval)
	return store.New(db, c), db.Close, nil
}
