package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordleplus/internal/config"
	"github.com/robalobadob/wordleplus/internal/dictionary"
	"github.com/robalobadob/wordleplus/internal/sqlitedb"
	"github.com/robalobadob/wordleplus/internal/store"
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "wordleplus",
	Short:         "Variable-length word guessing game with a learned-words dictionary",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		c.SetupLogging()
		cfg = c
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openDB opens the configured SQLite database and the stores backed by it.
func openDB() (*sql.DB, store.Store, dictionary.Store, error) {
	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, store.NewSQLiteStore(db), dictionary.NewSQLiteStore(db), nil
}
