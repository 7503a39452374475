// Package cli implements leaguectl, a terminal view over the same store the
// dashboard uses.
package cli

import (
	"fmt"
	"io"
	"os"

	"futsal-app/internal/model"
	"futsal-app/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	dbPath      string
	postgresDSN string
	day         string
}

// Execute runs leaguectl with the process arguments.
func Execute() {
	_ = godotenv.Load(".env", ".env.local")
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand(out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "Indoor football league stats",
		Long:          "Print standings, season stats and player analytics for the Monday and Thursday leagues.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&flags.dbPath, "db", os.Getenv("DB_PATH"), "path to SQLite database")
	root.PersistentFlags().StringVar(&flags.postgresDSN, "postgres", os.Getenv("POSTGRES_DSN"), "Postgres DSN (takes precedence over --db)")
	root.PersistentFlags().StringVar(&flags.day, "day", string(model.DayMonday), "league night: lunes or jueves")

	root.AddCommand(
		newStandingsCmd(flags),
		newSeasonCmd(flags),
		newMatchesCmd(flags),
		newPlayerCmd(flags),
		newCompareCmd(flags),
		newRegularsCmd(flags),
	)
	return root
}

// open resolves --day and opens the store. Without --db or --postgres the
// seeded demo data is used.
func (f *globalFlags) open() (store.Store, model.DayCategory, error) {
	day, ok := model.ParseDay(f.day)
	if !ok {
		return nil, "", fmt.Errorf("unknown day %q: use lunes or jueves", f.day)
	}
	st, err := store.Open(store.Options{
		PostgresDSN: f.postgresDSN,
		SQLitePath:  f.dbPath,
		Seed:        true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("open storage: %w", err)
	}
	return st, day, nil
}
