package cli

import (
	"fmt"

	"futsal-app/internal/report"
	"futsal-app/internal/stats"

	"github.com/spf13/cobra"
)

func newStandingsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print the classification of a league night",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			matches, err := st.ListMatches(day)
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			regulars, err := st.ListRegulars(day)
			if err != nil {
				return fmt.Errorf("list regulars: %w", err)
			}
			report.PrintStandings(cmd.OutOrStdout(), day, stats.Standings(stats.Classify(matches, regulars)))
			return nil
		},
	}
}

func newSeasonCmd(flags *globalFlags) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Print season totals and leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 1 {
				return fmt.Errorf("--top must be at least 1")
			}
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			matches, err := st.ListMatches(day)
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			regulars, err := st.ListRegulars(day)
			if err != nil {
				return fmt.Errorf("list regulars: %w", err)
			}
			report.PrintSeason(cmd.OutOrStdout(), day, stats.Summarize(matches, regulars, top))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", stats.DefaultTopN, "entries per leaderboard")
	return cmd
}

func newMatchesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List matches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			matches, err := st.ListMatches(day)
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			report.PrintMatches(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

func newPlayerCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "player <name>",
		Short: "Print one player's analytics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			matches, err := st.ListMatches(day)
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			report.PrintPlayer(cmd.OutOrStdout(), stats.Analyze(args[0], matches))
			return nil
		},
	}
}

func newCompareCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <player> <player> [player]",
		Short: "Compare two or three players side by side",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			matches, err := st.ListMatches(day)
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			comparison, err := stats.Compare(args, matches)
			if err != nil {
				return err
			}
			report.PrintComparison(cmd.OutOrStdout(), comparison)
			return nil
		},
	}
}

func newRegularsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "regulars",
		Short: "List the regular roster of a league night",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, day, err := flags.open()
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.ListRegulars(day)
			if err != nil {
				return fmt.Errorf("list regulars: %w", err)
			}
			report.PrintRegulars(cmd.OutOrStdout(), day, names)
			return nil
		},
	}
}
