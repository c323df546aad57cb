package cli

import (
	"rugbyrank/pkg/rankings"

	"github.com/spf13/cobra"
)

// OutcomesOptions holds the flags of the outcomes command.
type OutcomesOptions struct {
	Home    float64
	Away    float64
	Major   bool
	Neutral bool
}

// NewOutcomesCommand creates the outcomes command.
func NewOutcomesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OutcomesOptions{}

	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "Show the home team change for each kind of result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if opts.Home < 0 || opts.Away < 0 {
				return formatter.Fail(NewExitError(ExitCommandError, "ratings must not be negative"))
			}

			outcomes := rankings.GetFixtureOutcomes(opts.Home, opts.Away, opts.Major, opts.Neutral)
			rows := [][]string{
				{"home big win", formatSigned(outcomes.HomeBigWin)},
				{"home small win", formatSigned(outcomes.HomeSmallWin)},
				{"draw", formatSigned(outcomes.Draw)},
				{"away small win", formatSigned(outcomes.AwaySmallWin)},
				{"away big win", formatSigned(outcomes.AwayBigWin)},
			}
			return formatter.Write(outcomes, []string{"RESULT", "HOME CHANGE"}, rows)
		},
	}

	cmd.Flags().Float64Var(&opts.Home, "home", 0, "home team rating")
	cmd.Flags().Float64Var(&opts.Away, "away", 0, "away team rating")
	cmd.Flags().BoolVar(&opts.Major, "major", false, "fixture is part of a major event")
	cmd.Flags().BoolVar(&opts.Neutral, "neutral", false, "fixture is played on a neutral venue")
	cmd.MarkFlagRequired("home")
	cmd.MarkFlagRequired("away")

	return cmd
}
