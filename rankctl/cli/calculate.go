package cli

import (
	"rugbyrank/pkg/rankings"
	"strconv"

	"github.com/spf13/cobra"
)

// CalculateOptions holds the flags of the calculate command.
type CalculateOptions struct {
	RankingsFile string
	FixturesFile string
}

// NewCalculateCommand creates the calculate command.
func NewCalculateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Project rankings after a set of fixtures",
		Long: `Apply the played fixtures of a YAML file on top of a YAML rankings baseline
and print the resulting table with the change of each team.

Fixtures without both scores are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.RankingsFile, "rankings", "r", "", "YAML file with the baseline rankings")
	cmd.Flags().StringVarP(&opts.FixturesFile, "fixtures", "f", "", "YAML file with the fixtures")
	cmd.MarkFlagRequired("rankings")
	cmd.MarkFlagRequired("fixtures")

	return cmd
}

func runCalculate(rootOpts *RootOptions, opts *CalculateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	baseline, err := LoadRankings(opts.RankingsFile)
	if err != nil {
		return formatter.Fail(err)
	}
	fixtures, err := LoadFixtures(opts.FixturesFile)
	if err != nil {
		return formatter.Fail(err)
	}

	played := 0
	for _, f := range fixtures {
		if f.Played() {
			played++
		}
	}
	formatter.VerboseLog("Applying %d of %d fixture(s) to %d team(s)", played, len(fixtures), len(baseline))

	result := rankings.ApplyFixtures(baseline, fixtures)

	rows := make([][]string, 0, len(result))
	for _, r := range result {
		rows = append(rows, []string{
			strconv.Itoa(r.Position),
			r.Team.Name,
			formatPoints(r.Points),
			formatSigned(r.Change),
			strconv.Itoa(r.PositionChange),
		})
	}

	return formatter.Write(result, []string{"POS", "TEAM", "PTS", "CHANGE", "MOVE"}, rows)
}
