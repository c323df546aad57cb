package cli

import (
	"fmt"
	"os"
	"rugbyrank/pkg/rankings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newFormatter builds the formatter of a command from the global options.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadYAML decodes a YAML file into out, rejecting unknown fields.
func loadYAML(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "couldn't open "+path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return WrapExitError(ExitCommandError, "couldn't parse "+path, err)
	}
	return nil
}

// LoadRankings reads a YAML list of rankings.
func LoadRankings(path string) ([]rankings.Ranking, error) {
	var entries []rankings.Ranking
	if err := loadYAML(path, &entries); err != nil {
		return nil, err
	}
	if err := rankings.ValidateRankings(entries); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid rankings in "+path, err)
	}
	return entries, nil
}

// LoadFixtures reads a YAML list of fixtures.
func LoadFixtures(path string) ([]rankings.Fixture, error) {
	var fixtures []rankings.Fixture
	if err := loadYAML(path, &fixtures); err != nil {
		return nil, err
	}
	if err := rankings.ValidateFixtures(fixtures); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid fixtures in "+path, err)
	}
	return fixtures, nil
}

func formatPoints(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatSigned(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
