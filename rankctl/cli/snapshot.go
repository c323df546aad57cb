package cli

import (
	"context"
	"fmt"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rpc"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// SnapshotOptions holds the flags of the snapshot command.
type SnapshotOptions struct {
	Address string
	Timeout time.Duration
}

// dialFetcher connects to the fetcher service.
// Replaced on tests.
var dialFetcher = func(address string) (rpc.FetcherClient, func() error, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return rpc.NewFetcherClient(conn), conn.Close, nil
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot [gender...]",
		Short: "Persist the current rankings through the fetcher",
		Long: `Ask the fetcher service to save the current rankings release.
Without arguments every population is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "fetcher gRPC address (defaults to FETCHER_ADDRESS)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "timeout of each snapshot")

	return cmd
}

// parseGenders converts the arguments, defaulting to every population.
func parseGenders(args []string) ([]gender.Gender, error) {
	if len(args) == 0 {
		return gender.All(), nil
	}

	genders := make([]gender.Gender, 0, len(args))
	for _, arg := range args {
		g, err := gender.Parse(arg)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid argument", err)
		}
		genders = append(genders, g)
	}
	return genders, nil
}

func runSnapshot(rootOpts *RootOptions, opts *SnapshotOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(rootOpts, cmd)

	genders, err := parseGenders(args)
	if err != nil {
		return formatter.Fail(err)
	}

	address := opts.Address
	if address == "" {
		cfg, err := config.Load()
		if err != nil {
			return formatter.Fail(WrapExitError(ExitCommandError, "couldn't load the configuration", err))
		}
		address = cfg.Fetcher.Address
	}

	client, closeConn, err := dialFetcher(address)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitFailure, "couldn't create the fetcher client", err))
	}
	defer closeConn()

	results := make([]*rpc.SnapshotResponse, 0, len(genders))
	rows := make([][]string, 0, len(genders))
	for _, g := range genders {
		formatter.VerboseLog("Saving the %s rankings through %s", g, address)

		ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
		res, err := client.SaveSnapshot(ctx, &rpc.SnapshotRequest{Gender: g.String()})
		cancel()
		if err != nil {
			return formatter.Fail(WrapExitError(ExitFailure, fmt.Sprintf("couldn't save the %s rankings", g), err))
		}

		results = append(results, res)
		rows = append(rows, []string{res.Gender, strconv.Itoa(res.Count), res.EffectiveDate.Format(time.DateOnly)})
	}

	return formatter.Write(results, []string{"GENDER", "SAVED", "EFFECTIVE"}, rows)
}
