package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"rugbyrank/fetcher/data/worldrugby"
	"rugbyrank/fetcher/repositories"
	"rugbyrank/fetcher/requests"
	snapshotservice "rugbyrank/fetcher/services/snapshot"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/database"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/logger"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// BackfillOptions holds the flags of the backfill command.
type BackfillOptions struct {
	From string
	To   string
	Step time.Duration
}

// BackfillRange is the resolved range of a backfill.
type BackfillRange struct {
	From time.Time
	To   time.Time
}

// backfillRow is the result of a single population.
type backfillRow struct {
	Gender string `json:"gender"`
	From   string `json:"from"`
	To     string `json:"to"`
	Saved  int    `json:"saved"`
	Failed int    `json:"failed"`
}

// NewBackfillCommand creates the backfill command.
func NewBackfillCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackfillOptions{}

	cmd := &cobra.Command{
		Use:   "backfill [gender...]",
		Short: "Save the historical rankings releases on the database",
		Long: `Fetch the rankings release of each step between two dates and save them as snapshots.
The start defaults to the first year the population was ranked and the end to today.
A failing date is logged and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last date (YYYY-MM-DD)")
	cmd.Flags().DurationVar(&opts.Step, "step", 7*24*time.Hour, "interval between releases")

	return cmd
}

// ResolveRange parses the flags of the backfill, filling the defaults of the population.
func ResolveRange(opts *BackfillOptions, g gender.Gender, now time.Time) (BackfillRange, error) {
	r := BackfillRange{
		From: time.Date(g.FirstRankingYear(), time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	if opts.From != "" {
		from, err := time.Parse(time.DateOnly, opts.From)
		if err != nil {
			return r, WrapExitError(ExitCommandError, "invalid --from", err)
		}
		r.From = from
	}
	if opts.To != "" {
		to, err := time.Parse(time.DateOnly, opts.To)
		if err != nil {
			return r, WrapExitError(ExitCommandError, "invalid --to", err)
		}
		r.To = to
	}

	if r.To.Before(r.From) {
		return r, NewExitError(ExitCommandError, "--to is before --from")
	}
	if opts.Step <= 0 {
		return r, NewExitError(ExitCommandError, "--step must be positive")
	}
	return r, nil
}

// backfillLogger writes to the job log and mirrors it on verbose output.
type backfillLogger struct {
	file      *logger.NewLogger
	formatter *OutputFormatter
}

func (l *backfillLogger) Infof(format string, args ...any) {
	l.file.Infof(format, args...)
	l.formatter.VerboseLog(format, args...)
}

func (l *backfillLogger) Errorf(format string, args ...any) {
	l.file.Errorf(format, args...)
	l.formatter.VerboseLog(format, args...)
}

func runBackfill(rootOpts *RootOptions, opts *BackfillOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(rootOpts, cmd)

	genders, err := parseGenders(args)
	if err != nil {
		return formatter.Fail(err)
	}

	// Resolve every range before touching the database.
	now := time.Now().UTC()
	ranges := make(map[gender.Gender]BackfillRange, len(genders))
	for _, g := range genders {
		r, err := ResolveRange(opts, g, now)
		if err != nil {
			return formatter.Fail(err)
		}
		ranges[g] = r
	}

	cfg, err := config.Load()
	if err != nil {
		return formatter.Fail(WrapExitError(ExitCommandError, "couldn't load the configuration", err))
	}

	service, closeDB, err := newSnapshotService(cfg)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitFailure, "couldn't start the snapshot service", err))
	}
	defer closeDB()

	jobLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitFailure, "couldn't create the job logger", err))
	}
	defer jobLogger.Close()
	progress := &backfillLogger{file: jobLogger, formatter: formatter}

	results := make([]backfillRow, 0, len(genders))
	rows := make([][]string, 0, len(genders))
	var runErr error
	for _, g := range genders {
		r := ranges[g]
		res, err := service.Backfill(cmd.Context(), g, r.From, r.To, opts.Step, progress)
		if err != nil {
			runErr = WrapExitError(ExitFailure, fmt.Sprintf("%s backfill stopped", g), err)
		}
		if res == nil {
			break
		}

		row := backfillRow{
			Gender: g.String(),
			From:   r.From.Format(time.DateOnly),
			To:     r.To.Format(time.DateOnly),
			Saved:  res.Saved,
			Failed: res.Failed,
		}
		results = append(results, row)
		rows = append(rows, []string{row.Gender, row.From, row.To, strconv.Itoa(row.Saved), strconv.Itoa(row.Failed)})

		if runErr != nil {
			break
		}
	}

	objectKey := fmt.Sprintf("backfill/%s-%s.log", now.Format(time.DateOnly), uuid.NewString())
	if err := jobLogger.UploadToS3Bucket(context.Background(), objectKey); err != nil {
		log.Printf("Couldn't send the log to s3: %v", err)
	}

	if runErr != nil {
		return formatter.Fail(runErr)
	}
	return formatter.Write(results, []string{"GENDER", "FROM", "TO", "SAVED", "FAILED"}, rows)
}

// newSnapshotService connects to the database and the feed.
func newSnapshotService(cfg *config.Config) (*snapshotservice.SnapshotService, func(), error) {
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		database.Close(db)
		return nil, nil, err
	}
	if err := database.RunMigrations(cfg.Database, sqlDB); err != nil {
		database.Close(db)
		return nil, nil, err
	}

	repository, err := repositories.NewSnapshotRepository(db)
	if err != nil {
		database.Close(db)
		return nil, nil, err
	}

	limiter := requests.NewRateLimiter(cfg.Limits)
	fetcher := worldrugby.NewFetcher(limiter, &http.Client{Timeout: cfg.Feed.Timeout}, cfg.Feed.BaseURL)

	return snapshotservice.NewSnapshotService(fetcher, repository), func() { database.Close(db) }, nil
}
