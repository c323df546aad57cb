package snapshot

import (
	"context"
	"errors"
	"fmt"
	"rugbyrank/fetcher/data/worldrugby"
	"rugbyrank/fetcher/repositories"
	"rugbyrank/pkg/gender"
	"time"
)

// Fetcher gets the rankings releases.
type Fetcher interface {
	GetRankings(ctx context.Context, g gender.Gender, date string, onDemand bool) (*worldrugby.RankingsResponse, error)
}

// Logger receives the progress of long runs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result of a saved release.
type Result struct {
	Gender        gender.Gender
	Count         int
	EffectiveDate time.Time
}

// BackfillResult counts the dates of a backfill.
type BackfillResult struct {
	Saved  int
	Failed int
}

// SnapshotService saves the rankings releases into the history.
type SnapshotService struct {
	fetcher    Fetcher
	repository repositories.SnapshotRepository
}

// NewSnapshotService creates the snapshot service.
func NewSnapshotService(fetcher Fetcher, repository repositories.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		fetcher:    fetcher,
		repository: repository,
	}
}

// Snapshot saves the current release.
func (s *SnapshotService) Snapshot(ctx context.Context, g gender.Gender) (*Result, error) {
	return s.save(ctx, g, nil, false)
}

// SnapshotAt saves the release that was effective at the date.
func (s *SnapshotService) SnapshotAt(ctx context.Context, g gender.Gender, date time.Time) (*Result, error) {
	return s.save(ctx, g, &date, false)
}

// Fetch a release and save it on its own effective date.
// A nil date means the current release.
func (s *SnapshotService) save(ctx context.Context, g gender.Gender, date *time.Time, onDemand bool) (*Result, error) {
	var requested string
	if date != nil {
		requested = date.UTC().Format(time.DateOnly)
	}

	data, err := s.fetcher.GetRankings(ctx, g, requested, onDemand)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch the %s rankings: %w", g, err)
	}

	ranked, err := worldrugby.TransformRankings(data)
	if err != nil {
		return nil, err
	}

	// Releases without a effective time are saved on the requested date, or today.
	effectiveDate := data.EffectiveTime.Time
	if effectiveDate.IsZero() {
		effectiveDate = time.Now().UTC()
		if date != nil {
			effectiveDate = date.UTC().Truncate(24 * time.Hour)
		}
	}

	count, err := s.repository.SaveSnapshot(ctx, ranked, effectiveDate, g)
	if err != nil {
		return nil, err
	}

	return &Result{Gender: g, Count: count, EffectiveDate: effectiveDate}, nil
}

// Backfill saves the release of every step between the dates.
// A failing date is logged and skipped, the run only stops if the context is done.
func (s *SnapshotService) Backfill(
	ctx context.Context,
	g gender.Gender,
	from, to time.Time,
	step time.Duration,
	logger Logger,
) (*BackfillResult, error) {
	if step <= 0 {
		return nil, errors.New("backfill step must be positive")
	}
	if to.Before(from) {
		return nil, errors.New("backfill end is before the start")
	}

	result := &BackfillResult{}

	for date := from; !date.After(to); date = date.Add(step) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		saved, err := s.save(ctx, g, &date, false)
		if err != nil {
			// Stop when the context was cancelled mid request.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Failed++
			logger.Errorf("Failed to save the %s rankings of %s: %v", g, date.Format(time.DateOnly), err)
			continue
		}

		result.Saved++
		logger.Infof("Saved %d %s rankings effective at %s", saved.Count, g, saved.EffectiveDate.Format(time.DateOnly))
	}

	return result, nil
}
