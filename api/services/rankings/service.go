package rankingsservice

import (
	"context"
	"fmt"
	"rugbyrank/api/dto"
	"rugbyrank/api/filters"
	grpcclient "rugbyrank/api/grpc"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"time"
)

const (
	RankingsMemoryCacheDuration = 5 * time.Minute

	// Window of fixtures shown around today.
	FixturesLookBack  = 30 * 24 * time.Hour
	FixturesLookAhead = 180 * 24 * time.Hour
)

// MemCache is the in-memory cache used in front of the fetcher.
type MemCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

// RankingsService serves the live rankings and runs the engine over them.
type RankingsService struct {
	grpcClient grpcclient.FetcherGRPCClient
	memCache   MemCache
	now        func() time.Time
}

// RankingsServiceDeps is the dependency list for the rankings service.
type RankingsServiceDeps struct {
	GrpcClient grpcclient.FetcherGRPCClient
	MemCache   MemCache
}

// NewRankingsService creates a rankings service.
func NewRankingsService(deps *RankingsServiceDeps) *RankingsService {
	return &RankingsService{
		grpcClient: deps.GrpcClient,
		memCache:   deps.MemCache,
		now:        time.Now,
	}
}

// GetRankings returns the live release of the gender.
func (rs *RankingsService) GetRankings(ctx context.Context, g gender.Gender) (*dto.Rankings, error) {
	key := "rankings:" + string(g)
	if cached, ok := rs.memCache.Get(key).(*dto.Rankings); ok {
		return cached, nil
	}

	resp, err := rs.grpcClient.GetRankings(ctx, g)
	if err != nil {
		return nil, err
	}

	result := &dto.Rankings{
		Rankings:      resp.Rankings,
		EffectiveTime: resp.EffectiveTime,
		Label:         resp.Label,
	}
	rs.memCache.Set(key, result, RankingsMemoryCacheDuration)

	return result, nil
}

// GetFixtures returns the played fixtures that still count and the ones of the next week.
func (rs *RankingsService) GetFixtures(ctx context.Context, g gender.Gender) (*dto.Fixtures, error) {
	key := "fixtures:" + string(g)
	if cached, ok := rs.memCache.Get(key).(*dto.Fixtures); ok {
		return cached, nil
	}

	now := rs.now().UTC()
	resp, err := rs.grpcClient.GetFixtures(ctx, g, now.Add(-FixturesLookBack), now.Add(FixturesLookAhead))
	if err != nil {
		return nil, err
	}

	completed, upcoming := rankings.SplitFixtures(resp.Fixtures, now)
	result := &dto.Fixtures{
		Completed:     completed,
		Upcoming:      upcoming,
		EffectiveTime: resp.EffectiveTime,
	}
	rs.memCache.Set(key, result, RankingsMemoryCacheDuration)

	return result, nil
}

// Calculate applies the fixtures in order over the given rankings, or the live ones when none are given.
func (rs *RankingsService) Calculate(ctx context.Context, g gender.Gender, req *dto.CalculateRequest) (*dto.Calculation, error) {
	if err := rankings.ValidateFixtures(req.Fixtures); err != nil {
		return nil, err
	}

	baseline := req.Rankings
	var effectiveTime *time.Time

	if len(baseline) == 0 {
		live, err := rs.GetRankings(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("couldn't get the baseline: %w", err)
		}
		baseline = live.Rankings
		effectiveTime = &live.EffectiveTime
	} else if err := rankings.ValidateRankings(baseline); err != nil {
		return nil, err
	}

	return &dto.Calculation{
		Rankings:      rankings.ApplyFixtures(baseline, req.Fixtures),
		EffectiveTime: effectiveTime,
	}, nil
}

// Outcomes returns the change of the home team for each canonical result.
func (rs *RankingsService) Outcomes(filter *filters.OutcomesFilter) *dto.Outcomes {
	return &dto.Outcomes{
		HomeRating: filter.HomeRating,
		AwayRating: filter.AwayRating,
		Outcomes: rankings.GetFixtureOutcomes(
			filter.HomeRating,
			filter.AwayRating,
			filter.IsMajorEvent,
			filter.IsNeutralVenue,
		),
	}
}

// SaveSnapshot asks the fetcher to persist the current release.
func (rs *RankingsService) SaveSnapshot(ctx context.Context, g gender.Gender) (*dto.Snapshot, error) {
	resp, err := rs.grpcClient.SaveSnapshot(ctx, g)
	if err != nil {
		return nil, err
	}

	return &dto.Snapshot{
		Gender:        resp.Gender,
		Count:         resp.Count,
		EffectiveDate: resp.EffectiveDate,
	}, nil
}
