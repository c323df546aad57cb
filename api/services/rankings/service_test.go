package rankingsservice

import (
	"context"
	"errors"
	"rugbyrank/api/dto"
	"rugbyrank/api/filters"
	"rugbyrank/api/services/testutil"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"rugbyrank/pkg/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestService() (*RankingsService, *testutil.MockFetcherGRPCClient, *testutil.MockMemCache) {
	grpcClient := &testutil.MockFetcherGRPCClient{}
	memCache := &testutil.MockMemCache{}

	service := NewRankingsService(&RankingsServiceDeps{
		GrpcClient: grpcClient,
		MemCache:   memCache,
	})
	service.now = func() time.Time { return now }

	return service, grpcClient, memCache
}

func score(v int) *int {
	return &v
}

func baseline() []rankings.Ranking {
	return []rankings.Ranking{
		{Team: rankings.Team{ID: "A"}, Points: 90, Position: 1, PreviousPoints: 90, PreviousPosition: 1},
		{Team: rankings.Team{ID: "B"}, Points: 85, Position: 2, PreviousPoints: 85, PreviousPosition: 2},
	}
}

func TestNewRankingsService(t *testing.T) {
	service, _, _ := setupTestService()
	assert.NotNil(t, service)
	assert.NotNil(t, service.grpcClient)
	assert.NotNil(t, service.memCache)
}

func TestGetRankings(t *testing.T) {
	tests := []struct {
		name         string
		testStrategy string
		grpcErr      error
	}{
		{name: "fromMemCache", testStrategy: "memcache"},
		{name: "fromFetcher", testStrategy: "nocache"},
		{name: "fetcherError", testStrategy: "nocache", grpcErr: errors.New("fetcher down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, grpcClient, memCache := setupTestService()
			ctx := context.Background()
			expected := &dto.Rankings{Rankings: baseline(), EffectiveTime: now, Label: "live"}

			switch tt.testStrategy {
			case "memcache":
				memCache.On("Get", "rankings:men").Return(expected)
			case "nocache":
				memCache.On("Get", "rankings:men").Return(nil)
				if tt.grpcErr != nil {
					grpcClient.On("GetRankings", ctx, gender.Men).Return((*rpc.RankingsResponse)(nil), tt.grpcErr)
				} else {
					grpcClient.On("GetRankings", ctx, gender.Men).Return(&rpc.RankingsResponse{
						Rankings:      baseline(),
						EffectiveTime: now,
						Label:         "live",
					}, nil)
					memCache.On("Set", "rankings:men", expected, RankingsMemoryCacheDuration).Return()
				}
			}

			result, err := service.GetRankings(ctx, gender.Men)
			if tt.grpcErr != nil {
				assert.ErrorIs(t, err, tt.grpcErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, expected, result)
			}

			testutil.VerifyAllMocks(t, grpcClient, memCache)
		})
	}
}

func TestGetFixtures(t *testing.T) {
	service, grpcClient, memCache := setupTestService()
	ctx := context.Background()

	played := now.Add(-48 * time.Hour)
	soon := now.Add(48 * time.Hour)
	later := now.Add(30 * 24 * time.Hour)

	memCache.On("Get", "fixtures:women").Return(nil)
	grpcClient.On("GetFixtures", ctx, gender.Women, now.Add(-FixturesLookBack), now.Add(FixturesLookAhead)).
		Return(&rpc.FixturesResponse{
			Fixtures: []rankings.Fixture{
				{ID: "played", HomeScore: score(10), AwayScore: score(3), Date: &played},
				{ID: "soon", Date: &soon},
				{ID: "later", Date: &later},
			},
			EffectiveTime: now,
		}, nil)
	memCache.On("Set", "fixtures:women", mock.AnythingOfType("*dto.Fixtures"), RankingsMemoryCacheDuration).Return()

	result, err := service.GetFixtures(ctx, gender.Women)
	require.NoError(t, err)

	require.Len(t, result.Completed, 1)
	assert.Equal(t, "played", result.Completed[0].ID)
	require.Len(t, result.Upcoming, 1)
	assert.Equal(t, "soon", result.Upcoming[0].ID)

	testutil.VerifyAllMocks(t, grpcClient, memCache)
}

func TestCalculateWithRankings(t *testing.T) {
	service, grpcClient, memCache := setupTestService()

	req := &dto.CalculateRequest{
		Rankings: baseline(),
		Fixtures: []rankings.Fixture{
			{ID: "f1", HomeTeam: rankings.Team{ID: "A"}, AwayTeam: rankings.Team{ID: "B"}, HomeScore: score(20), AwayScore: score(15)},
		},
	}

	result, err := service.Calculate(context.Background(), gender.Men, req)
	require.NoError(t, err)

	require.Len(t, result.Rankings, 2)
	assert.Nil(t, result.EffectiveTime)
	assert.Equal(t, "A", result.Rankings[0].Team.ID)
	assert.InDelta(t, 90.2, result.Rankings[0].Points, delta)
	assert.InDelta(t, 0.2, result.Rankings[0].Change, delta)
	assert.InDelta(t, 84.8, result.Rankings[1].Points, delta)
	assert.Equal(t, 0, result.Rankings[1].PositionChange)

	grpcClient.AssertNotCalled(t, "GetRankings", mock.Anything, mock.Anything)
	memCache.AssertNotCalled(t, "Get", mock.Anything)
}

func TestCalculateWithLiveBaseline(t *testing.T) {
	service, grpcClient, memCache := setupTestService()
	ctx := context.Background()

	memCache.On("Get", "rankings:men").Return(&dto.Rankings{Rankings: baseline(), EffectiveTime: now})

	req := &dto.CalculateRequest{
		Fixtures: []rankings.Fixture{
			{
				ID:             "f1",
				HomeTeam:       rankings.Team{ID: "B"},
				AwayTeam:       rankings.Team{ID: "A"},
				HomeScore:      score(40),
				AwayScore:      score(0),
				IsMajorEvent:   true,
				IsNeutralVenue: true,
			},
		},
	}

	result, err := service.Calculate(ctx, gender.Men, req)
	require.NoError(t, err)

	require.NotNil(t, result.EffectiveTime)
	assert.Equal(t, now, *result.EffectiveTime)
	assert.Equal(t, "B", result.Rankings[0].Team.ID)
	assert.InDelta(t, 89.5, result.Rankings[0].Points, delta)
	assert.Equal(t, 1, result.Rankings[0].PositionChange)
	assert.Equal(t, -1, result.Rankings[1].PositionChange)

	testutil.VerifyAllMocks(t, grpcClient, memCache)
}

func TestCalculateValidation(t *testing.T) {
	service, _, _ := setupTestService()
	ctx := context.Background()

	_, err := service.Calculate(ctx, gender.Men, &dto.CalculateRequest{
		Rankings: baseline(),
		Fixtures: []rankings.Fixture{
			{HomeTeam: rankings.Team{ID: "A"}, AwayTeam: rankings.Team{ID: "B"}, HomeScore: score(3)},
		},
	})
	assert.ErrorIs(t, err, rankings.ErrPartialScore)
	assert.True(t, rankings.IsValidationError(err))

	duplicated := append(baseline(), baseline()[0])
	_, err = service.Calculate(ctx, gender.Men, &dto.CalculateRequest{Rankings: duplicated})
	assert.ErrorIs(t, err, rankings.ErrDuplicateTeam)
}

func TestOutcomes(t *testing.T) {
	service, _, _ := setupTestService()

	result := service.Outcomes(&filters.OutcomesFilter{HomeRating: 90, AwayRating: 85})

	assert.Equal(t, 90.0, result.HomeRating)
	assert.InDelta(t, 0.3, result.Outcomes.HomeBigWin, delta)
	assert.InDelta(t, 0.2, result.Outcomes.HomeSmallWin, delta)
	assert.InDelta(t, -0.8, result.Outcomes.Draw, delta)
	assert.InDelta(t, -1.8, result.Outcomes.AwaySmallWin, delta)
	assert.InDelta(t, -2.7, result.Outcomes.AwayBigWin, delta)
}

func TestSaveSnapshot(t *testing.T) {
	service, grpcClient, _ := setupTestService()
	ctx := context.Background()

	grpcClient.On("SaveSnapshot", ctx, gender.Women).Return(&rpc.SnapshotResponse{
		Gender:        "women",
		Count:         20,
		EffectiveDate: now,
	}, nil)

	result, err := service.SaveSnapshot(ctx, gender.Women)
	require.NoError(t, err)
	assert.Equal(t, &dto.Snapshot{Gender: "women", Count: 20, EffectiveDate: now}, result)
}
