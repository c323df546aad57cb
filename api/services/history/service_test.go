package historyservice

import (
	"context"
	"encoding/json"
	"errors"
	"rugbyrank/api/dto"
	"rugbyrank/api/filters"
	"rugbyrank/api/services/testutil"
	helpers "rugbyrank/internal/testutil"
	"rugbyrank/pkg/gender"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var snapshotDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupTestService() (*HistoryService, *testutil.MockHistoryRepository, *testutil.MockMemCache, *testutil.MockRedisClient) {
	repository := &testutil.MockHistoryRepository{}
	memCache := &testutil.MockMemCache{}
	redis := &testutil.MockRedisClient{}

	service := NewHistoryService(&HistoryServiceDeps{
		MemCache:   memCache,
		Redis:      redis,
		Repository: repository,
	})

	return service, repository, memCache, redis
}

func newFilter(t *testing.T, qp filters.HistoryQueryParams) *filters.HistoryFilter {
	t.Helper()
	filter, err := filters.NewHistoryFilter(gender.Men, &qp)
	require.NoError(t, err)
	return filter
}

func entries() []dto.HistoryEntry {
	return []dto.HistoryEntry{
		{TeamID: "1", TeamName: "Ireland", Points: 92, Position: 1, EffectiveDate: snapshotDate},
	}
}

func TestQueryFromMemCache(t *testing.T) {
	service, repository, memCache, redis := setupTestService()
	filter := newFilter(t, filters.HistoryQueryParams{Action: "dates"})

	memCache.On("Get", filter.CacheKey()).Return(json.RawMessage(`{"dates":[]}`))

	body, err := service.Query(context.Background(), filter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dates":[]}`, string(body))

	testutil.VerifyAllMocks(t, repository, memCache, redis)
}

func TestQueryFromRedis(t *testing.T) {
	service, repository, memCache, redis := setupTestService()
	ctx := context.Background()
	filter := newFilter(t, filters.HistoryQueryParams{Action: "latest"})
	key := filter.CacheKey()

	memCache.On("Get", key).Return(nil)
	redis.On("Get", ctx, key).Return(`{"date":null}`, nil)
	memCache.On("Set", key, json.RawMessage(`{"date":null}`), HistoryMemoryCacheDuration).Return()

	body, err := service.Query(ctx, filter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(body))

	testutil.VerifyAllMocks(t, repository, memCache, redis)
}

func TestQueryActions(t *testing.T) {
	tests := []struct {
		name     string
		params   filters.HistoryQueryParams
		setup    func(repository *testutil.MockHistoryRepository)
		expected string
	}{
		{
			name:   "list",
			params: filters.HistoryQueryParams{StartDate: "2024-01-01", EndDate: "2024-01-31", TeamIDs: "1"},
			setup: func(repository *testutil.MockHistoryRepository) {
				end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
				repository.On("List", mock.Anything, gender.Men, snapshotDate, end, []string{"1"}).Return(entries(), nil)
			},
			expected: `{"rankings":[{"teamId":"1","teamName":"Ireland","abbreviation":"","points":92,"position":1,"effectiveDate":"2024-01-01T00:00:00Z"}]}`,
		},
		{
			name:   "dates",
			params: filters.HistoryQueryParams{Action: "dates"},
			setup: func(repository *testutil.MockHistoryRepository) {
				repository.On("Dates", mock.Anything, gender.Men).Return([]time.Time{snapshotDate}, nil)
			},
			expected: `{"dates":["2024-01-01T00:00:00Z"]}`,
		},
		{
			name:   "teams",
			params: filters.HistoryQueryParams{Action: "teams"},
			setup: func(repository *testutil.MockHistoryRepository) {
				repository.On("Teams", mock.Anything, gender.Men).Return([]dto.HistoryTeam{{TeamID: "1", TeamName: "Ireland", Abbreviation: "IRE"}}, nil)
			},
			expected: `{"teams":[{"teamId":"1","teamName":"Ireland","abbreviation":"IRE"}]}`,
		},
		{
			name:   "latest empty",
			params: filters.HistoryQueryParams{Action: "latest"},
			setup: func(repository *testutil.MockHistoryRepository) {
				repository.On("Latest", mock.Anything, gender.Men).Return((*time.Time)(nil), nil)
			},
			expected: `{"date":null}`,
		},
		{
			name:   "at date",
			params: filters.HistoryQueryParams{Action: "atDate", Date: "2024-01-01"},
			setup: func(repository *testutil.MockHistoryRepository) {
				repository.On("AtDate", mock.Anything, gender.Men, snapshotDate).Return([]dto.HistoryEntry{}, nil)
			},
			expected: `{"rankings":[],"date":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:   "team",
			params: filters.HistoryQueryParams{Action: "team", TeamID: "1"},
			setup: func(repository *testutil.MockHistoryRepository) {
				repository.On("Team", mock.Anything, gender.Men, "1", (*time.Time)(nil), (*time.Time)(nil)).Return([]dto.HistoryEntry{}, nil)
			},
			expected: `{"history":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository, memCache, redis := setupTestService()
			ctx := context.Background()
			filter := newFilter(t, tt.params)
			key := filter.CacheKey()

			memCache.On("Get", key).Return(nil)
			redis.On("Get", ctx, key).Return("", nil)
			tt.setup(repository)
			memCache.On("Set", key, mock.Anything, HistoryMemoryCacheDuration).Return()
			redis.On("Set", ctx, key, mock.AnythingOfType("string"), HistoryRedisCacheDuration).Return(nil)

			body, err := service.Query(ctx, filter)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))

			testutil.VerifyAllMocks(t, repository, memCache, redis)
		})
	}
}

func TestQueryRepositoryError(t *testing.T) {
	service, repository, memCache, redis := setupTestService()
	ctx := context.Background()
	filter := newFilter(t, filters.HistoryQueryParams{Action: "dates"})
	key := filter.CacheKey()

	memCache.On("Get", key).Return(nil)
	redis.On("Get", ctx, key).Return("", errors.New("redis down"))
	dbErr := helpers.GetMockRepoError[[]time.Time]()
	repository.On("Dates", ctx, gender.Men).Return(dbErr.Data, dbErr.Err)

	body, err := service.Query(ctx, filter)
	assert.EqualError(t, err, helpers.DatabaseError)
	assert.Nil(t, body)

	memCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueryWithoutRedis(t *testing.T) {
	repository := &testutil.MockHistoryRepository{}
	memCache := &testutil.MockMemCache{}
	service := NewHistoryService(&HistoryServiceDeps{MemCache: memCache, Repository: repository})
	ctx := context.Background()
	filter := newFilter(t, filters.HistoryQueryParams{Action: "dates"})

	memCache.On("Get", filter.CacheKey()).Return(nil)
	dates := helpers.NewSuccessResult([]time.Time{})
	repository.On("Dates", ctx, gender.Men).Return(dates.Data, dates.Err)
	memCache.On("Set", filter.CacheKey(), mock.Anything, HistoryMemoryCacheDuration).Return()

	body, err := service.Query(ctx, filter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dates":[]}`, string(body))
}
