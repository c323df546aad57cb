package testutil

import (
	"context"
	"rugbyrank/api/dto"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock Implementations used on the Rankings service tests.
// ============================================================================

// gRPC Client mock implementations.
type MockFetcherGRPCClient struct {
	mock.Mock
}

func (m *MockFetcherGRPCClient) GetRankings(ctx context.Context, g gender.Gender) (*rpc.RankingsResponse, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(*rpc.RankingsResponse), args.Error(1)
}

func (m *MockFetcherGRPCClient) GetFixtures(ctx context.Context, g gender.Gender, start, end time.Time) (*rpc.FixturesResponse, error) {
	args := m.Called(ctx, g, start, end)
	return args.Get(0).(*rpc.FixturesResponse), args.Error(1)
}

func (m *MockFetcherGRPCClient) SaveSnapshot(ctx context.Context, g gender.Gender) (*rpc.SnapshotResponse, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(*rpc.SnapshotResponse), args.Error(1)
}

// Memory cache mock implementations.
type MockMemCache struct {
	mock.Mock
}

func (m *MockMemCache) Get(key string) any {
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockMemCache) Set(key string, value any, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockMemCache) Delete(key string) {
	m.Called(key)
}

// ============================================================================
// Mock Implementations used on the History service tests.
// ============================================================================

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) List(ctx context.Context, g gender.Gender, start, end time.Time, teamIDs []string) ([]dto.HistoryEntry, error) {
	args := m.Called(ctx, g, start, end, teamIDs)
	return args.Get(0).([]dto.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) Dates(ctx context.Context, g gender.Gender) ([]time.Time, error) {
	args := m.Called(ctx, g)
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockHistoryRepository) Teams(ctx context.Context, g gender.Gender) ([]dto.HistoryTeam, error) {
	args := m.Called(ctx, g)
	return args.Get(0).([]dto.HistoryTeam), args.Error(1)
}

func (m *MockHistoryRepository) Latest(ctx context.Context, g gender.Gender) (*time.Time, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockHistoryRepository) AtDate(ctx context.Context, g gender.Gender, date time.Time) ([]dto.HistoryEntry, error) {
	args := m.Called(ctx, g, date)
	return args.Get(0).([]dto.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) Team(ctx context.Context, g gender.Gender, teamID string, start, end *time.Time) ([]dto.HistoryEntry, error) {
	args := m.Called(ctx, g, teamID, start, end)
	return args.Get(0).([]dto.HistoryEntry), args.Error(1)
}

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
