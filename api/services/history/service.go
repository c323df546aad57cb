package historyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"rugbyrank/api/filters"
	"rugbyrank/api/repositories"
	"time"
)

const (
	HistoryMemoryCacheDuration = time.Minute
	HistoryRedisCacheDuration  = 5 * time.Minute
)

type HistoryRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type MemCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
}

// History service, reading the snapshots saved by the fetcher.
type HistoryService struct {
	memCache   MemCache
	redis      HistoryRedisClient
	repository repositories.HistoryRepository
}

// HistoryServiceDeps is the dependency list for the history service.
// Redis is optional.
type HistoryServiceDeps struct {
	MemCache   MemCache
	Redis      HistoryRedisClient
	Repository repositories.HistoryRepository
}

// NewHistoryService creates a history service.
func NewHistoryService(deps *HistoryServiceDeps) *HistoryService {
	return &HistoryService{
		memCache:   deps.MemCache,
		redis:      deps.Redis,
		repository: deps.Repository,
	}
}

// Query runs the action of the filter, returning the JSON body.
func (hs *HistoryService) Query(ctx context.Context, filter *filters.HistoryFilter) (json.RawMessage, error) {
	key := filter.CacheKey()

	if mem, ok := hs.memCache.Get(key).(json.RawMessage); ok {
		return mem, nil
	}

	if redisData := hs.getFromRedis(ctx, key); redisData != nil {
		hs.memCache.Set(key, redisData, HistoryMemoryCacheDuration)
		return redisData, nil
	}

	result, err := hs.run(ctx, filter)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal the history: %w", err)
	}

	hs.populateCaches(ctx, key, body)
	return body, nil
}

// Run the action on the repository.
func (hs *HistoryService) run(ctx context.Context, filter *filters.HistoryFilter) (map[string]any, error) {
	g := filter.Gender

	switch filter.Action {
	case filters.HistoryDates:
		dates, err := hs.repository.Dates(ctx, g)
		if err != nil {
			return nil, err
		}
		return map[string]any{"dates": dates}, nil

	case filters.HistoryTeams:
		teams, err := hs.repository.Teams(ctx, g)
		if err != nil {
			return nil, err
		}
		return map[string]any{"teams": teams}, nil

	case filters.HistoryLatest:
		latest, err := hs.repository.Latest(ctx, g)
		if err != nil {
			return nil, err
		}
		return map[string]any{"date": latest}, nil

	case filters.HistoryAtDate:
		entries, err := hs.repository.AtDate(ctx, g, *filter.Date)
		if err != nil {
			return nil, err
		}
		return map[string]any{"rankings": entries, "date": filter.Date}, nil

	case filters.HistoryTeam:
		entries, err := hs.repository.Team(ctx, g, filter.TeamID, filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, err
		}
		return map[string]any{"history": entries}, nil

	default:
		entries, err := hs.repository.List(ctx, g, *filter.StartDate, *filter.EndDate, filter.TeamIDs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"rankings": entries}, nil
	}
}

// getFromRedis returns the cached body, nil on a miss or a failure.
func (hs *HistoryService) getFromRedis(ctx context.Context, key string) json.RawMessage {
	if hs.redis == nil {
		return nil
	}

	value, err := hs.redis.Get(ctx, key)
	if err != nil {
		log.Printf("Couldn't read %s from redis: %v", key, err)
		return nil
	}
	if value == "" {
		return nil
	}

	return json.RawMessage(value)
}

// populateCaches saves the body on both caches.
func (hs *HistoryService) populateCaches(ctx context.Context, key string, body json.RawMessage) {
	hs.memCache.Set(key, body, HistoryMemoryCacheDuration)

	if hs.redis == nil {
		return
	}
	if err := hs.redis.Set(ctx, key, string(body), HistoryRedisCacheDuration); err != nil {
		log.Printf("Couldn't cache %s on redis: %v", key, err)
	}
}
