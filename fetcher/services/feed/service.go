package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"rugbyrank/fetcher/data/worldrugby"
	"rugbyrank/fetcher/repositories"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"time"
)

// Fetcher is the feed client used by the service.
type Fetcher interface {
	GetRankings(ctx context.Context, g gender.Gender, date string, onDemand bool) (*worldrugby.RankingsResponse, error)
	GetMatches(ctx context.Context, g gender.Gender, startDate, endDate string, onDemand bool) ([]worldrugby.Match, error)
}

// RedisClient is the subset of the redis client the cache needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Rankings is a transformed rankings release.
type Rankings struct {
	Rankings      []rankings.Ranking `json:"rankings"`
	EffectiveTime time.Time          `json:"effectiveTime"`
	Label         string             `json:"label"`
}

// Fixtures between ranked teams, relative to the release they were filtered against.
type Fixtures struct {
	Fixtures      []rankings.Fixture `json:"fixtures"`
	EffectiveTime time.Time          `json:"effectiveTime"`
}

// FeedService caches the feed on Redis, with the database as a last resort.
type FeedService struct {
	fetcher       Fetcher
	redis         RedisClient
	backup        repositories.CacheRepository
	ttl           time.Duration
	detectNeutral bool
}

// Deps holds the dependencies of the service.
// Redis and Backup are optional.
type Deps struct {
	Fetcher       Fetcher
	Redis         RedisClient
	Backup        repositories.CacheRepository
	TTL           time.Duration
	DetectNeutral bool
}

// NewFeedService creates the feed service.
func NewFeedService(deps *Deps) *FeedService {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &FeedService{
		fetcher:       deps.Fetcher,
		redis:         deps.Redis,
		backup:        deps.Backup,
		ttl:           ttl,
		detectNeutral: deps.DetectNeutral,
	}
}

func rankingsKey(g gender.Gender, date string) string {
	if date == "" {
		date = "current"
	}
	return fmt.Sprintf("feed:rankings:%s:%s", g, date)
}

// fixturesKey is scoped to the release the fixtures were filtered against,
// so a new release never reuses fixtures it already counts.
func fixturesKey(g gender.Gender, release time.Time, startDate, endDate string) string {
	return fmt.Sprintf("feed:fixtures:%s:%d:%s:%s", g, release.UTC().Unix(), startDate, endDate)
}

// GetRankings returns the release for the date, or the current one for a empty date.
func (s *FeedService) GetRankings(ctx context.Context, g gender.Gender, date string) (*Rankings, error) {
	return readThrough(ctx, s, rankingsKey(g, date), func() (*Rankings, error) {
		return s.fetchRankings(ctx, g, date)
	})
}

// GetFixtures returns the fixtures on the window that still count against the current release.
func (s *FeedService) GetFixtures(ctx context.Context, g gender.Gender, startDate, endDate string) (*Fixtures, error) {
	current, err := s.GetRankings(ctx, g, "")
	if err != nil {
		return nil, err
	}

	return readThrough(ctx, s, fixturesKey(g, current.EffectiveTime, startDate, endDate), func() (*Fixtures, error) {
		matches, err := s.fetcher.GetMatches(ctx, g, startDate, endDate, true)
		if err != nil {
			return nil, err
		}

		fixtures := worldrugby.TransformFixtures(
			matches,
			current.EffectiveTime,
			worldrugby.RankedIDs(current.Rankings),
			s.detectNeutral,
		)

		return &Fixtures{Fixtures: fixtures, EffectiveTime: current.EffectiveTime}, nil
	})
}

// Revalidate drops the current release from the cache and fetches it again.
func (s *FeedService) Revalidate(ctx context.Context, g gender.Gender) (*Rankings, error) {
	key := rankingsKey(g, "")

	if s.redis != nil {
		if err := s.redis.Del(ctx, key); err != nil {
			return nil, fmt.Errorf("couldn't drop %s: %w", key, err)
		}
	}

	fresh, err := s.fetchRankings(ctx, g, "")
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, fresh)
	return fresh, nil
}

// Fetch and transform the release.
func (s *FeedService) fetchRankings(ctx context.Context, g gender.Gender, date string) (*Rankings, error) {
	data, err := s.fetcher.GetRankings(ctx, g, date, true)
	if err != nil {
		return nil, err
	}

	ranked, err := worldrugby.TransformRankings(data)
	if err != nil {
		return nil, err
	}

	return &Rankings{
		Rankings:      ranked,
		EffectiveTime: data.EffectiveTime.Time,
		Label:         data.Label,
	}, nil
}

// readThrough returns the cached value, loading and storing it on a miss.
// When the load fails the database backup is used, even if it's stale.
func readThrough[T any](ctx context.Context, s *FeedService, key string, load func() (*T, error)) (*T, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key)
		if err != nil {
			log.Printf("Couldn't read %s from redis: %v", key, err)
		}
		if cached != "" {
			var value T
			if err := json.Unmarshal([]byte(cached), &value); err == nil {
				return &value, nil
			}
			log.Printf("Invalid cached value on %s, refetching", key)
		}
	}

	value, err := load()
	if err == nil {
		s.store(ctx, key, value)
		return value, nil
	}

	if s.backup != nil {
		backup, backupErr := s.backup.GetKey(ctx, key)
		if backupErr == nil && backup != "" {
			var value T
			if jsonErr := json.Unmarshal([]byte(backup), &value); jsonErr == nil {
				log.Printf("Serving %s from the database backup: %v", key, err)
				return &value, nil
			}
		}
	}

	return nil, err
}

// store saves the value on redis and on the backup.
// Failures are only logged, the value is still valid.
func (s *FeedService) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("Couldn't marshal %s: %v", key, err)
		return
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, string(payload), s.ttl); err != nil {
			log.Printf("Couldn't cache %s on redis: %v", key, err)
		}
	}

	if s.backup != nil {
		if err := s.backup.SetKey(ctx, key, string(payload)); err != nil {
			log.Printf("Couldn't backup %s: %v", key, err)
		}
	}
}
