package jobs

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"rugbyrank/fetcher/data/worldrugby"
	"rugbyrank/fetcher/repositories"
	"rugbyrank/fetcher/requests"
	feedservice "rugbyrank/fetcher/services/feed"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/database"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/redis"
)

// Revalidator refreshes the cached release of a population.
type Revalidator interface {
	Revalidate(ctx context.Context, g gender.Gender) (*feedservice.Rankings, error)
}

// RevalidateCache refreshes the cached current rankings of every population.
func RevalidateCache(cfg *config.Config) error {
	log.Println("Starting feed cache revalidation")

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer database.Close(db)

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("couldn't get redis connection: %w", err)
	}
	defer redisClient.Close()

	backup, err := repositories.NewCacheRepository(db)
	if err != nil {
		return err
	}

	limiter := requests.NewRateLimiter(cfg.Limits)
	service := feedservice.NewFeedService(&feedservice.Deps{
		Fetcher:       worldrugby.NewFetcher(limiter, &http.Client{Timeout: cfg.Feed.Timeout}, cfg.Feed.BaseURL),
		Redis:         redisClient,
		Backup:        backup,
		TTL:           cfg.Feed.CacheTTL,
		DetectNeutral: cfg.Feed.DetectNeutralVenue,
	})

	if failed := revalidate(context.Background(), service, gender.All()); failed > 0 {
		return fmt.Errorf("%d revalidation(s) failed", failed)
	}
	return nil
}

// revalidate refreshes each population and returns how many failed.
func revalidate(ctx context.Context, r Revalidator, genders []gender.Gender) int {
	failed := 0
	for _, g := range genders {
		res, err := r.Revalidate(ctx, g)
		if err != nil {
			failed++
			log.Printf("Error revalidating the %s rankings: %v", g, err)
			continue
		}
		log.Printf("Revalidated %d %s rankings effective %s", len(res.Rankings), g, res.EffectiveTime.Format("2006-01-02"))
	}
	return failed
}
