package jobs

import (
	"context"
	"fmt"
	"log"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/logger"
	"rugbyrank/pkg/rpc"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Timeout for each snapshot call, the fetcher may hit the feed twice.
const snapshotTimeout = 30 * time.Second

// Logger is what the jobs write their progress to.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// SnapshotRankings asks the fetcher to persist the current rankings of every population.
func SnapshotRankings(cfg *config.Config) error {
	conn, err := grpc.NewClient(cfg.Fetcher.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("couldn't create the fetcher client: %w", err)
	}
	defer conn.Close()

	jobLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		return fmt.Errorf("couldn't create the job logger: %w", err)
	}
	defer jobLogger.Close()

	started := time.Now()
	failed := runSnapshots(context.Background(), rpc.NewFetcherClient(conn), jobLogger, gender.All())
	jobLogger.Infof("Finished the snapshots after %v seconds.", time.Since(started).Seconds())

	objectKey := fmt.Sprintf("jobs/snapshot/%s-%s.log", started.UTC().Format("2006-01-02"), uuid.NewString())
	if err := jobLogger.UploadToS3Bucket(context.Background(), objectKey); err != nil {
		log.Printf("Couldn't send the log to s3: %v", err)
		jobLogger.CleanFile()
	}

	if failed > 0 {
		return fmt.Errorf("%d snapshot(s) failed", failed)
	}
	return nil
}

// runSnapshots snapshots each population and returns how many failed.
// A failure doesn't stop the remaining populations.
func runSnapshots(ctx context.Context, client rpc.FetcherClient, jobLogger Logger, genders []gender.Gender) int {
	failed := 0
	for _, g := range genders {
		callCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
		res, err := client.SaveSnapshot(callCtx, &rpc.SnapshotRequest{Gender: g.String()})
		cancel()

		if err != nil {
			failed++
			jobLogger.Errorf("Couldn't snapshot the %s rankings: %v", g, err)
			continue
		}

		jobLogger.Infof("Saved %d %s entries effective %s.", res.Count, g, res.EffectiveDate.Format("2006-01-02"))
	}
	return failed
}
