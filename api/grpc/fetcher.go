package grpcclient

import (
	"context"
	"fmt"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rpc"
	"time"
)

const (
	defaultTimeout  = 5 * time.Second
	snapshotTimeout = 30 * time.Second
)

// FetcherGRPCClient is the interface for the calls to the fetcher.
type FetcherGRPCClient interface {
	GetRankings(ctx context.Context, g gender.Gender) (*rpc.RankingsResponse, error)
	GetFixtures(ctx context.Context, g gender.Gender, start, end time.Time) (*rpc.FixturesResponse, error)
	SaveSnapshot(ctx context.Context, g gender.Gender) (*rpc.SnapshotResponse, error)
}

type fetcherGRPCClient struct {
	client rpc.FetcherClient
}

// NewFetcherGRPCClient creates a new fetcher gRPC client.
func NewFetcherGRPCClient(client rpc.FetcherClient) FetcherGRPCClient {
	return &fetcherGRPCClient{client: client}
}

// GetRankings gets the current rankings from the fetcher.
func (fc *fetcherGRPCClient) GetRankings(ctx context.Context, g gender.Gender) (*rpc.RankingsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := fc.client.GetRankings(ctx, &rpc.RankingsRequest{Gender: string(g)})
	if err != nil {
		return nil, fmt.Errorf("couldn't get the %s rankings: %w", g, err)
	}
	return resp, nil
}

// GetFixtures gets the fixtures of the window from the fetcher.
func (fc *fetcherGRPCClient) GetFixtures(ctx context.Context, g gender.Gender, start, end time.Time) (*rpc.FixturesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := fc.client.GetFixtures(ctx, &rpc.FixturesRequest{
		Gender:    string(g),
		StartDate: start.UTC().Format(time.DateOnly),
		EndDate:   end.UTC().Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't get the %s fixtures: %w", g, err)
	}
	return resp, nil
}

// SaveSnapshot asks the fetcher to save the current rankings.
// Has a longer timeout, since it writes the whole release.
func (fc *fetcherGRPCClient) SaveSnapshot(ctx context.Context, g gender.Gender) (*rpc.SnapshotResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	resp, err := fc.client.SaveSnapshot(ctx, &rpc.SnapshotRequest{Gender: string(g)})
	if err != nil {
		return nil, fmt.Errorf("couldn't save the %s snapshot: %w", g, err)
	}
	return resp, nil
}
