package main

import (
	"context"
	"errors"
	"net/http"
	feedservice "rugbyrank/fetcher/services/feed"
	snapshotservice "rugbyrank/fetcher/services/snapshot"
	"rugbyrank/fetcher/requests"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"rugbyrank/pkg/rpc"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FeedService is the cached feed.
type FeedService interface {
	GetRankings(ctx context.Context, g gender.Gender, date string) (*feedservice.Rankings, error)
	GetFixtures(ctx context.Context, g gender.Gender, startDate, endDate string) (*feedservice.Fixtures, error)
}

// SnapshotService persists releases.
type SnapshotService interface {
	Snapshot(ctx context.Context, g gender.Gender) (*snapshotservice.Result, error)
}

// Server definition.
type server struct {
	feed     FeedService
	snapshot SnapshotService
}

// GetRankings returns the rankings of the gender, at the date when given.
func (s *server) GetRankings(ctx context.Context, req *rpc.RankingsRequest) (*rpc.RankingsResponse, error) {
	g, err := gender.Parse(req.Gender)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Date != "" {
		if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid date %q", req.Date)
		}
	}

	result, err := s.feed.GetRankings(ctx, g, req.Date)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.RankingsResponse{
		Rankings:      result.Rankings,
		EffectiveTime: result.EffectiveTime,
		Label:         result.Label,
	}, nil
}

// GetFixtures returns the fixtures of the window between ranked teams.
func (s *server) GetFixtures(ctx context.Context, req *rpc.FixturesRequest) (*rpc.FixturesResponse, error) {
	g, err := gender.Parse(req.Gender)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	start, startErr := time.Parse(time.DateOnly, req.StartDate)
	end, endErr := time.Parse(time.DateOnly, req.EndDate)
	if startErr != nil || endErr != nil {
		return nil, status.Error(codes.InvalidArgument, "startDate and endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, status.Error(codes.InvalidArgument, "endDate is before startDate")
	}

	result, err := s.feed.GetFixtures(ctx, g, req.StartDate, req.EndDate)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.FixturesResponse{
		Fixtures:      result.Fixtures,
		EffectiveTime: result.EffectiveTime,
	}, nil
}

// SaveSnapshot saves the current rankings of the gender.
func (s *server) SaveSnapshot(ctx context.Context, req *rpc.SnapshotRequest) (*rpc.SnapshotResponse, error) {
	g, err := gender.Parse(req.Gender)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.snapshot.Snapshot(ctx, g)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.SnapshotResponse{
		Gender:        string(result.Gender),
		Count:         result.Count,
		EffectiveDate: result.EffectiveDate,
	}, nil
}

// toStatus maps the service errors to gRPC codes.
func toStatus(err error) error {
	var statusErr *requests.StatusError

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case rankings.IsValidationError(err):
		return status.Error(codes.DataLoss, err.Error())
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &statusErr):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
