package rpc

import (
	"rugbyrank/pkg/rankings"
	"time"
)

// RankingsRequest asks for the rankings of a population.
// An empty date means the current rankings.
type RankingsRequest struct {
	Gender string `json:"gender"`
	Date   string `json:"date,omitempty"`
}

// RankingsResponse contains the rankings and the moment they became effective.
type RankingsResponse struct {
	Rankings      []rankings.Ranking `json:"rankings"`
	EffectiveTime time.Time          `json:"effectiveTime"`
	Label         string             `json:"label,omitempty"`
}

// FixturesRequest asks for the fixtures of a population in a date window (YYYY-MM-DD).
type FixturesRequest struct {
	Gender    string `json:"gender"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FixturesResponse contains the fixtures between ranked teams, ordered by date.
type FixturesResponse struct {
	Fixtures      []rankings.Fixture `json:"fixtures"`
	EffectiveTime time.Time          `json:"effectiveTime"`
}

// SnapshotRequest asks the fetcher to persist the current rankings.
type SnapshotRequest struct {
	Gender string `json:"gender"`
}

// SnapshotResponse is the result of a saved snapshot.
type SnapshotResponse struct {
	Gender        string    `json:"gender"`
	Count         int       `json:"count"`
	EffectiveDate time.Time `json:"effectiveDate"`
}
