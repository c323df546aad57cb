package dto

import (
	"rugbyrank/pkg/rankings"
	"time"
)

// Live rankings release.
type Rankings struct {
	Rankings      []rankings.Ranking `json:"rankings"`
	EffectiveTime time.Time          `json:"effectiveTime"`
	Label         string             `json:"label,omitempty"`
}

// Fixtures of the current window, split by state.
type Fixtures struct {
	Completed     []rankings.Fixture `json:"completed"`
	Upcoming      []rankings.Fixture `json:"upcoming"`
	EffectiveTime time.Time          `json:"effectiveTime"`
}

// Body of the calculate endpoint.
// Without rankings, the live release is used as the baseline.
type CalculateRequest struct {
	Rankings []rankings.Ranking `json:"rankings"`
	Fixtures []rankings.Fixture `json:"fixtures" binding:"required"`
}

// Result of the calculation.
type Calculation struct {
	Rankings      []rankings.CalculatedRanking `json:"rankings"`
	EffectiveTime *time.Time                   `json:"effectiveTime,omitempty"`
}

// Outcomes of a single fixture.
type Outcomes struct {
	HomeRating float64                  `json:"homeRating"`
	AwayRating float64                  `json:"awayRating"`
	Outcomes   rankings.FixtureOutcomes `json:"outcomes"`
}

// Saved snapshot.
type Snapshot struct {
	Gender        string    `json:"gender"`
	Count         int       `json:"count"`
	EffectiveDate time.Time `json:"effectiveDate"`
}
