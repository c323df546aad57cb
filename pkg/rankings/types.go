package rankings

import "time"

// Team is the identity of a ranked nation.
type Team struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
}

// Ranking is a single rating record.
// The previous values are the baseline of the current batch and are never changed while fixtures are applied.
type Ranking struct {
	Team             Team    `json:"team" yaml:"team"`
	Points           float64 `json:"pts" yaml:"pts"`
	Position         int     `json:"pos" yaml:"pos"`
	PreviousPoints   float64 `json:"previousPts" yaml:"previousPts"`
	PreviousPosition int     `json:"previousPos" yaml:"previousPos"`
}

// Fixture is a match between two teams.
// A nil score means the fixture wasn't played yet.
type Fixture struct {
	ID             string     `json:"id" yaml:"id"`
	HomeTeam       Team       `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam       Team       `json:"awayTeam" yaml:"awayTeam"`
	HomeScore      *int       `json:"homeScore" yaml:"homeScore"`
	AwayScore      *int       `json:"awayScore" yaml:"awayScore"`
	IsMajorEvent   bool       `json:"isMajorEvent" yaml:"isMajorEvent"`
	IsNeutralVenue bool       `json:"isNeutralVenue" yaml:"isNeutralVenue"`
	Date           *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// Played reports if both scores are known.
func (f Fixture) Played() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

// CalculatedRanking is a ranking after a batch of fixtures, with the deltas against the baseline.
type CalculatedRanking struct {
	Ranking        `yaml:",inline"`
	Change         float64 `json:"change" yaml:"change"`
	PositionChange int     `json:"positionChange" yaml:"positionChange"`
}

// PointsExchange is the zero-sum result of a single fixture.
type PointsExchange struct {
	HomeChange float64 `json:"homeChange"`
	AwayChange float64 `json:"awayChange"`
}

// FixtureOutcomes holds the home team change for each canonical result.
type FixtureOutcomes struct {
	HomeBigWin   float64 `json:"homeBigWin"`
	HomeSmallWin float64 `json:"homeSmallWin"`
	Draw         float64 `json:"draw"`
	AwaySmallWin float64 `json:"awaySmallWin"`
	AwayBigWin   float64 `json:"awayBigWin"`
}
