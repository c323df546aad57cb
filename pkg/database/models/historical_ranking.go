package models

import (
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"time"
)

// HistoricalRanking is the snapshot of a team standing at a given effective date.
// Unique by team, effective date and gender, the last write wins.
type HistoricalRanking struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	TeamID        string        `gorm:"type:varchar(32);uniqueIndex:idx_historical_team_date_gender,priority:1" json:"teamId"`
	TeamName      string        `json:"teamName"`
	Abbreviation  string        `gorm:"type:varchar(8)" json:"abbreviation"`
	Points        float64       `json:"points"`
	Position      int           `json:"position"`
	EffectiveDate time.Time     `gorm:"type:date;uniqueIndex:idx_historical_team_date_gender,priority:2" json:"effectiveDate"`
	Gender        gender.Gender `gorm:"type:varchar(5);uniqueIndex:idx_historical_team_date_gender,priority:3" json:"gender"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}

// NewHistoricalRanking converts a ranking into its snapshot row.
func NewHistoricalRanking(r rankings.Ranking, effectiveDate time.Time, g gender.Gender) HistoricalRanking {
	return HistoricalRanking{
		TeamID:        r.Team.ID,
		TeamName:      r.Team.Name,
		Abbreviation:  r.Team.Abbreviation,
		Points:        r.Points,
		Position:      r.Position,
		EffectiveDate: TruncateDate(effectiveDate),
		Gender:        g,
	}
}

// TruncateDate drops the time of day, keeping the UTC date.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
