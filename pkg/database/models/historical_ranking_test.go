package models

import (
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewHistoricalRanking(t *testing.T) {
	r := rankings.Ranking{
		Team:     rankings.Team{ID: "37", Name: "Ireland", Abbreviation: "IRE"},
		Points:   92.12,
		Position: 1,
	}
	effective := time.Date(2024, 11, 25, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))

	row := NewHistoricalRanking(r, effective, gender.Men)

	assert.Equal(t, "37", row.TeamID)
	assert.Equal(t, "Ireland", row.TeamName)
	assert.Equal(t, "IRE", row.Abbreviation)
	assert.Equal(t, 92.12, row.Points)
	assert.Equal(t, 1, row.Position)
	assert.Equal(t, gender.Men, row.Gender)
	// 23:30 at UTC-2 is already the next day in UTC.
	assert.Equal(t, time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC), row.EffectiveDate)
}
