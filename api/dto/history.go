package dto

import "time"

// Team of a snapshot.
type HistoryTeam struct {
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Abbreviation string `json:"abbreviation"`
}

// Single row of the history.
type HistoryEntry struct {
	TeamID        string    `json:"teamId"`
	TeamName      string    `json:"teamName"`
	Abbreviation  string    `json:"abbreviation"`
	Points        float64   `json:"points"`
	Position      int       `json:"position"`
	EffectiveDate time.Time `json:"effectiveDate"`
}
