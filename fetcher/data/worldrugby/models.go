package worldrugby

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FeedID is a identifier that the feed sends either as a number or a string.
type FeedID string

func (id *FeedID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FeedID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid feed id %s: %w", data, err)
	}
	*id = FeedID(n.String())
	return nil
}

// EffectiveTime is when a rankings release became effective.
// The feed has sent it as a object with the epoch millis, as a plain epoch or as a ISO string.
type EffectiveTime struct {
	time.Time
	Label string
}

func (e *EffectiveTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Millis float64 `json:"millis"`
			Label  string  `json:"label"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("invalid effective time: %w", err)
		}
		e.Time = time.UnixMilli(int64(obj.Millis)).UTC()
		e.Label = obj.Label

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseFeedTime(s)
		if err != nil {
			return err
		}
		e.Time = parsed
		e.Label = s

	default:
		millis, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid effective time %s: %w", data, err)
		}
		e.Time = time.UnixMilli(int64(millis)).UTC()
	}

	return nil
}

// parseFeedTime accepts a full timestamp, a date or a epoch millis string.
func parseFeedTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid effective time: %q", value)
}

// Team as sent by the feed.
type FeedTeam struct {
	ID           FeedID `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// RankingEntry is a single entry of the rankings release.
type RankingEntry struct {
	Team        FeedTeam `json:"team"`
	Pts         float64  `json:"pts"`
	Pos         int      `json:"pos"`
	PreviousPts float64  `json:"previousPts"`
	PreviousPos int      `json:"previousPos"`
}

// RankingsResponse is the body of the rankings endpoint.
type RankingsResponse struct {
	Entries       []RankingEntry `json:"entries"`
	Label         string         `json:"label"`
	EffectiveTime EffectiveTime  `json:"effectiveTime"`
}

// MatchTime is the kick off of a match.
type MatchTime struct {
	Label  string `json:"label"`
	Millis int64  `json:"millis"`
}

// MatchTeam is a team taking part on a match, with the score once it's known.
type MatchTeam struct {
	FeedTeam
	Score *int `json:"score"`
}

// Venue of the match.
type Venue struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Event the match belongs to.
// A rankings weight of 2 marks the Rugby World Cup.
type Event struct {
	ID             FeedID  `json:"id"`
	Label          string  `json:"label"`
	RankingsWeight float64 `json:"rankingsWeight"`
}

// Match as sent by the feed.
type Match struct {
	MatchID FeedID      `json:"matchId"`
	ID      FeedID      `json:"id"`
	Time    MatchTime   `json:"time"`
	Teams   []MatchTeam `json:"teams"`
	Scores  []int       `json:"scores"`
	Status  string      `json:"status"`
	Venue   *Venue      `json:"venue"`
	Events  []Event     `json:"events"`
}

// FixturesResponse is one page of the match endpoint.
type FixturesResponse struct {
	Content []Match `json:"content"`
}
