package worldrugby

import (
	"fmt"
	"rugbyrank/pkg/rankings"
	"strconv"
	"strings"
	"time"
)

const (
	// Status of a completed match.
	statusCompleted = "C"
	// Rankings weight of the events that double the exchange.
	majorEventWeight = 2
)

// TransformRankings converts the feed release to rankings, validating them.
func TransformRankings(data *RankingsResponse) ([]rankings.Ranking, error) {
	result := make([]rankings.Ranking, 0, len(data.Entries))
	for _, entry := range data.Entries {
		result = append(result, rankings.Ranking{
			Team:             toTeam(entry.Team),
			Points:           entry.Pts,
			Position:         entry.Pos,
			PreviousPoints:   entry.PreviousPts,
			PreviousPosition: entry.PreviousPos,
		})
	}

	if err := rankings.ValidateRankings(result); err != nil {
		return nil, fmt.Errorf("invalid rankings from feed: %w", err)
	}

	return result, nil
}

// TransformFixtures converts the feed matches into fixtures between ranked teams.
//
// Completed matches are only kept when they happened after the rankings release, so they aren't
// counted twice. The neutral venue is only detected when asked, by the venue country matching neither team.
func TransformFixtures(matches []Match, rankingsTime time.Time, rankedIDs map[string]struct{}, detectNeutral bool) []rankings.Fixture {
	fixtures := make([]rankings.Fixture, 0, len(matches))

	for _, match := range matches {
		if match.Status == statusCompleted && match.Time.Millis <= rankingsTime.UnixMilli() {
			continue
		}

		// Only matches with two teams.
		if len(match.Teams) != 2 {
			continue
		}

		home := toTeam(match.Teams[0].FeedTeam)
		away := toTeam(match.Teams[1].FeedTeam)

		// Only test matches between ranked nations.
		if _, ok := rankedIDs[home.ID]; !ok {
			continue
		}
		if _, ok := rankedIDs[away.ID]; !ok {
			continue
		}

		homeScore, awayScore := matchScores(match)
		date := time.UnixMilli(match.Time.Millis).UTC()

		fixtures = append(fixtures, rankings.Fixture{
			ID:             matchID(match),
			HomeTeam:       home,
			AwayTeam:       away,
			HomeScore:      homeScore,
			AwayScore:      awayScore,
			IsMajorEvent:   isMajorEvent(match),
			IsNeutralVenue: detectNeutral && isNeutralVenue(match, home, away),
			Date:           &date,
		})
	}

	return fixtures
}

// RankedIDs returns the set of team ids on the rankings.
func RankedIDs(ranked []rankings.Ranking) map[string]struct{} {
	ids := make(map[string]struct{}, len(ranked))
	for _, r := range ranked {
		ids[r.Team.ID] = struct{}{}
	}
	return ids
}

func toTeam(t FeedTeam) rankings.Team {
	return rankings.Team{
		ID:           string(t.ID),
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
	}
}

// matchID prefers the match id, then the numeric id, then the kick off.
func matchID(match Match) string {
	if match.MatchID != "" {
		return string(match.MatchID)
	}
	if match.ID != "" {
		return string(match.ID)
	}
	return strconv.FormatInt(match.Time.Millis, 10)
}

// matchScores returns the team scores, falling back to the match scores of a completed match.
func matchScores(match Match) (*int, *int) {
	home, away := match.Teams[0].Score, match.Teams[1].Score
	if (home == nil || away == nil) && match.Status == statusCompleted && len(match.Scores) == 2 {
		h, a := match.Scores[0], match.Scores[1]
		return &h, &a
	}
	if home == nil || away == nil {
		return nil, nil
	}
	return home, away
}

func isMajorEvent(match Match) bool {
	for _, e := range match.Events {
		if e.RankingsWeight == majorEventWeight {
			return true
		}
	}
	return false
}

func isNeutralVenue(match Match, home, away rankings.Team) bool {
	if match.Venue == nil || match.Venue.Country == "" {
		return false
	}
	country := match.Venue.Country
	return !strings.EqualFold(country, home.Name) && !strings.EqualFold(country, away.Name)
}
