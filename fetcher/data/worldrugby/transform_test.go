package worldrugby

import (
	"rugbyrank/pkg/rankings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankingsTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int {
	return &v
}

func feedMatch(id string, millis int64, status string, home, away string) Match {
	return Match{
		MatchID: FeedID(id),
		Time:    MatchTime{Millis: millis},
		Status:  status,
		Teams: []MatchTeam{
			{FeedTeam: FeedTeam{ID: FeedID(home), Name: home}},
			{FeedTeam: FeedTeam{ID: FeedID(away), Name: away}},
		},
	}
}

func TestTransformRankings(t *testing.T) {
	data := &RankingsResponse{
		Entries: []RankingEntry{
			{Team: FeedTeam{ID: "1", Name: "Ireland", Abbreviation: "IRE"}, Pts: 92.1, Pos: 1, PreviousPts: 91.5, PreviousPos: 2},
			{Team: FeedTeam{ID: "2", Name: "South Africa", Abbreviation: "RSA"}, Pts: 91.9, Pos: 2, PreviousPts: 92.0, PreviousPos: 1},
		},
	}

	result, err := TransformRankings(data)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, rankings.Team{ID: "1", Name: "Ireland", Abbreviation: "IRE"}, result[0].Team)
	assert.Equal(t, 92.1, result[0].Points)
	assert.Equal(t, 2, result[0].PreviousPosition)
}

func TestTransformRankingsInvalid(t *testing.T) {
	data := &RankingsResponse{
		Entries: []RankingEntry{
			{Team: FeedTeam{ID: "1"}, Pts: 90, Pos: 1, PreviousPts: 90, PreviousPos: 1},
			{Team: FeedTeam{ID: "1"}, Pts: 80, Pos: 2, PreviousPts: 80, PreviousPos: 2},
		},
	}

	_, err := TransformRankings(data)
	assert.ErrorIs(t, err, rankings.ErrDuplicateTeam)
}

func TestTransformFixturesFilters(t *testing.T) {
	ranked := map[string]struct{}{"A": {}, "B": {}, "C": {}}
	before := rankingsTime.Add(-time.Hour).UnixMilli()
	after := rankingsTime.Add(time.Hour).UnixMilli()

	counted := feedMatch("counted", before, "C", "A", "B")
	counted.Teams[0].Score, counted.Teams[1].Score = intPtr(10), intPtr(3)

	played := feedMatch("played", after, "C", "A", "C")
	played.Teams[0].Score, played.Teams[1].Score = intPtr(25), intPtr(5)

	upcoming := feedMatch("upcoming", after, "U", "B", "C")
	unranked := feedMatch("unranked", after, "U", "A", "Z")
	single := feedMatch("single", after, "U", "A", "B")
	single.Teams = single.Teams[:1]

	fixtures := TransformFixtures([]Match{counted, played, upcoming, unranked, single}, rankingsTime, ranked, false)
	require.Len(t, fixtures, 2)

	assert.Equal(t, "played", fixtures[0].ID)
	assert.True(t, fixtures[0].Played())
	assert.Equal(t, 25, *fixtures[0].HomeScore)
	assert.Equal(t, "A", fixtures[0].HomeTeam.ID)
	assert.Equal(t, "C", fixtures[0].AwayTeam.ID)

	assert.Equal(t, "upcoming", fixtures[1].ID)
	assert.False(t, fixtures[1].Played())
	require.NotNil(t, fixtures[1].Date)
	assert.True(t, rankingsTime.Add(time.Hour).Equal(*fixtures[1].Date))
}

func TestTransformFixturesScoresFallback(t *testing.T) {
	ranked := map[string]struct{}{"A": {}, "B": {}}
	match := feedMatch("m", rankingsTime.Add(time.Hour).UnixMilli(), "C", "A", "B")
	match.Scores = []int{17, 17}

	fixtures := TransformFixtures([]Match{match}, rankingsTime, ranked, false)
	require.Len(t, fixtures, 1)
	require.True(t, fixtures[0].Played())
	assert.Equal(t, 17, *fixtures[0].HomeScore)
	assert.Equal(t, 17, *fixtures[0].AwayScore)

	// Only completed matches use the fallback.
	match.Status = "L"
	fixtures = TransformFixtures([]Match{match}, rankingsTime, ranked, false)
	require.Len(t, fixtures, 1)
	assert.False(t, fixtures[0].Played())
}

func TestTransformFixturesEventAndVenue(t *testing.T) {
	ranked := map[string]struct{}{"France": {}, "Italy": {}}
	millis := rankingsTime.Add(time.Hour).UnixMilli()

	match := feedMatch("m", millis, "U", "France", "Italy")
	match.Events = []Event{{Label: "Six Nations", RankingsWeight: 1}, {Label: "Rugby World Cup", RankingsWeight: 2}}
	match.Venue = &Venue{Country: "Japan"}

	fixtures := TransformFixtures([]Match{match}, rankingsTime, ranked, false)
	require.Len(t, fixtures, 1)
	assert.True(t, fixtures[0].IsMajorEvent)
	assert.False(t, fixtures[0].IsNeutralVenue, "detection disabled")

	fixtures = TransformFixtures([]Match{match}, rankingsTime, ranked, true)
	assert.True(t, fixtures[0].IsNeutralVenue)

	match.Venue = &Venue{Country: "france"}
	fixtures = TransformFixtures([]Match{match}, rankingsTime, ranked, true)
	assert.False(t, fixtures[0].IsNeutralVenue)
}

func TestMatchID(t *testing.T) {
	assert.Equal(t, "m", matchID(Match{MatchID: "m", ID: "1"}))
	assert.Equal(t, "1", matchID(Match{ID: "1"}))
	assert.Equal(t, "1704067200000", matchID(Match{Time: MatchTime{Millis: 1704067200000}}))
}

func TestRankedIDs(t *testing.T) {
	ids := RankedIDs([]rankings.Ranking{{Team: rankings.Team{ID: "a"}}, {Team: rankings.Team{ID: "b"}}})
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "a")
}
