package rankings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v int) *int {
	return &v
}

func team(id string) Team {
	return Team{ID: id, Name: id, Abbreviation: id}
}

func ranking(id string, pts float64, pos int) Ranking {
	return Ranking{
		Team:             team(id),
		Points:           pts,
		Position:         pos,
		PreviousPoints:   pts,
		PreviousPosition: pos,
	}
}

func played(id, home, away string, homeScore, awayScore int) Fixture {
	return Fixture{
		ID:        id,
		HomeTeam:  team(home),
		AwayTeam:  team(away),
		HomeScore: score(homeScore),
		AwayScore: score(awayScore),
	}
}

func sampleRankings() []Ranking {
	return []Ranking{
		ranking("IRE", 92.12, 1),
		ranking("RSA", 91.77, 2),
		ranking("NZL", 90.36, 3),
		ranking("FRA", 87.95, 4),
		ranking("ENG", 84.41, 5),
		ranking("ARG", 83.50, 6),
	}
}

func TestApplyFixturesEndToEnd(t *testing.T) {
	initial := []Ranking{
		ranking("A", 90, 1),
		ranking("B", 85, 2),
	}

	result := ApplyFixtures(initial, []Fixture{played("f1", "A", "B", 25, 10)})

	require.Len(t, result, 2)
	assert.Equal(t, "A", result[0].Team.ID)
	assert.InDelta(t, 90.2, result[0].Points, delta)
	assert.InDelta(t, 0.2, result[0].Change, delta)
	assert.Equal(t, 1, result[0].Position)
	assert.Equal(t, 0, result[0].PositionChange)

	assert.Equal(t, "B", result[1].Team.ID)
	assert.InDelta(t, 84.8, result[1].Points, delta)
	assert.InDelta(t, -0.2, result[1].Change, delta)
	assert.Equal(t, 2, result[1].Position)
	assert.Equal(t, 0, result[1].PositionChange)
}

func TestApplyFixturesReordersPositions(t *testing.T) {
	initial := []Ranking{
		ranking("A", 80, 1),
		ranking("B", 79.5, 2),
		ranking("C", 70, 3),
	}

	// B wins big away from home as the weaker side.
	result := ApplyFixtures(initial, []Fixture{played("f1", "A", "B", 0, 40)})

	require.Len(t, result, 3)
	assert.Equal(t, "B", result[0].Team.ID)
	assert.Equal(t, 1, result[0].PositionChange)
	assert.Equal(t, "A", result[1].Team.ID)
	assert.Equal(t, -1, result[1].PositionChange)
	assert.Equal(t, "C", result[2].Team.ID)
	assert.Equal(t, 0, result[2].PositionChange)

	// Adjusted home 83, diff -3.5, drawChange -0.35, big away win: 1.5 * -1.35.
	assert.InDelta(t, 80-2.025, result[1].Points, delta)
	assert.InDelta(t, 79.5+2.025, result[0].Points, delta)
}

func TestApplyFixturesSkipsNoOpFixtures(t *testing.T) {
	initial := sampleRankings()

	fixtures := []Fixture{
		{ID: "unplayed", HomeTeam: team("IRE"), AwayTeam: team("RSA")},
		{ID: "half", HomeTeam: team("IRE"), AwayTeam: team("RSA"), HomeScore: score(10)},
		played("unranked-home", "USA", "NZL", 3, 50),
		played("unranked-away", "FRA", "CAN", 60, 0),
	}

	result := ApplyFixtures(initial, fixtures)

	require.Len(t, result, len(initial))
	for i, r := range result {
		assert.Equal(t, initial[i].Team, r.Team)
		assert.Equal(t, initial[i].Points, r.Points)
		assert.Equal(t, initial[i].Position, r.Position)
		assert.Equal(t, 0.0, r.Change)
		assert.Equal(t, 0, r.PositionChange)
	}
}

func TestApplyFixturesDoesNotMutateInput(t *testing.T) {
	initial := sampleRankings()
	snapshot := sampleRankings()

	ApplyFixtures(initial, []Fixture{
		played("f1", "ARG", "IRE", 40, 3),
		played("f2", "ENG", "RSA", 20, 20),
	})

	assert.Equal(t, snapshot, initial)
}

func TestApplyFixtureReturnsInputOnSkip(t *testing.T) {
	initial := sampleRankings()

	result := ApplyFixture(initial, Fixture{ID: "unplayed", HomeTeam: team("IRE"), AwayTeam: team("RSA")})
	assert.Equal(t, initial, result)

	result = ApplyFixture(initial, played("f1", "IRE", "RSA", 20, 3))
	assert.Equal(t, 92.12, initial[0].Points)
	assert.NotEqual(t, initial[0].Points, result[0].Points)
}

func TestApplyFixturesConservesPoints(t *testing.T) {
	initial := sampleRankings()
	fixtures := []Fixture{
		played("f1", "IRE", "NZL", 12, 30),
		played("f2", "RSA", "FRA", 27, 26),
		played("f3", "ENG", "ARG", 18, 18),
		played("f4", "NZL", "RSA", 7, 35),
		played("f5", "ARG", "IRE", 41, 10),
	}
	fixtures[1].IsMajorEvent = true
	fixtures[3].IsNeutralVenue = true

	result := ApplyFixtures(initial, fixtures)

	var before, after float64
	for _, r := range initial {
		before += r.Points
	}
	for _, r := range result {
		after += r.Points
	}

	assert.InDelta(t, before, after, delta)
}

func TestApplyFixturesPositionsAreContiguous(t *testing.T) {
	initial := sampleRankings()
	fixtures := []Fixture{
		played("f1", "ARG", "IRE", 40, 3),
		played("f2", "ENG", "RSA", 33, 0),
		played("f3", "FRA", "NZL", 9, 30),
	}

	result := ApplyFixtures(initial, fixtures)

	require.Len(t, result, len(initial))
	for i, r := range result {
		assert.Equal(t, i+1, r.Position)
		assert.Equal(t, r.PreviousPosition-r.Position, r.PositionChange)
		assert.InDelta(t, r.Points-r.PreviousPoints, r.Change, delta)
		if i > 0 {
			assert.GreaterOrEqual(t, result[i-1].Points, r.Points)
		}
	}
}

// A team playing twice sees the points from its first fixture on the second one.
func TestApplyFixturesOrderMatters(t *testing.T) {
	initial := []Ranking{
		ranking("A", 80, 1),
		ranking("B", 78, 2),
		ranking("C", 75, 3),
	}

	first := played("f1", "A", "B", 30, 0)
	second := played("f2", "C", "A", 0, 30)

	forward := ApplyFixtures(initial, []Fixture{first, second})
	backward := ApplyFixtures(initial, []Fixture{second, first})

	pointsOf := func(result []CalculatedRanking, id string) float64 {
		for _, r := range result {
			if r.Team.ID == id {
				return r.Points
			}
		}
		t.Fatalf("team %s not found", id)
		return 0
	}

	assert.NotEqual(t, pointsOf(forward, "B"), pointsOf(backward, "B"))
}

func TestApplyFixturesTieBreak(t *testing.T) {
	// Both end on the same points, the one that was higher before stays ahead.
	initial := []Ranking{
		{Team: team("X"), Points: 80, Position: 2, PreviousPoints: 80, PreviousPosition: 2},
		{Team: team("Y"), Points: 80, Position: 1, PreviousPoints: 80, PreviousPosition: 1},
		{Team: team("B"), Points: 70, Position: 3, PreviousPoints: 70, PreviousPosition: 3},
		{Team: team("A"), Points: 70, Position: 3, PreviousPoints: 70, PreviousPosition: 3},
	}

	result := ApplyFixtures(initial, nil)

	require.Len(t, result, 4)
	assert.Equal(t, "Y", result[0].Team.ID)
	assert.Equal(t, "X", result[1].Team.ID)
	assert.Equal(t, "A", result[2].Team.ID)
	assert.Equal(t, "B", result[3].Team.ID)
}

func TestApplyFixturesEmpty(t *testing.T) {
	assert.Empty(t, ApplyFixtures(nil, nil))
}
