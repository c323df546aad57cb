package rankings

import (
	"cmp"
	"slices"
)

// ApplyFixture applies a single fixture and returns the updated rankings.
// Unplayed fixtures and fixtures with an unranked team are ignored, returning the rankings as given.
func ApplyFixture(rankings []Ranking, fixture Fixture) []Ranking {
	if !fixture.Played() {
		return rankings
	}

	home := indexOfTeam(rankings, fixture.HomeTeam.ID)
	away := indexOfTeam(rankings, fixture.AwayTeam.ID)
	if home < 0 || away < 0 {
		return rankings
	}

	exchange := CalculatePointsExchange(
		rankings[home].Points,
		rankings[away].Points,
		*fixture.HomeScore,
		*fixture.AwayScore,
		fixture.IsMajorEvent,
		fixture.IsNeutralVenue,
	)

	updated := slices.Clone(rankings)
	updated[home].Points += exchange.HomeChange
	updated[away].Points += exchange.AwayChange

	return updated
}

// ApplyFixtures applies the fixtures in the given order and recalculates the positions.
// The order matters when a team plays more than once, since each fixture uses the points at the moment it's applied.
// Ties on points keep the team that was higher before the batch first, then the lowest team id.
func ApplyFixtures(initialRankings []Ranking, fixtures []Fixture) []CalculatedRanking {
	rankings := slices.Clone(initialRankings)

	for _, fixture := range fixtures {
		rankings = ApplyFixture(rankings, fixture)
	}

	slices.SortStableFunc(rankings, compareStanding)

	calculated := make([]CalculatedRanking, len(rankings))
	for i, ranking := range rankings {
		ranking.Position = i + 1
		calculated[i] = CalculatedRanking{
			Ranking:        ranking,
			Change:         ranking.Points - ranking.PreviousPoints,
			PositionChange: ranking.PreviousPosition - ranking.Position,
		}
	}

	return calculated
}

// compareStanding orders by points descending, previous position ascending and team id.
func compareStanding(a, b Ranking) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(a.PreviousPosition, b.PreviousPosition); c != 0 {
		return c
	}
	return cmp.Compare(a.Team.ID, b.Team.ID)
}

// indexOfTeam returns the index of the team on the rankings, or -1.
func indexOfTeam(rankings []Ranking, teamID string) int {
	return slices.IndexFunc(rankings, func(r Ranking) bool {
		return r.Team.ID == teamID
	})
}
