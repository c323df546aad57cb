package rankings

// Canonical scores used for the scenario analysis.
var outcomeScores = [5][2]int{
	{30, 0},  // Home big win.
	{20, 10}, // Home small win.
	{15, 15}, // Draw.
	{10, 20}, // Away small win.
	{0, 30},  // Away big win.
}

// GetFixtureOutcomes returns the home team change for each canonical result of a fixture.
// Nothing is applied to any ranking.
func GetFixtureOutcomes(homeRating, awayRating float64, isMajorEvent, isNeutralVenue bool) FixtureOutcomes {
	var changes [5]float64
	for i, score := range outcomeScores {
		changes[i] = CalculatePointsExchange(
			homeRating,
			awayRating,
			score[0],
			score[1],
			isMajorEvent,
			isNeutralVenue,
		).HomeChange
	}

	return FixtureOutcomes{
		HomeBigWin:   changes[0],
		HomeSmallWin: changes[1],
		Draw:         changes[2],
		AwaySmallWin: changes[3],
		AwayBigWin:   changes[4],
	}
}
