package rankings

const (
	// HomeAdvantage is added to the home rating unless the venue is neutral.
	HomeAdvantage = 3.0
	// MaxRatingDifferential caps the rating gap considered by the exchange.
	MaxRatingDifferential = 10.0
	// BigWinMargin is the margin a result must exceed to count as a big win.
	BigWinMargin = 15

	bigWinMultiplier   = 1.5
	majorEventMultiple = 2.0
)

// CalculatePointsExchange calculates the points exchanged by a single fixture.
//
// The home rating receives the venue advantage, the gap to the away rating is capped at ±10
// and turned into the draw baseline. The result margin picks one of the five outcomes and
// major events double everything. The away change is always the negation of the home change.
func CalculatePointsExchange(
	homeRating float64,
	awayRating float64,
	homeScore int,
	awayScore int,
	isMajorEvent bool,
	isNeutralVenue bool,
) PointsExchange {
	// Apply the home advantage.
	advantage := HomeAdvantage
	if isNeutralVenue {
		advantage = 0
	}

	// Cap the differential.
	diff := awayRating - (homeRating + advantage)
	cappedDiff := max(-MaxRatingDifferential, min(MaxRatingDifferential, diff))

	drawChange := cappedDiff / MaxRatingDifferential

	stakes := 1.0
	if isMajorEvent {
		stakes = majorEventMultiple
	}

	var homeChange float64
	switch {
	case homeScore-awayScore > BigWinMargin:
		homeChange = stakes * bigWinMultiplier * (drawChange + 1)
	case homeScore > awayScore:
		homeChange = stakes * (drawChange + 1)
	case homeScore == awayScore:
		homeChange = stakes * drawChange
	case awayScore-homeScore > BigWinMargin:
		homeChange = stakes * bigWinMultiplier * (drawChange - 1)
	default:
		homeChange = stakes * (drawChange - 1)
	}

	return PointsExchange{
		HomeChange: homeChange,
		AwayChange: -homeChange,
	}
}
