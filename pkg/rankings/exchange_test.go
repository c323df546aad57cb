package rankings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const delta = 1e-9

// Verify each of the five outcomes and the venue and stakes switches.
func TestCalculatePointsExchange(t *testing.T) {
	tests := []struct {
		name       string
		homeRating float64
		awayRating float64
		homeScore  int
		awayScore  int
		major      bool
		neutral    bool
		expected   float64
	}{
		{"small home win", 90, 85, 25, 10, false, false, 0.2},
		{"big home win", 90, 85, 30, 0, false, false, 0.3},
		{"draw favours away side", 90, 85, 15, 15, false, false, -0.8},
		{"small away win", 90, 85, 10, 20, false, false, -1.8},
		{"big away win", 90, 85, 0, 30, false, false, -2.7},
		{"neutral venue drops advantage", 80, 80, 20, 10, false, true, 1},
		{"neutral draw of equals", 80, 80, 12, 12, false, true, 0},
		{"major event", 80, 80, 20, 10, true, true, 2},
		{"major event big win", 80, 80, 40, 10, true, true, 3},
		{"underdog home win", 70, 90, 20, 10, false, false, 2},
		{"underdog home big win", 70, 90, 40, 10, false, false, 3},
		{"favourite home loss", 95, 70, 10, 20, false, false, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePointsExchange(tt.homeRating, tt.awayRating, tt.homeScore, tt.awayScore, tt.major, tt.neutral)
			assert.InDelta(t, tt.expected, result.HomeChange, delta)
			assert.InDelta(t, -tt.expected, result.AwayChange, delta)
		})
	}
}

func TestExchangeIsZeroSum(t *testing.T) {
	ratings := []float64{0, 45.5, 70, 84.9, 90, 93.01}
	scores := [][2]int{{0, 0}, {3, 0}, {15, 0}, {16, 0}, {7, 30}, {12, 12}, {0, 60}}

	for _, home := range ratings {
		for _, away := range ratings {
			for _, score := range scores {
				for _, major := range []bool{false, true} {
					for _, neutral := range []bool{false, true} {
						result := CalculatePointsExchange(home, away, score[0], score[1], major, neutral)
						assert.Equal(t, 0.0, result.HomeChange+result.AwayChange)
					}
				}
			}
		}
	}
}

func TestExchangeSymmetryOnNeutralVenue(t *testing.T) {
	pairs := [][2]float64{{90, 85}, {60, 88}, {75, 75}, {91.3, 40}}
	scores := [][2]int{{25, 10}, {30, 0}, {15, 15}, {10, 20}, {3, 40}}

	for _, p := range pairs {
		for _, s := range scores {
			for _, major := range []bool{false, true} {
				forward := CalculatePointsExchange(p[0], p[1], s[0], s[1], major, true)
				swapped := CalculatePointsExchange(p[1], p[0], s[1], s[0], major, true)
				assert.InDelta(t, forward.HomeChange, -swapped.HomeChange, delta)
			}
		}
	}
}

// With a home venue the swap is not symmetric anymore.
func TestExchangeSymmetryBreaksWithHomeVenue(t *testing.T) {
	forward := CalculatePointsExchange(80, 80, 20, 10, false, false)
	swapped := CalculatePointsExchange(80, 80, 10, 20, false, false)

	assert.InDelta(t, 0.7, forward.HomeChange, delta)
	assert.InDelta(t, -1.3, swapped.HomeChange, delta)
}

func TestExchangeDifferentialIsCapped(t *testing.T) {
	// Adjusted home rating is 63, so any away rating from 73 up is capped.
	capped := CalculatePointsExchange(60, 73, 20, 10, false, false)
	for _, away := range []float64{74, 80, 100, 1000} {
		result := CalculatePointsExchange(60, away, 20, 10, false, false)
		assert.Equal(t, capped.HomeChange, result.HomeChange)
	}
	assert.InDelta(t, 2, capped.HomeChange, delta)

	// And from 53 down on the other side.
	capped = CalculatePointsExchange(60, 53, 20, 10, false, false)
	for _, away := range []float64{52, 40, 0, -100} {
		result := CalculatePointsExchange(60, away, 20, 10, false, false)
		assert.Equal(t, capped.HomeChange, result.HomeChange)
	}
	assert.InDelta(t, 0, capped.HomeChange, delta)
}

func TestExchangeMarginBoundary(t *testing.T) {
	tests := []struct {
		name      string
		homeScore int
		awayScore int
		expected  float64
	}{
		{"home by 15 is small", 15, 0, 1},
		{"home by 16 is big", 16, 0, 1.5},
		{"away by 15 is small", 5, 20, -1},
		{"away by 16 is big", 4, 20, -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePointsExchange(80, 80, tt.homeScore, tt.awayScore, false, true)
			assert.InDelta(t, tt.expected, result.HomeChange, delta)
		})
	}
}

func TestExchangeMajorEventDoubles(t *testing.T) {
	scores := [][2]int{{30, 0}, {20, 10}, {15, 15}, {10, 20}, {0, 30}}
	pairs := [][2]float64{{90, 85}, {70, 90}, {81.25, 80.5}}

	for _, p := range pairs {
		for _, s := range scores {
			for _, neutral := range []bool{false, true} {
				normal := CalculatePointsExchange(p[0], p[1], s[0], s[1], false, neutral)
				major := CalculatePointsExchange(p[0], p[1], s[0], s[1], true, neutral)
				assert.Equal(t, 2*normal.HomeChange, major.HomeChange)
			}
		}
	}
}
