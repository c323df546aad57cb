package rankings

import "time"

// UpcomingWindow is how far ahead a unplayed fixture counts as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

// SplitFixtures separates the played fixtures from the ones starting within the upcoming window.
// Unplayed fixtures without a date, already started or further ahead are left out.
func SplitFixtures(fixtures []Fixture, now time.Time) (completed, upcoming []Fixture) {
	completed = []Fixture{}
	upcoming = []Fixture{}
	limit := now.Add(UpcomingWindow)

	for _, f := range fixtures {
		if f.Played() {
			completed = append(completed, f)
			continue
		}
		if f.Date == nil || f.Date.Before(now) || f.Date.After(limit) {
			continue
		}
		upcoming = append(upcoming, f)
	}

	return completed, upcoming
}
