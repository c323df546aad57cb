package rankings

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMissingTeamID   = errors.New("missing team id")
	ErrDuplicateTeam   = errors.New("duplicate team")
	ErrInvalidPoints   = errors.New("invalid points")
	ErrInvalidPosition = errors.New("invalid position")
	ErrPartialScore    = errors.New("fixture has only one score")
	ErrNegativeScore   = errors.New("negative score")
	ErrSameTeam        = errors.New("team can't play itself")
)

// ValidateRankings verifies a ranking set loaded from outside before it's used on any calculation.
// The engine itself doesn't validate anything.
func ValidateRankings(rankings []Ranking) error {
	seen := make(map[string]struct{}, len(rankings))

	for i, r := range rankings {
		if r.Team.ID == "" {
			return fmt.Errorf("ranking %d: %w", i, ErrMissingTeamID)
		}
		if _, exists := seen[r.Team.ID]; exists {
			return fmt.Errorf("ranking %d (%s): %w", i, r.Team.ID, ErrDuplicateTeam)
		}
		seen[r.Team.ID] = struct{}{}

		if !isFinite(r.Points) || !isFinite(r.PreviousPoints) {
			return fmt.Errorf("ranking %d (%s): %w", i, r.Team.ID, ErrInvalidPoints)
		}
		if r.Position < 1 || r.PreviousPosition < 1 {
			return fmt.Errorf("ranking %d (%s): %w", i, r.Team.ID, ErrInvalidPosition)
		}
	}

	return nil
}

// ValidateFixtures verifies the shape of the fixtures.
// Teams missing from the rankings are not an error, those fixtures are just skipped later.
func ValidateFixtures(fixtures []Fixture) error {
	for i, f := range fixtures {
		if f.HomeTeam.ID == "" || f.AwayTeam.ID == "" {
			return fmt.Errorf("fixture %d (%s): %w", i, f.ID, ErrMissingTeamID)
		}
		if f.HomeTeam.ID == f.AwayTeam.ID {
			return fmt.Errorf("fixture %d (%s): %w", i, f.ID, ErrSameTeam)
		}
		if (f.HomeScore == nil) != (f.AwayScore == nil) {
			return fmt.Errorf("fixture %d (%s): %w", i, f.ID, ErrPartialScore)
		}
		if f.Played() && (*f.HomeScore < 0 || *f.AwayScore < 0) {
			return fmt.Errorf("fixture %d (%s): %w", i, f.ID, ErrNegativeScore)
		}
	}

	return nil
}

// IsValidationError reports if the error came from the input validation.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrMissingTeamID,
		ErrDuplicateTeam,
		ErrInvalidPoints,
		ErrInvalidPosition,
		ErrPartialScore,
		ErrNegativeScore,
		ErrSameTeam,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
