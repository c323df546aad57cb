package gender

import (
	"errors"
	"fmt"
	"strings"
)

// Gender partitions the rankings populations.
type Gender string

const (
	Men   Gender = "men"
	Women Gender = "women"
)

var ErrInvalidGender = errors.New("invalid gender")

// All returns every population, men first.
func All() []Gender {
	return []Gender{Men, Women}
}

// Parse converts a user value into a gender.
func Parse(value string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(value))) {
	case Men:
		return Men, nil
	case Women:
		return Women, nil
	}
	return "", fmt.Errorf("%w: %q (expected men or women)", ErrInvalidGender, value)
}

// FeedCode returns the code used by the World Rugby feed for the population.
func (g Gender) FeedCode() string {
	if g == Women {
		return "wru"
	}
	return "mru"
}

// FirstRankingYear is the year the official rankings started for the population.
func (g Gender) FirstRankingYear() int {
	if g == Women {
		return 2016
	}
	return 2003
}

func (g Gender) String() string {
	return string(g)
}
