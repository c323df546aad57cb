package filters

import (
	"rugbyrank/pkg/gender"
)

// URI params for the gender scoped endpoints.
type GenderURIParams struct {
	Gender string `uri:"gender" binding:"required"`
}

// Parse the gender of the path.
func (p *GenderURIParams) Parse() (gender.Gender, error) {
	return gender.Parse(p.Gender)
}

// Query params for the outcomes endpoint.
// Ratings are pointers so a rating of zero is still accepted.
type OutcomesQueryParams struct {
	Home    *float64 `form:"home" binding:"required"`
	Away    *float64 `form:"away" binding:"required"`
	Major   bool     `form:"major"`
	Neutral bool     `form:"neutral"`
}

type OutcomesFilter struct {
	HomeRating     float64
	AwayRating     float64
	IsMajorEvent   bool
	IsNeutralVenue bool
}

func NewOutcomesFilter(qp *OutcomesQueryParams) *OutcomesFilter {
	return &OutcomesFilter{
		HomeRating:     *qp.Home,
		AwayRating:     *qp.Away,
		IsMajorEvent:   qp.Major,
		IsNeutralVenue: qp.Neutral,
	}
}
