package filters

import (
	"errors"
	"fmt"
	"rugbyrank/pkg/gender"
	"strings"
	"time"
)

var (
	ErrMissingParam = errors.New("missing parameter")
	ErrInvalidParam = errors.New("invalid parameter")
)

// Actions of the history endpoint.
const (
	HistoryList   = "list"
	HistoryDates  = "dates"
	HistoryTeams  = "teams"
	HistoryLatest = "latest"
	HistoryAtDate = "atDate"
	HistoryTeam   = "team"
)

// Query params for the history endpoint.
type HistoryQueryParams struct {
	Action    string `form:"action,default=list"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	TeamIDs   string `form:"teamIds"`
	TeamID    string `form:"teamId"`
	Date      string `form:"date"`
}

// HistoryFilter is a validated history query.
// Dates are nil when not given.
type HistoryFilter struct {
	Gender    gender.Gender
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	TeamIDs   []string
	TeamID    string
	Date      *time.Time
}

// NewHistoryFilter validates the params of the action.
func NewHistoryFilter(g gender.Gender, qp *HistoryQueryParams) (*HistoryFilter, error) {
	filter := &HistoryFilter{
		Gender: g,
		Action: qp.Action,
		TeamID: strings.TrimSpace(qp.TeamID),
	}
	// Unknown actions are served as a list.
	switch filter.Action {
	case HistoryDates, HistoryTeams, HistoryLatest, HistoryAtDate, HistoryTeam:
	default:
		filter.Action = HistoryList
	}

	var err error
	if filter.StartDate, err = parseDate("startDate", qp.StartDate); err != nil {
		return nil, err
	}
	if filter.EndDate, err = parseDate("endDate", qp.EndDate); err != nil {
		return nil, err
	}
	if filter.Date, err = parseDate("date", qp.Date); err != nil {
		return nil, err
	}

	for _, id := range strings.Split(qp.TeamIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			filter.TeamIDs = append(filter.TeamIDs, id)
		}
	}

	// Required params of each action.
	switch filter.Action {
	case HistoryList:
		if filter.StartDate == nil || filter.EndDate == nil {
			return nil, fmt.Errorf("startDate and endDate are required: %w", ErrMissingParam)
		}
	case HistoryAtDate:
		if filter.Date == nil {
			return nil, fmt.Errorf("date is required for atDate: %w", ErrMissingParam)
		}
	case HistoryTeam:
		if filter.TeamID == "" {
			return nil, fmt.Errorf("teamId is required for team: %w", ErrMissingParam)
		}
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate: %w", ErrInvalidParam)
	}

	return filter, nil
}

// CacheKey identifies the query on the cache.
func (f *HistoryFilter) CacheKey() string {
	return fmt.Sprintf(
		"history:%s:%s:%s:%s:%s:%s:%s",
		f.Gender,
		f.Action,
		formatDate(f.StartDate),
		formatDate(f.EndDate),
		strings.Join(f.TeamIDs, ","),
		f.TeamID,
		formatDate(f.Date),
	)
}

func parseDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", name, ErrInvalidParam)
	}
	return &parsed, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
