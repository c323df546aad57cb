package worldrugby

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"rugbyrank/fetcher/requests"
	"rugbyrank/pkg/gender"
	"strconv"
	"strings"
)

const (
	// Size of each page of the match endpoint.
	matchPageSize = 100
	// Guard against a feed that never returns a short page.
	maxMatchPages = 50
)

// Fetcher reads the World Rugby rankings feed.
type Fetcher struct {
	limiter *requests.RateLimiter // Pointer to the limiter, since it's shared.
	client  *http.Client
	baseURL string
}

// NewFetcher creates a feed fetcher.
func NewFetcher(limiter *requests.RateLimiter, client *http.Client, baseURL string) *Fetcher {
	return &Fetcher{
		limiter: limiter,
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// wait for the limiter, depending on the type of request.
func (f *Fetcher) wait(ctx context.Context, onDemand bool) error {
	if onDemand {
		return f.limiter.WaitApi(ctx)
	}
	return f.limiter.WaitJob(ctx)
}

// GetRankings gets a rankings release.
// A empty date returns the current release, otherwise the release effective at the date (YYYY-MM-DD).
func (f *Fetcher) GetRankings(ctx context.Context, g gender.Gender, date string, onDemand bool) (*RankingsResponse, error) {
	if err := f.wait(ctx, onDemand); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("language", "en")
	params.Set("client", "pulse")
	if date != "" {
		params.Set("date", date)
	}

	endpoint := fmt.Sprintf("%s/rugby/v3/rankings/%s?%s", f.baseURL, g.FeedCode(), params.Encode())

	var data RankingsResponse
	if err := requests.GetJSON(ctx, f.client, endpoint, &data); err != nil {
		return nil, fmt.Errorf("couldn't get %s rankings: %w", g, err)
	}

	return &data, nil
}

// GetMatches gets every match between the dates (YYYY-MM-DD), following the pages.
func (f *Fetcher) GetMatches(ctx context.Context, g gender.Gender, startDate, endDate string, onDemand bool) ([]Match, error) {
	var matches []Match

	for page := 0; page < maxMatchPages; page++ {
		if err := f.wait(ctx, onDemand); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("startDate", startDate)
		params.Set("endDate", endDate)
		params.Set("sort", "asc")
		params.Set("pageSize", strconv.Itoa(matchPageSize))
		params.Set("page", strconv.Itoa(page))
		params.Set("sport", g.FeedCode())

		endpoint := fmt.Sprintf("%s/rugby/v3/match?%s", f.baseURL, params.Encode())

		var data FixturesResponse
		if err := requests.GetJSON(ctx, f.client, endpoint, &data); err != nil {
			return nil, fmt.Errorf("couldn't get %s matches page %d: %w", g, page, err)
		}

		matches = append(matches, data.Content...)

		// A short page is the last one.
		if len(data.Content) < matchPageSize {
			break
		}
	}

	return matches, nil
}
