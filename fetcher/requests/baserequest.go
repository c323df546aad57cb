package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Request creates a request accepting JSON and runs it.
func Request(ctx context.Context, client *http.Client, url string, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return client.Do(req)
}

// GetJSON runs a GET request and decodes the body into the target.
func GetJSON(ctx context.Context, client *http.Client, url string, target any) error {
	resp, err := Request(ctx, client, url, http.MethodGet)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}

	return nil
}

// StatusError is returned when the feed answers with a non 200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status code %d for %s", e.StatusCode, e.URL)
}
