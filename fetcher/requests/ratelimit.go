package requests

import (
	"context"
	"rugbyrank/pkg/config"
	"sync"
	"time"
)

// Single rate limit window.
type limitWindow struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Full rate limit, containing all the constraints.
// On demand requests only respect the windows, background jobs are also paced by the fetch interval.
type RateLimiter struct {
	windows []*limitWindow

	// Fetch interval for the background jobs.
	fetchInterval time.Duration

	// Last job fetch and the mutex.
	lastFetch time.Time
	mu        sync.Mutex
}

// Create a instance of the rate limiter.
func NewRateLimiter(cfg config.LimitsConfig) *RateLimiter {
	now := time.Now()

	windows := make([]*limitWindow, 0, 2)
	for _, w := range cfg.Windows() {
		// Windows without a limit are disabled.
		if w.Count <= 0 || w.ResetInterval <= 0 {
			continue
		}
		windows = append(windows, &limitWindow{
			limit:         w.Count,
			resetInterval: w.ResetInterval,
			lastReset:     now,
		})
	}

	return &RateLimiter{
		windows:       windows,
		fetchInterval: cfg.SlowInterval,
	}
}

// WaitApi blocks until a on demand request can run.
func (r *RateLimiter) WaitApi(ctx context.Context) error {
	return r.wait(ctx, false)
}

// WaitJob blocks until a background request can run.
func (r *RateLimiter) WaitJob(ctx context.Context) error {
	return r.wait(ctx, true)
}

// Wait until a slot is reserved or the context is done.
func (r *RateLimiter) wait(ctx context.Context, job bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		waitTime, ok := r.reserve(job)
		if ok {
			return nil
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Try to reserve a request slot.
// Returns how long to wait when there's no slot available.
func (r *RateLimiter) reserve(job bool) (time.Duration, bool) {
	// Locks the limiter.
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.resetCounts(now)

	var waitTime time.Duration

	// Verify if it's not to early for a job.
	if job {
		if elapsed := now.Sub(r.lastFetch); elapsed < r.fetchInterval {
			waitTime = r.fetchInterval - elapsed
		}
	}

	// The longest wait of the exhausted windows.
	for _, window := range r.windows {
		if window.count < window.limit {
			continue
		}
		waitTill := window.resetInterval - now.Sub(window.lastReset)
		if waitTill > waitTime {
			waitTime = waitTill
		}
	}

	if waitTime > 0 {
		return waitTime, false
	}

	// Increment the count.
	for _, window := range r.windows {
		window.count++
	}
	if job {
		r.lastFetch = now
	}

	return 0, true
}

// Reset the count of the windows that expired.
func (r *RateLimiter) resetCounts(now time.Time) {
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}
