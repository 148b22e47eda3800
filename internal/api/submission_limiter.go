package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// submissionSweepEvery is how many recorded submissions pass between sweeps of idle
// client keys.
const submissionSweepEvery = 256

// submissionLimiter allows at most limit forecast submissions per client inside a
// sliding window.
type submissionLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	recent   map[string][]time.Time
	recorded int
}

func newSubmissionLimiter(limit int, window time.Duration) *submissionLimiter {
	return &submissionLimiter{
		limit:  limit,
		window: window,
		recent: make(map[string][]time.Time),
	}
}

func (limiter *submissionLimiter) allow(client string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	active := activeSince(limiter.recent[client], now.Add(-limiter.window))
	if len(active) >= limiter.limit {
		limiter.recent[client] = active
		return false
	}
	limiter.recent[client] = append(active, now)

	limiter.recorded++
	if limiter.recorded%submissionSweepEvery == 0 {
		limiter.sweepLocked(now)
	}
	return true
}

func (limiter *submissionLimiter) clients() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.recent)
}

func (limiter *submissionLimiter) sweepLocked(now time.Time) {
	threshold := now.Add(-limiter.window)
	for client, stamps := range limiter.recent {
		if active := activeSince(stamps, threshold); len(active) == 0 {
			delete(limiter.recent, client)
		} else {
			limiter.recent[client] = active
		}
	}
}

// activeSince drops the leading stamps at or before threshold. Stamps are appended in
// order, so the rest are newer.
func activeSince(stamps []time.Time, threshold time.Time) []time.Time {
	first := 0
	for first < len(stamps) && !stamps[first].After(threshold) {
		first++
	}
	if first == len(stamps) {
		return nil
	}
	return stamps[first:]
}

func submissionClientKey(c *fiber.Ctx) string {
	client := strings.TrimSpace(c.IP())
	if client == "" {
		return "unknown"
	}
	return client
}

func (handler *Handler) allowSubmission(c *fiber.Ctx) bool {
	return handler.submissions.allow(submissionClientKey(c), handler.now())
}
