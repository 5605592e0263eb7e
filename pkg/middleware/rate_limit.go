package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"parkd/pkg/logger"
	"parkd/pkg/sanitizer"
)

// PlateExtractor derives the rate-limit key from a request.
type PlateExtractor func(r *http.Request) string

// PlateRateLimiter throttles per plate using a sliding window, so one
// misbehaving client cannot hammer the coordinator's critical section
// for the whole lot.
type PlateRateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor PlateExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewPlateRateLimiter(limit int, window time.Duration, extractor PlateExtractor, log *logger.Logger) *PlateRateLimiter {
	limiter := &PlateRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()
	return limiter
}

func (rl *PlateRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for plate, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, plate)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *PlateRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *PlateRateLimiter) Allow(plate string) bool {
	if plate == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[plate][:0]
	for _, ts := range rl.requests[plate] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[plate] = valid
		return false
	}

	rl.requests[plate] = append(valid, now)
	return true
}

func PlateRateLimit(limiter *PlateRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			plate := limiter.extractor(r)
			if !limiter.Allow(plate) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"plate", plate,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests for this plate"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultPlateExtractor reads the plate from a JSON body, restoring
// the body for downstream handlers.
func DefaultPlateExtractor(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Plate string `json:"plate"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return sanitizer.SanitizePlate(payload.Plate)
}
