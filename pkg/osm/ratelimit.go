package osm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceNominatim names the Nominatim limiter.
const ServiceNominatim = "nominatim"

// RateLimiter manages rate limiting for the OpenStreetMap services this
// module calls.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

// NewRateLimiter returns a limiter preconfigured with Nominatim's usage
// policy of one request per second.
// https://operations.osmfoundation.org/policies/nominatim/
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: map[string]*rate.Limiter{
			ServiceNominatim: rate.NewLimiter(rate.Every(1*time.Second), 1),
		},
	}
}

// SetLimit replaces the limit for service.
func (rl *RateLimiter) SetLimit(service string, rps float64, burst int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiters[service] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the rate limit for the specified service allows an event
// or the context is canceled.
func (rl *RateLimiter) Wait(ctx context.Context, service string) error {
	rl.mu.RLock()
	limiter, exists := rl.limiters[service]
	rl.mu.RUnlock()

	if !exists {
		return fmt.Errorf("no rate limiter defined for service: %s", service)
	}

	if err := limiter.Wait(ctx); err != nil {
		slog.Debug("rate limiter wait error", "service", service, "error", err)
		return err
	}
	return nil
}
