// Package ratelimit provides token-bucket pacing for capture requests, so
// sampling a live endpoint never hammers it.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// EndpointLimiter rate-limits capture calls per base URL using token buckets.
type EndpointLimiter struct {
	mu       sync.Mutex
	rps      float64
	limiters map[string]*rate.Limiter
}

// NewEndpointLimiter creates a limiter applying the given requests-per-second
// rate independently to each endpoint.
func NewEndpointLimiter(rps float64) *EndpointLimiter {
	if rps <= 0 {
		rps = 1
	}
	return &EndpointLimiter{
		rps:      rps,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a token is available for the endpoint, or ctx is cancelled.
func (el *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	el.mu.Lock()
	limiter, ok := el.limiters[endpoint]
	if !ok {
		burst := int(el.rps)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(el.rps), burst)
		el.limiters[endpoint] = limiter
	}
	el.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", endpoint, err)
	}
	return nil
}
