package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle blocks until the next request may be sent
type Throttle interface {
	Wait(ctx context.Context) error
}

// Sleep waits a fixed duration on every call
type Sleep time.Duration

func (d Sleep) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type noThrottle struct{}

func (noThrottle) Wait(ctx context.Context) error { return ctx.Err() }

// NoThrottle never waits
var NoThrottle Throttle = noThrottle{}

// NewRateThrottle allows perSecond requests per second with no burst
func NewRateThrottle(perSecond float64) Throttle {
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// NewThrottle picks the throttle described by cfg
func NewThrottle(cfg Config) Throttle {
	if cfg.RatePerSecond > 0 {
		return NewRateThrottle(cfg.RatePerSecond)
	}
	return Sleep(cfg.Delay)
}
