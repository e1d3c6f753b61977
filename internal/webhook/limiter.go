package webhook

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles webhook tests per organization.
type Limiter struct {
	mu       sync.Mutex
	limiters map[uint]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &Limiter{
		limiters: make(map[uint]*rate.Limiter),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *Limiter) Allow(organizationID uint) bool {
	l.mu.Lock()
	lim, ok := l.limiters[organizationID]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[organizationID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
