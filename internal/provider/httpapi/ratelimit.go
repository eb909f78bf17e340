package httpapi

import "golang.org/x/time/rate"

// newRateLimiter returns a token bucket that starts full, holds at most
// burst tokens and refills at ratePerSec. A zero rate disables limiting.
func newRateLimiter(ratePerSec float64, burst int) *rate.Limiter {
	if ratePerSec <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(ratePerSec), max(burst, 1))
}
