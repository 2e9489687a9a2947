package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
		done:     make(chan struct{}),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanup.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanup.Stop()
		close(rl.done)
	})
}

// RouteRateLimiter keeps separate per-client budgets for sign-up, email
// verification and everything else.
type RouteRateLimiter struct {
	signupLimiter  *RateLimiter
	verifyLimiter  *RateLimiter
	generalLimiter *RateLimiter
}

func NewRouteRateLimiter() *RouteRateLimiter {
	return &RouteRateLimiter{
		signupLimiter:  NewRateLimiter(constants.RateLimitSignupRequestsPerSecond, constants.RateLimitSignupBurst),
		verifyLimiter:  NewRateLimiter(constants.RateLimitVerifyRequestsPerSecond, constants.RateLimitVerifyBurst),
		generalLimiter: NewRateLimiter(constants.RateLimitGeneralRequestsPerSecond, constants.RateLimitGeneralBurst),
	}
}

func (rrl *RouteRateLimiter) limiterFor(r *http.Request) (*RateLimiter, string) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/users":
		return rrl.signupLimiter, "signup"
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/users/") && strings.HasSuffix(r.URL.Path, "/verify"):
		return rrl.verifyLimiter, "verify"
	default:
		return rrl.generalLimiter, "general"
	}
}

func (rrl *RouteRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health", "/ready", "/metrics":
			next.ServeHTTP(w, r)
			return
		}

		limiter, limiterType := rrl.limiterFor(r)

		if !limiter.Allow(GetClientIP(r)) {
			metrics.RateLimitBlocked.WithLabelValues(r.URL.Path, limiterType).Inc()
			WriteErrorEnvelope(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded", nil, TraceIDFromContext(r.Context()))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rrl *RouteRateLimiter) Stop() {
	rrl.signupLimiter.Stop()
	rrl.verifyLimiter.Stop()
	rrl.generalLimiter.Stop()
}
