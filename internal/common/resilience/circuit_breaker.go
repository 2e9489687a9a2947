package resilience

import (
	"context"
	"sync"
	"time"

	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

// CircuitBreaker rejects calls after Threshold consecutive failures. Once
// ResetAfter has passed since the last failure a single trial call is let
// through: success closes the circuit, failure opens it again.
type CircuitBreaker struct {
	mu          sync.Mutex
	state       state
	failures    int32
	lastFailure time.Time
	trialActive bool

	threshold  int32
	timeout    time.Duration
	resetAfter time.Duration
	name       string
	log        *logger.Logger
	ignore     func(error) bool
}

type CircuitBreakerConfig struct {
	Threshold  int32
	Timeout    time.Duration
	ResetAfter time.Duration
	Name       string
	Logger     *logger.Logger
	// IsIgnored reports errors that must not count as failures.
	IsIgnored func(error) bool
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.Threshold <= 0 {
		config.Threshold = 1
	}
	return &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		name:       config.Name,
		log:        config.Logger,
		ignore:     config.IsIgnored,
	}
}

// IsOpen reports whether a call made now would be rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()
	return cb.state == stateOpen || (cb.state == stateHalfOpen && cb.trialActive)
}

func (cb *CircuitBreaker) refreshLocked() {
	if cb.state == stateOpen && time.Since(cb.lastFailure) > cb.resetAfter {
		cb.setStateLocked(stateHalfOpen)
	}
}

func (cb *CircuitBreaker) setStateLocked(s state) {
	if cb.state != s && cb.log != nil {
		cb.log.Infof("circuit breaker [%s]: state %d -> %d", cb.name, cb.state, s)
	}
	cb.state = s
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(float64(s))
	}
}

// acquire reserves the right to call. It returns false while open or while a
// half-open trial is already running.
func (cb *CircuitBreaker) acquire() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()
	switch cb.state {
	case stateOpen:
		return false
	case stateHalfOpen:
		if cb.trialActive {
			return false
		}
		cb.trialActive = true
	}
	return true
}

func (cb *CircuitBreaker) onSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.trialActive = false
	cb.setStateLocked(stateClosed)
}

func (cb *CircuitBreaker) onFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()
	cb.trialActive = false
	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	if cb.log != nil {
		cb.log.Warnf("circuit breaker [%s]: failure recorded (%d/%d)", cb.name, cb.failures, cb.threshold)
	}

	if cb.state == stateHalfOpen || cb.failures >= cb.threshold {
		cb.setStateLocked(stateOpen)
	}
}

func (cb *CircuitBreaker) onIgnored() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.trialActive = false
}

func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	return cb.CallWithFallback(ctx, fn, nil)
}

func (cb *CircuitBreaker) CallWithFallback(ctx context.Context, fn func(context.Context) error, fallback func() error) error {
	if !cb.acquire() {
		if cb.log != nil {
			cb.log.Warnf("circuit breaker [%s]: circuit is open, rejecting call", cb.name)
		}
		if fallback != nil {
			return fallback()
		}
		return commonerrors.ErrCircuitOpen
	}

	callCtx, cancel := context.WithTimeout(ctx, cb.timeout)
	defer cancel()

	err := fn(callCtx)
	switch {
	case err == nil:
		cb.onSuccess()
		return nil
	case cb.ignore != nil && cb.ignore(err):
		cb.onIgnored()
	default:
		cb.onFailure()
	}

	if fallback != nil {
		return fallback()
	}
	return err
}
