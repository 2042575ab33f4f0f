package breaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"rentit/pkg/logger"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("upstream temporarily unavailable")

// New returns a breaker that opens after three consecutive failures and
// probes again after ten seconds.
func New(name string, log *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker changed state")
		},
	})
}

// Execute runs fn through cb and restores the result type.
func Execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T

	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, ErrUnavailable
		}
		return zero, err
	}

	return result.(T), nil
}
