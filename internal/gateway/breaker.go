package gateway

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// breaker fails fast after repeated backend failures. A nil breaker passes
// every call through.
type breaker struct {
	cb *gobreaker.CircuitBreaker
}

func newBreaker(name string, maxFailures uint32, timeout time.Duration, logger *slog.Logger) *breaker {
	if maxFailures == 0 {
		return nil
	}

	return &breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})}
}

func (b *breaker) execute(req func() (interface{}, error)) (interface{}, error) {
	if b == nil {
		return req()
	}
	return b.cb.Execute(req)
}

func (b *breaker) state() string {
	if b == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
