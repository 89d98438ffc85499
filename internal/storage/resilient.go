package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/metrics"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
)

// ResilienceConfig tunes retries and the circuit breaker around an ObjectStore.
type ResilienceConfig struct {
	Name string

	// MaxTries bounds the attempts of one operation, the first one included.
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		Name:             "corpus-storage",
		MaxTries:         4,
		InitialInterval:  100 * time.Millisecond,
		MaxInterval:      2 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Resilient retries transient ObjectStore failures with exponential backoff
// behind a circuit breaker. Missing objects are returned immediately and never
// count against the breaker. Exhausted retries and an open breaker surface as
// backend-unavailable corpus errors.
type Resilient struct {
	next    ObjectStore
	cfg     ResilienceConfig
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *logrus.Logger
}

func NewResilient(next ObjectStore, cfg ResilienceConfig, logger *logrus.Logger) *Resilient {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrObjectNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.StorageBreakerState.WithLabelValues(name).Set(float64(to))
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Storage circuit breaker changed state")
		},
	}

	return &Resilient{
		next:    next,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

func (r *Resilient) Get(ctx context.Context, name string) ([]byte, error) {
	return r.do(ctx, "get", name, func() ([]byte, error) {
		return r.next.Get(ctx, name)
	})
}

func (r *Resilient) Put(ctx context.Context, name string, data []byte) error {
	_, err := r.do(ctx, "put", name, func() ([]byte, error) {
		return nil, r.next.Put(ctx, name, data)
	})
	return err
}

// BreakerState reports the current breaker state, e.g. "closed".
func (r *Resilient) BreakerState() string {
	return r.breaker.State().String()
}

func (r *Resilient) do(ctx context.Context, op, name string, fn func() ([]byte, error)) ([]byte, error) {
	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		if attempt > 1 {
			metrics.StorageRetries.WithLabelValues(op).Inc()
		}

		data, err := r.breaker.Execute(fn)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, ErrObjectNotFound) ||
			errors.Is(err, gobreaker.ErrOpenState) ||
			errors.Is(err, gobreaker.ErrTooManyRequests) ||
			ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}

		r.logger.WithError(err).WithFields(logrus.Fields{
			"operation": op,
			"object":    name,
			"attempt":   attempt,
		}).Warn("Storage operation failed, retrying")
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.cfg.InitialInterval
	policy.MaxInterval = r.cfg.MaxInterval

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(r.cfg.MaxTries),
	)
	metrics.RecordStorageOperation(op, err)

	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, ErrObjectNotFound):
		return nil, err
	default:
		return nil, corpus.Unavailable(fmt.Sprintf("storage %s %s failed", op, name), err)
	}
}
