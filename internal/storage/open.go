package storage

import (
	"context"
	"fmt"

	"corpus-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Open returns the object store selected by cfg.Corpus.Source, wrapped with
// retries and a circuit breaker tuned by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Resilient, error) {
	var (
		store ObjectStore
		err   error
	)
	switch cfg.Corpus.Source {
	case config.SourceDir:
		store, err = NewDirStore(cfg.Corpus.Dir)
	case config.SourceBucket:
		store, err = NewMinIOStore(ctx, &cfg.MinIO, logger)
	default:
		err = fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}
	if err != nil {
		return nil, err
	}

	rc := DefaultResilienceConfig()
	rc.Name = "corpus-" + cfg.Corpus.Source
	rc.MaxTries = cfg.Storage.MaxTries
	rc.InitialInterval = cfg.Storage.InitialInterval
	rc.MaxInterval = cfg.Storage.MaxInterval
	rc.FailureThreshold = cfg.Storage.FailureThreshold
	rc.OpenTimeout = cfg.Storage.BreakerTimeout
	return NewResilient(store, rc, logger), nil
}
