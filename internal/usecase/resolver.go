package usecase

import (
	"context"
	"errors"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	xlogger "github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

// Resolver walks the adapter chain in priority order (premium first) and
// returns the first successful Observation. Partial results are never merged
// across adapters.
type Resolver struct {
	adapters []drepo.SourceAdapter
	metrics  drepo.Metrics
	log      *xlogger.Logger
}

// NewResolver creates a fallback resolver over an ordered adapter chain.
func NewResolver(adapters []drepo.SourceAdapter, metrics drepo.Metrics, log *xlogger.Logger) *Resolver {
	return &Resolver{adapters: adapters, metrics: metrics, log: log}
}

// Resolve tries each adapter in order. Unavailable adapters (no credential)
// are skipped without counting as attempts; failed attempts are recorded.
// When every adapter fails the cycle terminates with *AllSourcesFailedError.
func (r *Resolver) Resolve(ctx context.Context) (*models.Observation, error) {
	var attempts []*models.AdapterError

	for _, a := range r.adapters {
		obs, err := a.Fetch(ctx)
		if err == nil {
			if len(attempts) > 0 {
				r.log.Warn("fell back to secondary feed",
					xlogger.String("source", a.Name()),
					xlogger.Int("failed_attempts", len(attempts)))
			}
			return obs, nil
		}

		if errors.Is(err, models.ErrAdapterUnavailable) {
			r.log.Debug("adapter unavailable, skipping", xlogger.String("adapter", a.Name()))
			continue
		}

		var aerr *models.AdapterError
		if !errors.As(err, &aerr) {
			aerr = &models.AdapterError{Adapter: a.Name(), Reason: "malformed", Err: err}
		}
		attempts = append(attempts, aerr)
		r.metrics.RecordAdapterFailure(aerr.Adapter, aerr.Reason)
		r.log.Warn("adapter fetch failed",
			xlogger.String("adapter", aerr.Adapter),
			xlogger.String("reason", aerr.Reason),
			xlogger.Error(err))
	}

	return nil, &models.AllSourcesFailedError{Attempts: attempts}
}
