package repository

import (
	"context"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
)

// SourceAdapter fetches and normalizes market data from one upstream.
// Implementations return models.ErrAdapterUnavailable when they cannot run at
// all, or *models.AdapterError on a failed attempt. They never panic on
// network or shape errors.
type SourceAdapter interface {
	Name() string
	Fetch(ctx context.Context) (*models.Observation, error)
}

// Notifier delivers a composed payload to one channel. One attempt per
// cycle; a rejection surfaces as *models.DeliveryError.
type Notifier interface {
	Name() string
	Deliver(ctx context.Context, p *models.AlertPayload) error
}

// Clock abstracts wall time so session-window logic and payload footers are
// testable at arbitrary times.
type Clock interface {
	Now() time.Time
}

type Metrics interface {
	RecordCycle(result string, seconds float64)
	RecordAdapterFailure(adapter, reason string)
	RecordLastPrice(symbol string, price float64)
	RecordDelivery(channel, result string)
}
