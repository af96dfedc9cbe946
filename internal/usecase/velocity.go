package usecase

import (
	"fmt"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/util"
)

// VelocityEstimator derives a shares-per-minute rate from session volume.
// Only defined inside the trading window; outside it the rate is exactly 0.
type VelocityEstimator struct {
	openMin  int
	closeMin int
	loc      *time.Location
}

// NewVelocityEstimator builds an estimator for a wall-clock session window
// ("09:30" to "16:00") in the given market timezone.
func NewVelocityEstimator(open, close string, loc *time.Location) (*VelocityEstimator, error) {
	openMin, err := util.ParseClock(open)
	if err != nil {
		return nil, fmt.Errorf("session open: %w", err)
	}
	closeMin, err := util.ParseClock(close)
	if err != nil {
		return nil, fmt.Errorf("session close: %w", err)
	}
	if openMin >= closeMin {
		return nil, fmt.Errorf("session open %s must be before close %s", open, close)
	}
	return &VelocityEstimator{openMin: openMin, closeMin: closeMin, loc: loc}, nil
}

// Estimate returns volume per minute since the open, clamped to at least one
// minute so the instant of open cannot divide by zero.
func (e *VelocityEstimator) Estimate(obs *models.Observation, now time.Time) float64 {
	local := now.In(e.loc)
	minute := util.MinuteOfDay(local)
	if minute < e.openMin || minute > e.closeMin {
		return 0
	}

	open := time.Date(local.Year(), local.Month(), local.Day(), e.openMin/60, e.openMin%60, 0, 0, e.loc)
	minutesOpen := local.Sub(open).Minutes()
	if minutesOpen < 1 {
		minutesOpen = 1
	}
	return float64(obs.Volume) / minutesOpen
}
