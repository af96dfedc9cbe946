package usecase

import (
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
)

// Pressure labels for the order-flow imbalance reading.
const (
	PressureBuying   = "🟢 BUYING PRESSURE"
	PressureSelling  = "🔴 SELLING WALL"
	PressureBalanced = "⚪ BALANCED"
	PressureUnknown  = "❔ NO BOOK DATA"
)

// imbalanceBand is the +/- zone around 0 that still reads as balanced.
const imbalanceBand = 0.3

// Classifier maps an observation onto the pain chain. Pure functions of the
// fixed ThresholdSet; no hysteresis, so a price oscillating around a level
// re-classifies every cycle.
type Classifier struct {
	set models.ThresholdSet
}

// NewClassifier creates a classifier over a validated ThresholdSet.
func NewClassifier(set models.ThresholdSet) *Classifier {
	return &Classifier{set: set}
}

// Classify returns the status for a price. Levels are checked from the top
// down so breaching a higher level always dominates a lower one. Upper
// levels trigger on strict price > level; the floor triggers on strict
// price < floor, so a print exactly at the floor is still baseline.
func (c *Classifier) Classify(price float64) models.Threshold {
	for i := len(c.set.Levels) - 1; i >= 0; i-- {
		if price > c.set.Levels[i].Level {
			return c.set.Levels[i]
		}
	}
	if price < c.set.Floor.Level {
		return c.set.Floor
	}
	return c.set.Baseline
}

// Pressure maps top-of-book imbalance to a label. An observation without
// book data gets its own label; it must never silently read as balanced.
func (c *Classifier) Pressure(obs *models.Observation) string {
	if obs.Book == nil {
		return PressureUnknown
	}
	switch {
	case obs.Book.Imbalance > imbalanceBand:
		return PressureBuying
	case obs.Book.Imbalance < -imbalanceBand:
		return PressureSelling
	default:
		return PressureBalanced
	}
}
