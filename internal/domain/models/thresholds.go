package models

import "fmt"

// Threshold is one named price level with its status label and embed color.
type Threshold struct {
	Name  string
	Level float64
	Label string
	Color int
}

// ThresholdSet is the ordered pain-chain configuration driving status
// classification. Levels are strictly increasing; Floor sits below them all.
// Built once at startup, never mutated.
type ThresholdSet struct {
	Levels   []Threshold // ascending by Level
	Floor    Threshold
	Baseline Threshold // label/color when no level is breached; Level unused
}

// DefaultThresholdSet returns the FLWS Jan-29 pain chain.
func DefaultThresholdSet() ThresholdSet {
	return ThresholdSet{
		Levels: []Threshold{
			{Name: "PIN_BREAK", Level: 5.03, Label: "🟡 PIN BROKEN (WEAK SHORTS COVERING)", Color: 0xF1C40F},
			{Name: "MARGIN_STRESS", Level: 5.46, Label: "🟠 MARGIN STRESS (FORCED BUYING)", Color: 0xE67E22},
			{Name: "NUCLEAR", Level: 6.00, Label: "☢️ NUCLEAR LIQUIDATION (T+1 DELIVERY RISK)", Color: 0xFF0000},
		},
		Floor:    Threshold{Name: "NATURAL_FLOOR", Level: 4.80, Label: "🔵 DISCOUNT (BELOW NATURAL FLOOR)", Color: 0x3498DB},
		Baseline: Threshold{Name: "SAFE", Label: "🟢 SAFE (ACCUMULATION)", Color: 0x2ECC71},
	}
}

// Validate checks the structural invariants: at least one level, strictly
// increasing levels, floor strictly below the first level.
func (s ThresholdSet) Validate() error {
	if len(s.Levels) == 0 {
		return fmt.Errorf("thresholds: at least one level is required")
	}
	prev := s.Floor.Level
	for i, l := range s.Levels {
		if l.Name == "" {
			return fmt.Errorf("thresholds: level %d has no name", i)
		}
		if l.Level <= prev {
			return fmt.Errorf("thresholds: %s (%.2f) must be above %.2f", l.Name, l.Level, prev)
		}
		prev = l.Level
	}
	return nil
}
