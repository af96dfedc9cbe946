package models

// BookDepth carries top-of-book metrics only the real-time feed provides.
type BookDepth struct {
	Spread    float64 // cents, rounded to 1dp
	BidSize   int64
	AskSize   int64
	Imbalance float64 // [-1, 1], 0 when both sizes are 0
}

// Observation is one normalized snapshot of market data for the monitored
// symbol. Produced once per cycle and never mutated after the velocity pass.
type Observation struct {
	Source    string // adapter label, e.g. "POLYGON (Real-Time)"
	Symbol    string
	Price     float64
	PrevClose float64
	ChangePct float64
	Volume    int64
	High      float64
	Low       float64

	// Premium-only fields. Nil means the producing source does not report
	// them; the composer renders a placeholder, never a zero.
	VWAP *float64
	Book *BookDepth

	// Velocity is filled in post-fetch by the estimator. Shares per minute,
	// 0 outside the trading session.
	Velocity float64

	// Delayed marks retail feeds so downstream labeling can flag reduced
	// confidence.
	Delayed bool
}
