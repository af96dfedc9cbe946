package models

import "time"

// CycleReport is the structured result of one observation-and-alert cycle,
// kept in memory for the ops API. A failed cycle carries the attempt
// diagnostics and no payload.
type CycleReport struct {
	At        time.Time `json:"at"`
	OK        bool      `json:"ok"`
	Source    string    `json:"source,omitempty"`
	Price     float64   `json:"price,omitempty"`
	ChangePct float64   `json:"change_pct,omitempty"`
	Volume    int64     `json:"volume,omitempty"`
	Velocity  float64   `json:"velocity,omitempty"`
	Status    string    `json:"status,omitempty"`
	Pressure  string    `json:"pressure,omitempty"`
	Delivered []string  `json:"delivered,omitempty"` // channels that accepted the payload
	Errors    []string  `json:"errors,omitempty"`    // adapter attempts or delivery failures
}
