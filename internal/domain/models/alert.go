package models

import "time"

// AlertField is one named section of the alert body.
type AlertField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// AlertPayload is the channel-agnostic alert. Fully determined by
// (Observation, ThresholdSet, volume target, clock); notifiers only reshape
// it for their transport.
type AlertPayload struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []AlertField `json:"fields"`
	Footer      string       `json:"footer"`
	GeneratedAt time.Time    `json:"generated_at"`
}
