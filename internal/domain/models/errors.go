package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAdapterUnavailable marks an adapter that cannot run at all (missing
// credential). The fallback selector skips it without counting an attempt.
var ErrAdapterUnavailable = errors.New("adapter unavailable")

// AdapterError is a failed fetch attempt from one source.
type AdapterError struct {
	Adapter string
	Reason  string // timeout | status | malformed | missing_field
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Adapter, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Adapter, e.Reason)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// AllSourcesFailedError terminates a cycle: every adapter in the chain
// failed. Attempts preserve try order for the diagnostic report.
type AllSourcesFailedError struct {
	Attempts []*AdapterError
}

func (e *AllSourcesFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return "all sources failed: " + strings.Join(parts, "; ")
}

// DeliveryError is a transport rejection of a composed payload. Not retried.
type DeliveryError struct {
	Channel string
	Status  int
	Body    string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: status %d: %s", e.Channel, e.Status, e.Body)
}
