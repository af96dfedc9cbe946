package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

type stubAdapter struct {
	name string
	obs  *models.Observation
	err  error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context) (*models.Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.obs, nil
}

type recordingMetrics struct {
	adapterFailures []string
	deliveries      []string
	cycles          []string
}

func (m *recordingMetrics) RecordCycle(result string, seconds float64) {
	m.cycles = append(m.cycles, result)
}

func (m *recordingMetrics) RecordAdapterFailure(adapter, reason string) {
	m.adapterFailures = append(m.adapterFailures, adapter+"/"+reason)
}

func (m *recordingMetrics) RecordLastPrice(symbol string, price float64) {}

func (m *recordingMetrics) RecordDelivery(channel, result string) {
	m.deliveries = append(m.deliveries, channel+"/"+result)
}

func TestResolvePrimaryWins(t *testing.T) {
	primary := &stubAdapter{name: "polygon", obs: &models.Observation{Source: "POLYGON (Real-Time)", Price: 5.50}}
	secondary := &stubAdapter{name: "yahoo", obs: &models.Observation{Source: "YAHOO (Retail)", Price: 5.49}}

	r := NewResolver([]drepo.SourceAdapter{primary, secondary}, &recordingMetrics{}, logger.Nop())

	obs, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if obs.Source != "POLYGON (Real-Time)" {
		t.Errorf("Source = %q, want primary", obs.Source)
	}
}

func TestResolveFallsBackOnFailure(t *testing.T) {
	metrics := &recordingMetrics{}
	primary := &stubAdapter{name: "polygon", err: &models.AdapterError{Adapter: "polygon", Reason: "timeout"}}
	secondary := &stubAdapter{name: "yahoo", obs: &models.Observation{Source: "YAHOO (Retail)", Price: 5.49}}

	r := NewResolver([]drepo.SourceAdapter{primary, secondary}, metrics, logger.Nop())

	obs, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if obs.Source != "YAHOO (Retail)" {
		t.Errorf("Source = %q, want fallback", obs.Source)
	}
	if len(metrics.adapterFailures) != 1 || metrics.adapterFailures[0] != "polygon/timeout" {
		t.Errorf("adapter failures = %v, want [polygon/timeout]", metrics.adapterFailures)
	}
}

func TestResolveSkipsUnavailableWithoutAttempt(t *testing.T) {
	metrics := &recordingMetrics{}
	primary := &stubAdapter{name: "polygon", err: models.ErrAdapterUnavailable}
	secondary := &stubAdapter{name: "yahoo", obs: &models.Observation{Source: "YAHOO (Retail)"}}

	r := NewResolver([]drepo.SourceAdapter{primary, secondary}, metrics, logger.Nop())

	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(metrics.adapterFailures) != 0 {
		t.Errorf("unavailable adapter recorded as failure: %v", metrics.adapterFailures)
	}
}

func TestResolveAllFailed(t *testing.T) {
	primary := &stubAdapter{name: "polygon", err: &models.AdapterError{Adapter: "polygon", Reason: "status", Err: errors.New("403")}}
	secondary := &stubAdapter{name: "yahoo", err: &models.AdapterError{Adapter: "yahoo", Reason: "malformed"}}

	r := NewResolver([]drepo.SourceAdapter{primary, secondary}, &recordingMetrics{}, logger.Nop())

	_, err := r.Resolve(context.Background())
	if err == nil {
		t.Fatal("Resolve() expected error")
	}
	var all *models.AllSourcesFailedError
	if !errors.As(err, &all) {
		t.Fatalf("error type = %T, want *AllSourcesFailedError", err)
	}
	if len(all.Attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(all.Attempts))
	}
	if all.Attempts[0].Adapter != "polygon" || all.Attempts[1].Adapter != "yahoo" {
		t.Errorf("attempt order = %s, %s", all.Attempts[0].Adapter, all.Attempts[1].Adapter)
	}
	if !strings.Contains(err.Error(), "polygon: status") || !strings.Contains(err.Error(), "yahoo: malformed") {
		t.Errorf("error message missing attempts: %v", err)
	}
}

func TestResolveAllUnavailable(t *testing.T) {
	primary := &stubAdapter{name: "polygon", err: models.ErrAdapterUnavailable}
	secondary := &stubAdapter{name: "yahoo", err: models.ErrAdapterUnavailable}

	r := NewResolver([]drepo.SourceAdapter{primary, secondary}, &recordingMetrics{}, logger.Nop())

	_, err := r.Resolve(context.Background())
	var all *models.AllSourcesFailedError
	if !errors.As(err, &all) {
		t.Fatalf("error type = %T, want *AllSourcesFailedError", err)
	}
	if len(all.Attempts) != 0 {
		t.Errorf("attempts = %d, want 0 when every adapter was only skipped", len(all.Attempts))
	}
}

func TestResolveWrapsForeignError(t *testing.T) {
	primary := &stubAdapter{name: "polygon", err: errors.New("boom")}

	r := NewResolver([]drepo.SourceAdapter{primary}, &recordingMetrics{}, logger.Nop())

	_, err := r.Resolve(context.Background())
	var all *models.AllSourcesFailedError
	if !errors.As(err, &all) {
		t.Fatalf("error type = %T, want *AllSourcesFailedError", err)
	}
	if len(all.Attempts) != 1 || all.Attempts[0].Reason != "malformed" {
		t.Fatalf("foreign error not classified as malformed: %+v", all.Attempts)
	}
}
