package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/usecase"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/cache"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

type stubAdapter struct {
	calls int
	obs   *models.Observation
	err   error
}

func (s *stubAdapter) Name() string { return "stub" }

func (s *stubAdapter) Fetch(ctx context.Context) (*models.Observation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.obs
	return &cp, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordCycle(string, float64)         {}
func (nopMetrics) RecordAdapterFailure(string, string) {}
func (nopMetrics) RecordLastPrice(string, float64)     {}
func (nopMetrics) RecordDelivery(string, string)       {}

func newTestEnv(t *testing.T, adapter drepo.SourceAdapter) (*echo.Echo, *usecase.Monitor, cache.Service) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	log := logger.Nop()
	set := models.DefaultThresholdSet()

	resolver := usecase.NewResolver([]drepo.SourceAdapter{adapter}, nopMetrics{}, log)
	velocity, err := usecase.NewVelocityEstimator("09:30", "16:00", loc)
	if err != nil {
		t.Fatalf("NewVelocityEstimator: %v", err)
	}
	composer := usecase.NewComposer("FLWS", set, 1500000, "Kurrupt Research", loc, usecase.NewSystemClock())
	monitor := usecase.NewMonitor(resolver, velocity, usecase.NewClassifier(set), composer, nil, usecase.NewSystemClock(), nopMetrics{}, log, 8)

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	h := NewStatusHandler(monitor, mem, "FLWS", 10*time.Second, log)
	e := echo.New()
	h.RegisterRoutes(e)
	return e, monitor, mem
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestGetStatusBeforeFirstCycle(t *testing.T) {
	e, _, _ := newTestEnv(t, &stubAdapter{obs: &models.Observation{Symbol: "FLWS", Price: 5.50}})

	resp := decodeResponse(t, doGet(e, "/api/status"))
	if resp.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any cycle", resp.Status)
	}
}

func TestGetStatusReturnsLatest(t *testing.T) {
	e, monitor, _ := newTestEnv(t, &stubAdapter{obs: &models.Observation{Symbol: "FLWS", Price: 5.50, Volume: 800000}})
	monitor.RunCycle(context.Background())

	resp := decodeResponse(t, doGet(e, "/api/status"))
	if resp.Status != http.StatusOK {
		t.Fatalf("status = %d", resp.Status)
	}
	report, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T", resp.Data)
	}
	if report["price"] != 5.50 {
		t.Errorf("price = %v", report["price"])
	}
	if report["ok"] != true {
		t.Errorf("ok = %v", report["ok"])
	}
}

func TestGetCyclesLimit(t *testing.T) {
	e, monitor, _ := newTestEnv(t, &stubAdapter{obs: &models.Observation{Symbol: "FLWS", Price: 5.10}})
	for i := 0; i < 5; i++ {
		monitor.RunCycle(context.Background())
	}

	resp := decodeResponse(t, doGet(e, "/api/cycles?limit=3"))
	if resp.Status != http.StatusOK {
		t.Fatalf("status = %d", resp.Status)
	}
	reports, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data type = %T", resp.Data)
	}
	if len(reports) != 3 {
		t.Errorf("reports = %d, want 3", len(reports))
	}
}

func TestGetCyclesRejectsBadLimit(t *testing.T) {
	e, _, _ := newTestEnv(t, &stubAdapter{obs: &models.Observation{Symbol: "FLWS"}})

	for _, path := range []string{"/api/cycles?limit=-1", "/api/cycles?limit=1000"} {
		resp := decodeResponse(t, doGet(e, path))
		if resp.Status != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, resp.Status)
		}
	}
}

func TestGetQuoteCachesObservation(t *testing.T) {
	adapter := &stubAdapter{obs: &models.Observation{Symbol: "FLWS", Price: 5.50, Volume: 800000}}
	e, _, _ := newTestEnv(t, adapter)

	first := decodeResponse(t, doGet(e, "/api/quote"))
	if first.Status != http.StatusOK {
		t.Fatalf("status = %d", first.Status)
	}
	second := decodeResponse(t, doGet(e, "/api/quote"))
	if second.Status != http.StatusOK {
		t.Fatalf("status = %d", second.Status)
	}
	if adapter.calls != 1 {
		t.Errorf("adapter called %d times, want 1 (second read served from cache)", adapter.calls)
	}
}

func TestGetQuoteAllSourcesDown(t *testing.T) {
	adapter := &stubAdapter{err: &models.AdapterError{Adapter: "stub", Reason: "timeout"}}
	e, _, _ := newTestEnv(t, adapter)

	resp := decodeResponse(t, doGet(e, "/api/quote"))
	if resp.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when every source failed", resp.Status)
	}
}
