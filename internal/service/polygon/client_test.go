package polygon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, "FLWS", 2*time.Second).(*Client), srv
}

const fullSnapshot = `{
  "ticker": {
    "day": {"v": 800000, "vw": 5.41, "h": 5.60, "l": 5.10},
    "lastTrade": {"p": 5.5042},
    "lastQuote": {"P": 5.49, "p": 5.52, "s": 1200, "S": 400},
    "prevDay": {"c": 5.00},
    "todaysChangePerc": 10.004
  }
}`

func TestFetchNormalizesSnapshot(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing apiKey query param")
		}
		w.Write([]byte(fullSnapshot))
	})

	obs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if obs.Source != SourceLabel {
		t.Errorf("source = %q", obs.Source)
	}
	if obs.Price != 5.50 || obs.PrevClose != 5.00 || obs.ChangePct != 10.00 {
		t.Errorf("price normalization off: %+v", obs)
	}
	if obs.Volume != 800000 || obs.High != 5.60 || obs.Low != 5.10 {
		t.Errorf("day fields off: %+v", obs)
	}
	if obs.VWAP == nil || *obs.VWAP != 5.41 {
		t.Errorf("vwap = %v", obs.VWAP)
	}
	if obs.Book == nil {
		t.Fatalf("expected book depth")
	}
	// (5.52-5.49)*100 = 3.0 cents, 1dp
	if obs.Book.Spread != 3.0 {
		t.Errorf("spread = %v", obs.Book.Spread)
	}
	// (1200-400)/1600 = 0.5
	if obs.Book.Imbalance != 0.5 {
		t.Errorf("imbalance = %v", obs.Book.Imbalance)
	}
	if obs.Delayed {
		t.Errorf("premium feed must not be delayed")
	}
}

func TestFetchWithoutQuoteBlockSucceeds(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker": {"day": {"v": 1000}, "lastTrade": {"p": 5.0}, "prevDay": {"c": 4.0}, "todaysChangePerc": 25.0}}`))
	})

	obs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if obs.Book != nil {
		t.Errorf("book must be absent, got %+v", obs.Book)
	}
	if obs.High != 5.0 || obs.Low != 5.0 {
		t.Errorf("high/low must default to price: %+v", obs)
	}
}

func TestFetchZeroSizesImbalanceZero(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker": {"lastTrade": {"p": 5.0}, "lastQuote": {"P": 0, "p": 0, "s": 0, "S": 0}, "prevDay": {"c": 4.0}}}`))
	})

	obs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if obs.Book == nil {
		t.Fatalf("expected book depth")
	}
	if obs.Book.Imbalance != 0 || obs.Book.Spread != 0 {
		t.Errorf("zero-size book must read 0/0, got %+v", obs.Book)
	}
}

func TestFetchWithoutKeyIsUnavailable(t *testing.T) {
	c := New("", "http://unused", "FLWS", time.Second).(*Client)
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, models.ErrAdapterUnavailable) {
		t.Fatalf("expected ErrAdapterUnavailable, got %v", err)
	}
}

func TestFetchClassifiesUpstreamStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := c.Fetch(context.Background())
	var aerr *models.AdapterError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if aerr.Reason != "status" {
		t.Errorf("reason = %q", aerr.Reason)
	}
}

func TestFetchClassifiesMalformedPayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker": not-json`))
	})

	_, err := c.Fetch(context.Background())
	var aerr *models.AdapterError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if aerr.Reason != "malformed" {
		t.Errorf("reason = %q", aerr.Reason)
	}
}

func TestFetchMissingPriceIsFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker": {"prevDay": {"c": 4.0}}}`))
	})

	_, err := c.Fetch(context.Background())
	var aerr *models.AdapterError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if aerr.Reason != "missing_field" {
		t.Errorf("reason = %q", aerr.Reason)
	}
}
