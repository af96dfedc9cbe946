package polygon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/util"
)

// SourceLabel tags observations produced by this adapter.
const SourceLabel = "POLYGON (Real-Time)"

// Client is the premium real-time adapter backed by the Polygon.io snapshot
// endpoint. Without an API key it reports itself unavailable and the
// fallback chain moves on.
type Client struct {
	apiKey  string
	baseURL string
	symbol  string
	http    *xhttp.Client
}

// New creates a Polygon snapshot adapter.
func New(apiKey, baseURL, symbol string, timeout time.Duration) drepo.SourceAdapter {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		symbol:  symbol,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return SourceLabel }

// snapshot mirrors /v2/snapshot/locale/us/markets/stocks/tickers/{sym}.
// Quote size/price keys are case-sensitive on purpose: "P"/"s" are bid
// price/size, "p"/"S" ask price/size.
type snapshot struct {
	Ticker struct {
		Day struct {
			V  float64 `json:"v"`
			VW float64 `json:"vw"`
			H  float64 `json:"h"`
			L  float64 `json:"l"`
		} `json:"day"`
		LastTrade struct {
			P float64 `json:"p"`
		} `json:"lastTrade"`
		LastQuote *struct {
			BidPrice float64 `json:"P"`
			AskPrice float64 `json:"p"`
			BidSize  float64 `json:"s"`
			AskSize  float64 `json:"S"`
		} `json:"lastQuote"`
		PrevDay struct {
			C float64 `json:"c"`
		} `json:"prevDay"`
		TodaysChangePerc float64 `json:"todaysChangePerc"`
	} `json:"ticker"`
}

// Fetch pulls one snapshot and normalizes it. A snapshot without a quote
// block still succeeds; the book fields stay absent.
func (c *Client) Fetch(ctx context.Context) (*models.Observation, error) {
	if c.apiKey == "" {
		return nil, models.ErrAdapterUnavailable
	}

	url := fmt.Sprintf("%s/v2/snapshot/locale/us/markets/stocks/tickers/%s", c.baseURL, c.symbol)
	var snap snapshot
	if err := c.http.GetJSON(ctx, url, map[string]string{"apiKey": c.apiKey}, &snap); err != nil {
		return nil, c.wrapErr(err)
	}

	t := snap.Ticker
	if t.LastTrade.P == 0 {
		return nil, &models.AdapterError{Adapter: SourceLabel, Reason: "missing_field", Err: fmt.Errorf("no last trade price")}
	}
	if t.PrevDay.C == 0 {
		return nil, &models.AdapterError{Adapter: SourceLabel, Reason: "missing_field", Err: fmt.Errorf("no previous close")}
	}

	price := util.Round2(t.LastTrade.P)
	obs := &models.Observation{
		Source:    SourceLabel,
		Symbol:    c.symbol,
		Price:     price,
		PrevClose: util.Round2(t.PrevDay.C),
		ChangePct: util.Round2(t.TodaysChangePerc),
		Volume:    int64(t.Day.V),
		High:      price,
		Low:       price,
	}
	if t.Day.H > 0 {
		obs.High = util.Round2(t.Day.H)
	}
	if t.Day.L > 0 {
		obs.Low = util.Round2(t.Day.L)
	}
	if t.Day.VW > 0 {
		vwap := util.Round2(t.Day.VW)
		obs.VWAP = &vwap
	}

	if q := t.LastQuote; q != nil {
		book := &models.BookDepth{
			BidSize: int64(q.BidSize),
			AskSize: int64(q.AskSize),
		}
		// Spread widens only when both sides are quoted; a one-sided book
		// reads as 0, not a failure.
		if q.BidPrice > 0 && q.AskPrice > 0 {
			book.Spread = util.Round1((q.AskPrice - q.BidPrice) * 100)
		}
		if total := book.BidSize + book.AskSize; total > 0 {
			book.Imbalance = util.Round2(float64(book.BidSize-book.AskSize) / float64(total))
		}
		obs.Book = book
	}

	return obs, nil
}

func (c *Client) wrapErr(err error) *models.AdapterError {
	reason := "malformed"
	var statusErr *xhttp.StatusError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		reason = "timeout"
	case errors.As(err, &statusErr):
		reason = "status"
	}
	return &models.AdapterError{Adapter: SourceLabel, Reason: reason, Err: err}
}
