package yahoo

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
const SourceLabel = "YAHOO (Retail)"

// Client is the delayed retail fallback. No credential, roughly 15 minute
// latency; it never carries book depth.
type Client struct {
	baseURL string
	symbol  string
	http    *xhttp.Client
}

// New creates a Yahoo quote adapter.
func New(baseURL, symbol string, timeout time.Duration) drepo.SourceAdapter {
	return &Client{
		baseURL: baseURL,
		symbol:  symbol,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return SourceLabel }

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			RegularMarketVolume        int64   `json:"regularMarketVolume"`
			RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
			RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Fetch pulls the delayed quote and normalizes it.
func (c *Client) Fetch(ctx context.Context) (*models.Observation, error) {
	url := fmt.Sprintf("%s/v7/finance/quote", c.baseURL)
	var resp quoteResponse
	if err := c.http.GetJSON(ctx, url, map[string]string{"symbols": c.symbol}, &resp); err != nil {
		return nil, c.wrapErr(err)
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return nil, &models.AdapterError{Adapter: SourceLabel, Reason: "missing_field", Err: fmt.Errorf("empty quote result for %s", c.symbol)}
	}
	q := resp.QuoteResponse.Result[0]
	if q.RegularMarketPrice == 0 {
		return nil, &models.AdapterError{Adapter: SourceLabel, Reason: "missing_field", Err: fmt.Errorf("no market price")}
	}
	if q.RegularMarketPreviousClose == 0 {
		return nil, &models.AdapterError{Adapter: SourceLabel, Reason: "missing_field", Err: fmt.Errorf("no previous close")}
	}

	price := util.Round2(q.RegularMarketPrice)
	prevClose := util.Round2(q.RegularMarketPreviousClose)
	changePct := q.RegularMarketChangePercent
	if changePct == 0 {
		changePct = (price - prevClose) / prevClose * 100
	}

	obs := &models.Observation{
		Source:    SourceLabel,
		Symbol:    c.symbol,
		Price:     price,
		PrevClose: prevClose,
		ChangePct: util.Round2(changePct),
		Volume:    q.RegularMarketVolume,
		High:      price,
		Low:       price,
		Delayed:   true,
	}
	if q.RegularMarketDayHigh > 0 {
		obs.High = util.Round2(q.RegularMarketDayHigh)
	}
	if q.RegularMarketDayLow > 0 {
		obs.Low = util.Round2(q.RegularMarketDayLow)
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
