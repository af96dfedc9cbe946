package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/usecase"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/cache"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
	xlogger "github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

// StatusHandler exposes the monitor's state over the ops API: the latest
// cycle, recent history and an on-demand quote. It never mutates monitor
// state.
type StatusHandler struct {
	monitor  *usecase.Monitor
	cache    cache.Service
	symbol   string
	quoteTTL time.Duration
	log      *xlogger.Logger
}

// NewStatusHandler creates the ops API handler.
func NewStatusHandler(monitor *usecase.Monitor, cacheSvc cache.Service, symbol string, quoteTTL time.Duration, log *xlogger.Logger) *StatusHandler {
	return &StatusHandler{
		monitor:  monitor,
		cache:    cacheSvc,
		symbol:   symbol,
		quoteTTL: quoteTTL,
		log:      log,
	}
}

// RegisterRoutes registers the API routes.
func (h *StatusHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/status", h.GetStatus)
	g.GET("/cycles", h.GetCycles)
	g.GET("/quote", h.GetQuote)
}

// GetStatus returns the most recent cycle report.
func (h *StatusHandler) GetStatus(c echo.Context) error {
	latest := h.monitor.Latest()
	if latest == nil {
		return xhttp.NotFoundResponse(c, "no cycle has run yet")
	}
	return xhttp.SuccessResponse(c, latest)
}

// GetCyclesRequest holds query parameters for GetCycles.
type GetCyclesRequest struct {
	Limit int `query:"limit" default:"10" validate:"gte=1,lte=100"`
}

// GetCycles returns recent cycle reports, newest first.
func (h *StatusHandler) GetCycles(c echo.Context) error {
	req := new(GetCyclesRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	return xhttp.SuccessResponse(c, h.monitor.History(req.Limit))
}

// GetQuote resolves a fresh observation, fronted by a short TTL cache so
// ad-hoc reads do not hammer the upstream feeds between scheduled cycles.
func (h *StatusHandler) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()
	key := "quote:" + h.symbol

	var cached models.Observation
	if err := h.cache.Get(ctx, key, &cached); err == nil {
		return xhttp.SuccessResponse(c, &cached)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.log.Warn("quote cache read failed", xlogger.Error(err))
	}

	obs, err := h.monitor.Observe(ctx)
	if err != nil {
		var all *models.AllSourcesFailedError
		if errors.As(err, &all) {
			return xhttp.UnavailableResponse(c, err.Error())
		}
		h.log.Error("on-demand quote failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	if err := h.cache.Set(ctx, key, obs, h.quoteTTL); err != nil {
		h.log.Warn("quote cache write failed", xlogger.Error(err))
	}
	return xhttp.SuccessResponse(c, obs)
}
