package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	xlogger "github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

// systemClock is the production Clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall clock.
func NewSystemClock() drepo.Clock { return systemClock{} }

// Monitor runs one observation-and-alert cycle at a time: resolve, estimate
// velocity, classify, compose, deliver. Cycles share no state beyond the
// in-memory report history kept for the ops API.
type Monitor struct {
	resolver   *Resolver
	velocity   *VelocityEstimator
	classifier *Classifier
	composer   *Composer
	notifiers  []drepo.Notifier
	clock      drepo.Clock
	metrics    drepo.Metrics
	log        *xlogger.Logger

	mu       sync.RWMutex
	history  []*models.CycleReport
	histSize int
}

// NewMonitor wires the cycle pipeline. An empty notifier list means
// composed payloads are logged but not delivered (the safety switch).
func NewMonitor(
	resolver *Resolver,
	velocity *VelocityEstimator,
	classifier *Classifier,
	composer *Composer,
	notifiers []drepo.Notifier,
	clock drepo.Clock,
	metrics drepo.Metrics,
	log *xlogger.Logger,
	historySize int,
) *Monitor {
	if historySize <= 0 {
		historySize = 64
	}
	return &Monitor{
		resolver:   resolver,
		velocity:   velocity,
		classifier: classifier,
		composer:   composer,
		notifiers:  notifiers,
		clock:      clock,
		metrics:    metrics,
		log:        log,
		histSize:   historySize,
	}
}

// RunCycle executes one full cycle. It never terminates the caller's loop:
// every failure is folded into the returned report.
func (m *Monitor) RunCycle(ctx context.Context) *models.CycleReport {
	start := m.clock.Now()
	report := &models.CycleReport{At: start}

	obs, err := m.resolver.Resolve(ctx)
	if err != nil {
		report.OK = false
		if all, ok := err.(*models.AllSourcesFailedError); ok {
			for _, a := range all.Attempts {
				report.Errors = append(report.Errors, a.Error())
			}
		} else {
			report.Errors = append(report.Errors, err.Error())
		}
		m.metrics.RecordCycle("failed", time.Since(start).Seconds())
		m.log.Error("cycle aborted: no data source produced an observation",
			xlogger.Strings("attempts", report.Errors))
		m.push(report)
		return report
	}

	obs.Velocity = m.velocity.Estimate(obs, m.clock.Now())

	status := m.classifier.Classify(obs.Price)
	pressure := m.classifier.Pressure(obs)
	payload := m.composer.Compose(obs, status, pressure)

	report.OK = true
	report.Source = obs.Source
	report.Price = obs.Price
	report.ChangePct = obs.ChangePct
	report.Volume = obs.Volume
	report.Velocity = obs.Velocity
	report.Status = status.Label
	report.Pressure = pressure

	m.metrics.RecordLastPrice(obs.Symbol, obs.Price)
	m.log.Info("cycle observation",
		xlogger.String("source", obs.Source),
		xlogger.Float64("price", obs.Price),
		xlogger.Float64("change_pct", obs.ChangePct),
		xlogger.Int64("volume", obs.Volume),
		xlogger.Float64("volume_target_pct", m.composer.VolumeTargetPct(obs.Volume)),
		xlogger.String("status", status.Label),
		xlogger.String("pressure", pressure))

	if len(m.notifiers) == 0 {
		m.log.Info("delivery muted, payload not sent", xlogger.String("title", payload.Title))
	}
	for _, n := range m.notifiers {
		if err := n.Deliver(ctx, payload); err != nil {
			// One attempt per cycle; retry policy belongs to the scheduler.
			report.Errors = append(report.Errors, err.Error())
			m.metrics.RecordDelivery(n.Name(), "error")
			m.log.Error("alert delivery failed",
				xlogger.String("channel", n.Name()),
				xlogger.Error(err))
			continue
		}
		report.Delivered = append(report.Delivered, n.Name())
		m.metrics.RecordDelivery(n.Name(), "ok")
	}

	m.metrics.RecordCycle("ok", time.Since(start).Seconds())
	m.push(report)
	return report
}

// Observe resolves one observation (with velocity) without composing or
// delivering anything. Backs the on-demand quote endpoint.
func (m *Monitor) Observe(ctx context.Context) (*models.Observation, error) {
	obs, err := m.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	obs.Velocity = m.velocity.Estimate(obs, m.clock.Now())
	return obs, nil
}

// Latest returns the most recent cycle report, or nil before the first
// cycle.
func (m *Monitor) Latest() *models.CycleReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.history) == 0 {
		return nil
	}
	return m.history[len(m.history)-1]
}

// History returns up to limit reports, newest first.
func (m *Monitor) History(limit int) []*models.CycleReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*models.CycleReport, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.history[i])
	}
	return out
}

func (m *Monitor) push(r *models.CycleReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, r)
	if len(m.history) > m.histSize {
		m.history = m.history[len(m.history)-m.histSize:]
	}
}
