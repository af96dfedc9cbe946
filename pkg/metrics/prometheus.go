package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	cyclesTotal     *prometheus.CounterVec
	adapterFailures *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	deliveries      *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flwsmon_cycles_total",
				Help: "Observation-and-alert cycles by result",
			},
			[]string{"result"},
		),
		adapterFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flwsmon_adapter_failures_total",
				Help: "Failed fetch attempts by adapter and reason",
			},
			[]string{"adapter", "reason"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flwsmon_last_price",
				Help: "Last observed price for the monitored symbol",
			},
			[]string{"symbol"},
		),
		deliveries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flwsmon_deliveries_total",
				Help: "Alert delivery attempts by channel and result",
			},
			[]string{"channel", "result"},
		),
		cycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flwsmon_cycle_duration_seconds",
				Help:    "Duration of one full cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordCycle records one finished cycle.
func (r *Recorder) RecordCycle(result string, seconds float64) {
	r.cyclesTotal.WithLabelValues(result).Inc()
	r.cycleDuration.Observe(seconds)
}

// RecordAdapterFailure records a failed fetch attempt.
func (r *Recorder) RecordAdapterFailure(adapter, reason string) {
	r.adapterFailures.WithLabelValues(adapter, reason).Inc()
}

// RecordLastPrice records the last observed price.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordDelivery records one delivery attempt.
func (r *Recorder) RecordDelivery(channel, result string) {
	r.deliveries.WithLabelValues(channel, result).Inc()
}
