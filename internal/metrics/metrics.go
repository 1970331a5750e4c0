package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for upstream fetches
const (
	OutcomeSuccess       = "success"
	OutcomeUpstreamError = "upstream_error"
	OutcomeBadStatus     = "bad_status"
	OutcomeNoData        = "no_data"
)

// Prometheus holds the collectors for the trades feed
type Prometheus struct {
	Fetches       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	TradesServed  prometheus.Counter
}

// NewPrometheusMetrics builds the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewPrometheusMetrics(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tradesfeed",
				Name:      "upstream_fetches_total",
				Help:      "Upstream trade fetches by outcome.",
			}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "tradesfeed",
				Name:      "upstream_fetch_duration_seconds",
				Help:      "Latency of upstream trade fetches.",
				Buckets:   prometheus.DefBuckets,
			}),
		TradesServed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tradesfeed",
				Name:      "trades_served_total",
				Help:      "Trades returned to callers.",
			}),
	}

	if reg != nil {
		reg.MustRegister(p.Fetches, p.FetchDuration, p.TradesServed)
	}
	return p
}

// ObserveFetch records one upstream fetch
func (p *Prometheus) ObserveFetch(outcome string, elapsed time.Duration, trades int) {
	if p == nil {
		return
	}
	p.Fetches.WithLabelValues(outcome).Inc()
	p.FetchDuration.Observe(elapsed.Seconds())
	p.TradesServed.Add(float64(trades))
}
