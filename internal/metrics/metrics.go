// Package metrics exposes the solver's live counters as Prometheus
// metrics, served over an optional --metrics-addr HTTP listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder wraps the Prometheus collectors the solver pipeline updates.
// A nil *Recorder is valid: every method is a no-op on a nil receiver,
// so callers that did not configure --metrics-addr never need to guard
// each call site with a nil check.
type Recorder struct {
	attempts   prometheus.Counter
	feasible   prometheus.Counter
	bestScore  prometheus.Gauge
	phase2Secs prometheus.Gauge
}

// NewRecorder registers the collectors against reg and returns a
// Recorder backed by them. Pass prometheus.NewRegistry() for an
// isolated registry in tests, or prometheus.DefaultRegisterer to serve
// process-wide metrics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		attempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "schedule_attempts_total",
			Help: "Total number of solver attempts (Phase 1 + Phase 2 iterations).",
		}),
		feasible: factory.NewCounter(prometheus.CounterOpts{
			Name: "schedule_feasible_total",
			Help: "Total number of attempts that produced a feasible assignment.",
		}),
		bestScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_best_score",
			Help: "Score of the best feasible assignment found by the current pipeline run.",
		}),
		phase2Secs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_phase2_seconds",
			Help: "Wall-clock seconds spent in Phase 2 of the most recent pipeline run.",
		}),
	}
}

func (r *Recorder) ObserveAttempt() {
	if r == nil {
		return
	}
	r.attempts.Inc()
}

func (r *Recorder) ObserveFeasible() {
	if r == nil {
		return
	}
	r.feasible.Inc()
}

func (r *Recorder) SetBestScore(score int) {
	if r == nil {
		return
	}
	r.bestScore.Set(float64(score))
}

func (r *Recorder) SetPhase2Seconds(seconds float64) {
	if r == nil {
		return
	}
	r.phase2Secs.Set(seconds)
}
