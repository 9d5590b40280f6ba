package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of a planning request
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeTimeout = "timeout"
	OutcomeBusy    = "busy"
)

// Recorder records planning metrics in Prometheus
type Recorder struct {
	requests   *prometheus.CounterVec
	duration   prometheus.Histogram
	candidates prometheus.Histogram
	ranked     prometheus.Histogram
}

// NewRecorder registers the planning metrics on reg.
// A nil registerer defaults to the global Prometheus registerer.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_requests_total",
			Help: "Planning requests by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_duration_seconds",
			Help:    "Time spent generating, filtering and ranking plans",
			Buckets: prometheus.DefBuckets,
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_candidate_plans",
			Help:    "Feasible plans generated before the optimality filter",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		ranked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_ranked_plans",
			Help:    "Plans left after the optimality filter",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	var err error
	if r.requests, err = register(reg, r.requests); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	if r.candidates, err = register(reg, r.candidates); err != nil {
		return nil, err
	}
	if r.ranked, err = register(reg, r.ranked); err != nil {
		return nil, err
	}
	return r, nil
}

// register returns the already registered collector when an identical one exists
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObservePlanning records one completed planning run
func (r *Recorder) ObservePlanning(elapsed time.Duration, candidates, ranked int) {
	r.duration.Observe(elapsed.Seconds())
	r.candidates.Observe(float64(candidates))
	r.ranked.Observe(float64(ranked))
	if ranked == 0 {
		r.requests.WithLabelValues(OutcomeEmpty).Inc()
		return
	}
	r.requests.WithLabelValues(OutcomeOK).Inc()
}

// ObserveFailure counts a request that produced no ranking
func (r *Recorder) ObserveFailure(outcome string) {
	r.requests.WithLabelValues(outcome).Inc()
}
