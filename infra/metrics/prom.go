package metrics

import (
	coremetrics "github.com/aridgrid/solsite/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records solve events in Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	objective prometheus.Gauge
	gap       prometheus.Gauge
	sites     prometheus.Gauge
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_solve_runs_total",
		Help: "Total number of optimization runs",
	}, []string{"backend", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "siting_solve_duration_seconds",
		Help:    "Wall-clock solve time per run",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"backend", "status"})
	objective := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_solve_objective",
		Help: "Objective value of the last run",
	})
	gap := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_solve_gap",
		Help: "Relative MIP gap of the last run",
	})
	sites := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_sites_opened",
		Help: "Number of sites opened by the last run",
	})

	collectors := []prometheus.Collector{runs, duration, objective, gap, sites}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				runs = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				duration = are.ExistingCollector.(*prometheus.HistogramVec)
			case 2:
				objective = are.ExistingCollector.(prometheus.Gauge)
			case 3:
				gap = are.ExistingCollector.(prometheus.Gauge)
			case 4:
				sites = are.ExistingCollector.(prometheus.Gauge)
			}
		}
	}

	return &PromSink{runs: runs, duration: duration, objective: objective, gap: gap, sites: sites}, nil
}

// RecordSolve updates the run counters and gauges.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.runs.WithLabelValues(ev.Backend, ev.Status).Inc()
	s.duration.WithLabelValues(ev.Backend, ev.Status).Observe(ev.Duration.Seconds())
	s.objective.Set(ev.Objective)
	s.gap.Set(ev.Gap)
	s.sites.Set(float64(ev.SitesOpened))
	return nil
}
