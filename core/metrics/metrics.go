// Package metrics defines the interfaces for recording optimization runs.
// Sinks like the Prometheus and InfluxDB implementations record one SolveEvent
// per run and can be combined with a MultiSink.
package metrics

import "time"

// SolveEvent captures one optimization run for observability purposes.
type SolveEvent struct {
	RunID       string
	Backend     string
	Status      string
	Objective   float64
	Bound       float64
	Gap         float64
	Nodes       int
	Candidates  int
	DemandNodes int
	SitesOpened int
	Duration    time.Duration
	Time        time.Time
}

// Sink records solve events.
type Sink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
