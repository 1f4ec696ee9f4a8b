package siting

import "fmt"

// ConfigError reports a missing or invalid optimization parameter. It is
// raised before any model construction; the run is fatal, no retry.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Param, e.Reason)
}

// DimensionError reports input arrays whose shapes disagree with the candidate
// or demand-node counts.
type DimensionError struct {
	Name string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: %s has length %d, want %d", e.Name, e.Got, e.Want)
}
