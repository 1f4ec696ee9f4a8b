package solver

import (
	"fmt"
	"time"
)

// Config selects a backend and the two generic solve controls exposed to
// callers. Backends name their native options differently; MapOptions
// translates.
type Config struct {
	Name string `json:"name"`
	// TimeLimitS caps the wall-clock solve time in seconds. Zero selects
	// the default; a negative value removes the limit.
	TimeLimitS float64 `json:"time_limit_s"`
	MIPGap     float64 `json:"mip_gap"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = BackendBranchAndBound
	}
	if c.TimeLimitS == 0 {
		c.TimeLimitS = 600
	}
	if c.MIPGap == 0 {
		c.MIPGap = 0.01
	}
}

// Validate checks the solver selection.
func (c Config) Validate() error {
	if _, ok := backendOptionKeys[c.Name]; !ok {
		return fmt.Errorf("unknown solver backend %q", c.Name)
	}
	if c.MIPGap < 0 {
		return fmt.Errorf("mip_gap must be non-negative")
	}
	return nil
}

// TimeLimit returns the wall-clock limit as a duration; zero means no limit.
func (c Config) TimeLimit() time.Duration {
	if c.TimeLimitS <= 0 {
		return 0
	}
	return time.Duration(c.TimeLimitS * float64(time.Second))
}

// optionKeys holds a backend's native names for the two generic controls.
type optionKeys struct {
	timeLimit string
	mipGap    string
}

// backendOptionKeys is the strategy table translating the generic
// time-limit/gap knobs into each backend's native option names. New backends
// register here rather than adding conditionals at call sites.
var backendOptionKeys = map[string]optionKeys{
	BackendBranchAndBound: {timeLimit: "time_limit", mipGap: "mip_rel_gap"},
	BackendDive:           {timeLimit: "seconds", mipGap: "ratio_gap"},
}

// MapOptions renders the generic controls of cfg into the native option map of
// its backend.
func MapOptions(cfg Config) (map[string]float64, error) {
	keys, ok := backendOptionKeys[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown solver backend %q", cfg.Name)
	}
	return map[string]float64{
		keys.timeLimit: cfg.TimeLimitS,
		keys.mipGap:    cfg.MIPGap,
	}, nil
}
