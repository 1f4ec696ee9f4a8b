// Package simulator generates synthetic siting instances for demos and load
// tests.
package simulator

import (
	"fmt"
	"math/rand"

	"github.com/aridgrid/solsite/core/model"
)

// InstanceConfig holds parameters for synthetic instance generation.
type InstanceConfig struct {
	Candidates int
	Nodes      int
	// AreaKm is the side length of the square study area.
	AreaKm float64
	Seed   int64
}

// SetDefaults applies sane defaults.
func (c *InstanceConfig) SetDefaults() {
	if c.Candidates == 0 {
		c.Candidates = 50
	}
	if c.Nodes == 0 {
		c.Nodes = c.Candidates
	}
	if c.AreaKm == 0 {
		c.AreaKm = 200
	}
}

// Generate creates a seeded random instance: candidates scattered over the
// study area with demand, score and capex columns in realistic ranges, and
// demand nodes with traffic weights. The same seed reproduces the same
// instance.
func Generate(cfg InstanceConfig) ([]model.Candidate, []model.DemandNode) {
	cfg.SetDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	areaM := cfg.AreaKm * 1000

	cands := make([]model.Candidate, cfg.Candidates)
	for i := range cands {
		cands[i] = model.Candidate{
			ID:            i,
			X:             rng.Float64() * areaM,
			Y:             rng.Float64() * areaM,
			PredDailyKWh:  10 + rng.Float64()*490, // reference range 10..500 kWh/day
			EquityScore:   rng.Float64(),
			SafetyPenalty: rng.Float64() * 0.3,
			GridPenalty:   rng.Float64(),
			SiteCapexUSD:  200000 + rng.Float64()*100000,
		}
	}
	nodes := make([]model.DemandNode, cfg.Nodes)
	for j := range nodes {
		nodes[j] = model.DemandNode{
			ID:     j,
			X:      rng.Float64() * areaM,
			Y:      rng.Float64() * areaM,
			Weight: 1 + rng.Float64()*999,
		}
	}
	return cands, nodes
}

// Describe returns a one-line summary of an instance configuration.
func Describe(cfg InstanceConfig) string {
	cfg.SetDefaults()
	return fmt.Sprintf("%d candidates, %d demand nodes over %.0fx%.0f km (seed %d)",
		cfg.Candidates, cfg.Nodes, cfg.AreaKm, cfg.AreaKm, cfg.Seed)
}
