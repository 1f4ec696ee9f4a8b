package siting

import (
	"errors"
	"testing"

	"github.com/aridgrid/solsite/core/model"
)

func testParams() Params {
	return Params{
		PortPowerKW:   150,
		PortsMin:      2,
		PortsMax:      8,
		PVKwMin:       50,
		PVKwMax:       500,
		StorageKWhMax: 1000,
		MaxSites:      3,
		BudgetUSD:     1e9,
		MinSpacingKm:  50,
		MaxDetourM:    5000,
		Weights:       Weights{Util: 1, Equity: 10, SafetyPenalty: 5, GridPenalty: 5, NPCCost: 1},
	}
}

func testRates() CostRates {
	r := CostRates{}
	r.SetDefaults()
	return r
}

// threeCandidates places candidates far apart with coincident demand nodes.
func threeCandidates() ([]model.Candidate, []model.DemandNode) {
	coords := [][2]float64{{0, 0}, {100000, 0}, {0, 100000}}
	cands := make([]model.Candidate, 3)
	nodes := make([]model.DemandNode, 3)
	for i, c := range coords {
		cands[i] = model.Candidate{
			ID: i, X: c[0], Y: c[1],
			PredDailyKWh: 200 + float64(i)*50,
			EquityScore:  0.5, SafetyPenalty: 0.1, GridPenalty: 0.2,
			SiteCapexUSD: 250000,
		}
		nodes[i] = model.DemandNode{ID: i, X: c[0], Y: c[1], Weight: 1}
	}
	return cands, nodes
}

func TestBuild_Counts(t *testing.T) {
	cands, nodes := threeCandidates()
	in := Inputs{Candidates: cands, Nodes: nodes, DistKm: DistanceMatrixKm(cands, nodes), Rates: testRates()}
	bm, err := Build(in, testParams())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// 4 site variables plus 3x3 assignment variables.
	if got := bm.Model.NumVars(); got != 3*4+9 {
		t.Fatalf("vars = %d, want %d", got, 3*4+9)
	}
	// Only the diagonal pairs are within detour range: 3 assign-open rows,
	// 3 coverage rows, 15 linking rows, budget, site count. No spacing
	// pairs at 100 km apart.
	if got := bm.Model.NumRows(); got != 3+3+15+2 {
		t.Fatalf("rows = %d, want %d", got, 3+3+15+2)
	}
	if got := bm.Model.NumIntegers(); got != 6 {
		t.Fatalf("integer vars = %d, want 6", got)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	cands, nodes := threeCandidates()
	in := Inputs{Candidates: cands, Nodes: nodes, DistKm: DistanceMatrixKm(cands, nodes), Rates: testRates()}
	a, err := Build(in, testParams())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := Build(in, testParams())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if a.Model.NumVars() != b.Model.NumVars() || a.Model.NumRows() != b.Model.NumRows() {
		t.Fatalf("structurally different models: %d/%d vs %d/%d",
			a.Model.NumVars(), a.Model.NumRows(), b.Model.NumVars(), b.Model.NumRows())
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	cands, nodes := threeCandidates()
	dist := DistanceMatrixKm(cands, nodes)

	_, err := Build(Inputs{Candidates: cands, Nodes: nodes, DistKm: dist[:2], Rates: testRates()}, testParams())
	var dimErr *DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}

	short := DistanceMatrixKm(cands, nodes)
	short[1] = short[1][:1]
	_, err = Build(Inputs{Candidates: cands, Nodes: nodes, DistKm: short, Rates: testRates()}, testParams())
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError for ragged row, got %v", err)
	}
}

func TestBuild_ConfigErrors(t *testing.T) {
	cands, nodes := threeCandidates()
	in := Inputs{Candidates: cands, Nodes: nodes, DistKm: DistanceMatrixKm(cands, nodes), Rates: testRates()}

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"missing ports_min", func(p *Params) { p.PortsMin = 0 }},
		{"ports_max below min", func(p *Params) { p.PortsMax = 1 }},
		{"missing port_power", func(p *Params) { p.PortPowerKW = 0 }},
		{"negative budget", func(p *Params) { p.BudgetUSD = -1 }},
		{"missing detour", func(p *Params) { p.MaxDetourM = 0 }},
		{"pv max below min", func(p *Params) { p.PVKwMax = 10 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := testParams()
			c.mutate(&p)
			_, err := Build(in, p)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestClosePairs(t *testing.T) {
	cands := []model.Candidate{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 10000, Y: 0},
		{ID: 2, X: 200000, Y: 0},
	}
	pairs := closePairs(cands, 50)
	if len(pairs) != 1 || pairs[0].i != 0 || pairs[0].k != 1 {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
	if got := closePairs(cands, 5); len(got) != 0 {
		t.Fatalf("expected no pairs below 5 km, got %+v", got)
	}
}

func TestDistanceMatrixKm(t *testing.T) {
	cands := []model.Candidate{{X: 0, Y: 0}}
	nodes := []model.DemandNode{{X: 3000, Y: 4000}}
	dist := DistanceMatrixKm(cands, nodes)
	if dist[0][0] != 5 {
		t.Fatalf("distance = %g km, want 5", dist[0][0])
	}
}
