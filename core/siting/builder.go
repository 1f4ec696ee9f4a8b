package siting

import (
	"fmt"

	"github.com/aridgrid/solsite/core/model"
	"github.com/aridgrid/solsite/core/solver"
)

// costScale divides the cost term of the objective before weighting. Capital
// costs are in the millions of USD while the other objective terms sit in a
// roughly 0-1000 range; without this scaling the npc_cost weight a user
// configures would dominate every trade-off.
const costScale = 1e6

// Inputs bundle the arrays consumed by the Model Builder, aligned by
// candidate and demand-node index.
type Inputs struct {
	Candidates []model.Candidate
	Nodes      []model.DemandNode
	// DistKm is the I x J candidate-to-node distance matrix in km.
	DistKm [][]float64
	Rates  CostRates
}

// BuiltModel couples the constructed solver model with its variable layout so
// the extractor can read values back by candidate index.
type BuiltModel struct {
	Model      *solver.Model
	Open       []solver.Var
	Ports      []solver.Var
	PVKw       []solver.Var
	StorageKWh []solver.Var
	Assign     [][]solver.Var
	Params     Params
	Candidates []model.Candidate
}

// Build constructs the facility-location MILP. Pure construction, no side
// effects: variables, the five-term weighted objective, and the full
// constraint set. Arrays must be fully populated; null-score defaulting is
// the caller's concern.
func Build(in Inputs, p Params) (*BuiltModel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := in.Rates.Validate(); err != nil {
		return nil, err
	}
	nI := len(in.Candidates)
	nJ := len(in.Nodes)
	if nI == 0 {
		return nil, &ConfigError{Param: "candidates", Reason: "must not be empty"}
	}
	if len(in.DistKm) != nI {
		return nil, &DimensionError{Name: "dist_km rows", Got: len(in.DistKm), Want: nI}
	}
	for i := range in.DistKm {
		if len(in.DistKm[i]) != nJ {
			return nil, &DimensionError{Name: fmt.Sprintf("dist_km row %d", i), Got: len(in.DistKm[i]), Want: nJ}
		}
	}
	for _, c := range in.Candidates {
		if err := c.Validate(); err != nil {
			return nil, &ConfigError{Param: "candidates", Reason: err.Error()}
		}
	}

	m := solver.NewModel()
	bm := &BuiltModel{
		Model:      m,
		Open:       make([]solver.Var, nI),
		Ports:      make([]solver.Var, nI),
		PVKw:       make([]solver.Var, nI),
		StorageKWh: make([]solver.Var, nI),
		Assign:     make([][]solver.Var, nI),
		Params:     p,
		Candidates: in.Candidates,
	}

	maxDetourKm := p.MaxDetourM / 1000.0
	w := p.Weights

	for i, c := range in.Candidates {
		bm.Open[i] = m.AddVar(0, 1, true, fmt.Sprintf("open[%d]", i))
		bm.Ports[i] = m.AddVar(0, float64(p.PortsMax), true, fmt.Sprintf("ports[%d]", i))
		bm.PVKw[i] = m.AddVar(0, p.PVKwMax, false, fmt.Sprintf("pv_kw[%d]", i))
		bm.StorageKWh[i] = m.AddVar(0, p.StorageKWhMax, false, fmt.Sprintf("storage_kwh[%d]", i))

		// Objective: utilization and equity reward opening, safety and
		// grid conflicts penalize it, and every cost component carries
		// its scaled npc_cost weight.
		m.SetObj(bm.Open[i],
			w.Util*c.PredDailyKWh+
				w.Equity*c.EquityScore-
				w.SafetyPenalty*c.SafetyPenalty-
				w.GridPenalty*c.GridPenalty-
				w.NPCCost*c.SiteCapexUSD/costScale)
		m.SetObj(bm.Ports[i], -w.NPCCost*in.Rates.PerPort/costScale)
		m.SetObj(bm.PVKw[i], -w.NPCCost*in.Rates.PVPerKW/costScale)
		m.SetObj(bm.StorageKWh[i], -w.NPCCost*in.Rates.StoragePerKWh/costScale)
	}

	for i := range in.Candidates {
		bm.Assign[i] = make([]solver.Var, nJ)
		for j := range in.Nodes {
			if in.DistKm[i][j] <= maxDetourKm {
				// Assignable only while the site is open.
				v := m.AddVar(0, 1, false, fmt.Sprintf("assign[%d,%d]", i, j))
				m.AddLe([]solver.Term{{Var: v, Coef: 1}, {Var: bm.Open[i], Coef: -1}}, 0,
					fmt.Sprintf("assign_open[%d,%d]", i, j))
				bm.Assign[i][j] = v
			} else {
				// Out of detour range: assignment capacity fixed to zero.
				bm.Assign[i][j] = m.AddVar(0, 0, false, fmt.Sprintf("assign[%d,%d]", i, j))
			}
		}
	}

	// Soft coverage: each node served by at most one site. Deliberately <=
	// so nodes with no reachable open site stay unassigned instead of
	// making the model infeasible.
	for j := range in.Nodes {
		terms := make([]solver.Term, nI)
		for i := range in.Candidates {
			terms[i] = solver.Term{Var: bm.Assign[i][j], Coef: 1}
		}
		m.AddLe(terms, 1, fmt.Sprintf("coverage[%d]", j))
	}

	// Big-M linking through bound multiplication: closed sites carry zero
	// ports, PV and storage; open sites meet the configured minimums.
	for i := range in.Candidates {
		m.AddLe([]solver.Term{
			{Var: bm.Open[i], Coef: float64(p.PortsMin)},
			{Var: bm.Ports[i], Coef: -1},
		}, 0, fmt.Sprintf("ports_min[%d]", i))
		m.AddLe([]solver.Term{
			{Var: bm.Ports[i], Coef: 1},
			{Var: bm.Open[i], Coef: -float64(p.PortsMax)},
		}, 0, fmt.Sprintf("ports_max[%d]", i))
		m.AddLe([]solver.Term{
			{Var: bm.Open[i], Coef: p.PVKwMin},
			{Var: bm.PVKw[i], Coef: -1},
		}, 0, fmt.Sprintf("pv_min[%d]", i))
		m.AddLe([]solver.Term{
			{Var: bm.PVKw[i], Coef: 1},
			{Var: bm.Open[i], Coef: -p.PVKwMax},
		}, 0, fmt.Sprintf("pv_max[%d]", i))
		m.AddLe([]solver.Term{
			{Var: bm.StorageKWh[i], Coef: 1},
			{Var: bm.Open[i], Coef: -p.StorageKWhMax},
		}, 0, fmt.Sprintf("storage_max[%d]", i))
	}

	// Spacing exclusion over precomputed close pairs.
	for _, pr := range closePairs(in.Candidates, p.MinSpacingKm) {
		m.AddLe([]solver.Term{
			{Var: bm.Open[pr.i], Coef: 1},
			{Var: bm.Open[pr.k], Coef: 1},
		}, 1, fmt.Sprintf("spacing[%d,%d]", pr.i, pr.k))
	}

	// Budget over the full cost expression.
	cost := make([]solver.Term, 0, 4*nI)
	for i, c := range in.Candidates {
		cost = append(cost,
			solver.Term{Var: bm.Open[i], Coef: c.SiteCapexUSD},
			solver.Term{Var: bm.Ports[i], Coef: in.Rates.PerPort},
			solver.Term{Var: bm.PVKw[i], Coef: in.Rates.PVPerKW},
			solver.Term{Var: bm.StorageKWh[i], Coef: in.Rates.StoragePerKWh},
		)
	}
	m.AddLe(cost, p.BudgetUSD, "budget")

	// Site count.
	count := make([]solver.Term, nI)
	for i := range in.Candidates {
		count[i] = solver.Term{Var: bm.Open[i], Coef: 1}
	}
	m.AddLe(count, float64(p.MaxSites), "site_count")

	return bm, nil
}
