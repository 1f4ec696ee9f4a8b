package solver

import (
	"math"
	"testing"
)

// knapsackModel is a small instance with a known optimum of 21 (items 2, 3
// and 4).
func knapsackModel() *Model {
	m := NewModel()
	values := []float64{8, 11, 6, 4}
	weights := []float64{5, 7, 4, 3}
	terms := make([]Term, len(values))
	for i, v := range values {
		x := m.AddVar(0, 1, true, "x")
		m.SetObj(x, v)
		terms[i] = Term{Var: x, Coef: weights[i]}
	}
	m.AddLe(terms, 14, "capacity")
	return m
}

func TestBranchAndBound_Knapsack(t *testing.T) {
	m := knapsackModel()
	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", res.Status)
	}
	if math.Abs(res.Objective-21) > 1e-6 {
		t.Fatalf("objective = %g, want 21", res.Objective)
	}
	if !m.Feasible(res.Values, 1e-6) {
		t.Fatalf("returned point is infeasible: %v", res.Values)
	}
}

func TestBranchAndBound_MixedInteger(t *testing.T) {
	// maximize 2x + 3y with x integer, x + 2y <= 5, y <= 3.5.
	m := NewModel()
	x := m.AddVar(0, 4, true, "x")
	y := m.AddVar(0, 3.5, false, "y")
	m.SetObj(x, 2)
	m.SetObj(y, 3)
	m.AddLe([]Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, 5, "cap")

	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", res.Status)
	}
	// x=4, y=0.5 gives 9.5; every other integral x is worse.
	if math.Abs(res.Objective-9.5) > 1e-6 {
		t.Fatalf("objective = %g, want 9.5", res.Objective)
	}
	if math.Abs(res.Values[x]-4) > 1e-6 {
		t.Fatalf("x = %g, want 4", res.Values[x])
	}
}

func TestBranchAndBound_Infeasible(t *testing.T) {
	m := NewModel()
	x := m.AddVar(0, 1, true, "x")
	// x >= 2 expressed as -x <= -2 conflicts with the bound.
	m.AddLe([]Term{{Var: x, Coef: -1}}, -2, "min")

	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusInfeasible {
		t.Fatalf("status = %s, want infeasible", res.Status)
	}
}

func TestBranchAndBound_Unbounded(t *testing.T) {
	m := NewModel()
	x := m.AddVar(0, math.Inf(1), false, "x")
	m.SetObj(x, 1)

	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusUnbounded {
		t.Fatalf("status = %s, want unbounded", res.Status)
	}
}

func TestBranchAndBound_TimeLimitKeepsIncumbent(t *testing.T) {
	m := knapsackModel()
	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 1e-9, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusFeasible {
		t.Fatalf("status = %s, want feasible", res.Status)
	}
	if !m.Feasible(res.Values, 1e-6) {
		t.Fatalf("returned point is infeasible: %v", res.Values)
	}
	if !math.IsInf(res.Bound, 1) && res.Gap < 0 {
		t.Fatalf("gap = %g, want non-negative", res.Gap)
	}
}

func TestBranchAndBound_ConflictingRows(t *testing.T) {
	// Sum of three binaries forced to be at least 4 while capped at 3.
	// gonum's phase 1 panics on this system instead of reporting it
	// infeasible; the relaxation must absorb that.
	m := NewModel()
	pos := make([]Term, 3)
	neg := make([]Term, 3)
	for i := 0; i < 3; i++ {
		x := m.AddVar(0, 1, true, "x")
		m.SetObj(x, 1)
		pos[i] = Term{Var: x, Coef: 1}
		neg[i] = Term{Var: x, Coef: -1}
	}
	m.AddLe(pos, 3, "cap")
	m.AddLe(neg, -4, "min")

	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusInfeasible {
		t.Fatalf("status = %s, want infeasible", res.Status)
	}
}

func TestBranchAndBound_FixedVariables(t *testing.T) {
	// Zero-width variables are substituted out before the simplex runs;
	// their degenerate columns must not disturb the solve.
	m := NewModel()
	fixed := m.AddVar(0, 0, false, "fixed")
	pinned := m.AddVar(2, 2, true, "pinned")
	y := m.AddVar(0, 10, true, "y")
	m.SetObj(y, 1)
	m.AddLe([]Term{{Var: fixed, Coef: 5}, {Var: pinned, Coef: 1}, {Var: y, Coef: 1}}, 7, "cap")

	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": 30, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", res.Status)
	}
	if math.Abs(res.Objective-5) > 1e-6 {
		t.Fatalf("objective = %g, want 5", res.Objective)
	}
	if res.Values[fixed] != 0 || res.Values[pinned] != 2 {
		t.Fatalf("fixed values drifted: %v", res.Values)
	}
}

func TestBranchAndBound_NegativeTimeLimitMeansUnlimited(t *testing.T) {
	m := knapsackModel()
	res, err := (&branchAndBound{}).Solve(m, map[string]float64{"time_limit": -1, "mip_rel_gap": 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", res.Status)
	}
	if math.Abs(res.Objective-21) > 1e-6 {
		t.Fatalf("objective = %g, want 21", res.Objective)
	}
}

func TestDive_Knapsack(t *testing.T) {
	m := knapsackModel()
	res, err := (&dive{}).Solve(m, map[string]float64{"seconds": 30, "ratio_gap": 0.01})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusFeasible {
		t.Fatalf("status = %s, want feasible", res.Status)
	}
	if !m.Feasible(res.Values, 1e-6) {
		t.Fatalf("returned point is infeasible: %v", res.Values)
	}
	if res.Objective < 0 {
		t.Fatalf("objective = %g, want >= 0", res.Objective)
	}
	if res.Bound < res.Objective-1e-6 {
		t.Fatalf("bound %g below objective %g", res.Bound, res.Objective)
	}
}

func TestDive_Infeasible(t *testing.T) {
	m := NewModel()
	x := m.AddVar(0, 1, true, "x")
	m.AddLe([]Term{{Var: x, Coef: -1}}, -2, "min")

	res, err := (&dive{}).Solve(m, map[string]float64{"seconds": 30})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != StatusInfeasible {
		t.Fatalf("status = %s, want infeasible", res.Status)
	}
}

func TestMapOptions(t *testing.T) {
	native, err := MapOptions(Config{Name: BackendBranchAndBound, TimeLimitS: 60, MIPGap: 0.05})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if native["time_limit"] != 60 || native["mip_rel_gap"] != 0.05 {
		t.Fatalf("unexpected bnb options: %v", native)
	}

	native, err = MapOptions(Config{Name: BackendDive, TimeLimitS: 60, MIPGap: 0.05})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if native["seconds"] != 60 || native["ratio_gap"] != 0.05 {
		t.Fatalf("unexpected dive options: %v", native)
	}

	if _, err := MapOptions(Config{Name: "missing"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestConfigNoTimeLimit(t *testing.T) {
	cfg := Config{Name: BackendBranchAndBound, TimeLimitS: -1, MIPGap: 0.01}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("negative time limit is the no-limit sentinel: %v", err)
	}
	if cfg.TimeLimit() != 0 {
		t.Fatalf("TimeLimit() = %v, want 0 for unlimited", cfg.TimeLimit())
	}
	native, err := MapOptions(cfg)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if native["time_limit"] != -1 {
		t.Fatalf("unexpected options: %v", native)
	}
}

func TestRegistry(t *testing.T) {
	if _, err := New(BackendBranchAndBound); err != nil {
		t.Fatalf("bnb backend: %v", err)
	}
	if _, err := New("missing"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	Register("custom", func() Backend { return &dive{} })
	defer delete(registry, "custom")
	if _, err := New("custom"); err != nil {
		t.Fatalf("custom backend: %v", err)
	}
}
