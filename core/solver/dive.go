package solver

import (
	"math"
	"time"
)

// dive is the LP-diving heuristic backend. It repeatedly solves the
// relaxation and fixes the most fractional integer variable until the point
// is integral or the dive dead-ends, first rounding to nearest and then, if
// that pass found nothing better, rounding down. It is fast and always
// constraint-respecting, but proves no optimality: a successful dive reports
// StatusFeasible.
type dive struct{}

type divePolicy int

const (
	diveNearest divePolicy = iota
	diveFloor
)

func (d *dive) Solve(m *Model, options map[string]float64) (Result, error) {
	start := time.Now()
	var deadline time.Time
	if limit := options["seconds"]; limit > 0 {
		deadline = start.Add(time.Duration(limit * float64(time.Second)))
	}
	// ratio_gap is accepted for interface parity but a heuristic has no
	// bound to close a gap against.

	var incumbent []float64
	incObj := math.Inf(-1)
	if x0 := m.lowerPoint(); m.Feasible(x0, intTol) {
		incumbent = x0
		incObj = m.ObjValue(x0)
	}

	res := Result{Status: StatusNoSolution, Bound: math.Inf(1)}
	for _, policy := range []divePolicy{diveNearest, diveFloor} {
		x, obj, st, err := d.dive(m, policy, deadline, &res)
		if err != nil {
			res.Runtime = time.Since(start)
			return res, err
		}
		if st == relaxInfeasible && res.Nodes == 0 {
			res.Status = StatusInfeasible
			res.Runtime = time.Since(start)
			return res, nil
		}
		if st == relaxUnbounded {
			res.Status = StatusUnbounded
			res.Runtime = time.Since(start)
			return res, nil
		}
		if x != nil && (incumbent == nil || obj > incObj) {
			incumbent = x
			incObj = obj
		}
	}

	res.Runtime = time.Since(start)
	if incumbent == nil {
		return res, nil
	}
	res.Status = StatusFeasible
	res.Objective = incObj
	res.Values = incumbent
	res.Gap = relGap(res.Bound, incObj)
	return res, nil
}

// dive runs one fixing pass and returns the integral point it reached, if
// any. The root relaxation objective is recorded in res.Bound.
func (d *dive) dive(m *Model, policy divePolicy, deadline time.Time, res *Result) ([]float64, float64, relaxStatus, error) {
	n := m.NumVars()
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i], upper[i] = m.Bounds(Var(i))
	}

	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, 0, relaxOptimal, nil
		}
		obj, x, st, err := solveRelaxation(m, lower, upper)
		if err != nil || st != relaxOptimal {
			return nil, 0, st, err
		}
		if res.Nodes == 0 {
			res.Bound = obj
		}
		res.Nodes++

		v := mostFractional(m, x)
		if v < 0 {
			cand := roundIntegral(m, x, lower, upper)
			if m.Feasible(cand, intTol) {
				return cand, m.ObjValue(cand), relaxOptimal, nil
			}
			return nil, 0, relaxOptimal, nil
		}
		var fix float64
		switch policy {
		case diveFloor:
			fix = math.Floor(x[v])
		default:
			fix = math.Round(x[v])
		}
		if fix < lower[v] {
			fix = lower[v]
		}
		if !math.IsInf(upper[v], 1) && fix > upper[v] {
			fix = upper[v]
		}
		lower[v] = fix
		upper[v] = fix
	}
}
