package solver

import (
	"math"
	"time"
)

// intTol is the tolerance under which a relaxation value counts as integral.
const intTol = 1e-6

// branchAndBound is the exact MILP backend: depth-first branch and bound over
// the simplex relaxation, branching on the most fractional integer variable.
// The incumbent is seeded with the all-lower-bound point whenever that point
// is feasible, so a timeout can always report a usable solution.
type branchAndBound struct{}

type bnbNode struct {
	lower []float64
	upper []float64
	// bound is the parent relaxation objective, an upper bound for the
	// subtree.
	bound float64
}

func (b *branchAndBound) Solve(m *Model, options map[string]float64) (Result, error) {
	start := time.Now()
	var deadline time.Time
	if limit := options["time_limit"]; limit > 0 {
		deadline = start.Add(time.Duration(limit * float64(time.Second)))
	}
	gapTol := options["mip_rel_gap"]

	n := m.NumVars()
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i], upper[i] = m.Bounds(Var(i))
	}

	var incumbent []float64
	incObj := math.Inf(-1)
	if x0 := m.lowerPoint(); m.Feasible(x0, intTol) {
		incumbent = x0
		incObj = m.ObjValue(x0)
	}

	res := Result{Status: StatusNoSolution, Bound: math.Inf(1)}
	stack := []bnbNode{{lower: lower, upper: upper, bound: math.Inf(1)}}
	root := true
	timedOut := false

	for len(stack) > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			timedOut = true
			break
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if incumbent != nil && nd.bound <= incObj+1e-9 {
			continue // cannot improve on the incumbent
		}
		res.Nodes++

		obj, x, st, err := solveRelaxation(m, nd.lower, nd.upper)
		if err != nil {
			res.Runtime = time.Since(start)
			return res, err
		}
		switch st {
		case relaxInfeasible:
			if root {
				res.Status = StatusInfeasible
				res.Runtime = time.Since(start)
				return res, nil
			}
			root = false
			continue
		case relaxUnbounded:
			res.Status = StatusUnbounded
			res.Runtime = time.Since(start)
			return res, nil
		}
		root = false

		if incumbent != nil && obj <= incObj+1e-9 {
			continue
		}

		branchVar := mostFractional(m, x)
		if branchVar < 0 {
			cand := roundIntegral(m, x, nd.lower, nd.upper)
			if m.Feasible(cand, intTol) {
				if v := m.ObjValue(cand); incumbent == nil || v > incObj {
					incumbent = cand
					incObj = v
				}
			}
			continue
		}

		val := x[branchVar]
		down := bnbNode{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper), bound: obj}
		down.upper[branchVar] = math.Floor(val)
		up := bnbNode{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper), bound: obj}
		up.lower[branchVar] = math.Ceil(val)
		// LIFO: exploring the up branch first tends to reach good
		// incumbents sooner in selection problems.
		stack = append(stack, down, up)

		if incumbent != nil {
			bound := bestBound(stack, incObj)
			if relGap(bound, incObj) <= gapTol {
				res.Status = StatusOptimal
				res.Objective = incObj
				res.Bound = bound
				res.Gap = relGap(bound, incObj)
				res.Values = incumbent
				res.Runtime = time.Since(start)
				return res, nil
			}
		}
	}

	res.Runtime = time.Since(start)
	if incumbent == nil {
		if timedOut {
			res.Status = StatusNoSolution
			return res, nil
		}
		res.Status = StatusInfeasible
		return res, nil
	}

	res.Objective = incObj
	res.Values = incumbent
	if timedOut {
		res.Bound = bestBound(stack, incObj)
		res.Gap = relGap(res.Bound, incObj)
		res.Status = StatusFeasible
		if res.Gap <= gapTol {
			res.Status = StatusOptimal
		}
		return res, nil
	}
	// Tree exhausted: the incumbent is proved optimal.
	res.Bound = incObj
	res.Gap = 0
	res.Status = StatusOptimal
	return res, nil
}

// mostFractional returns the integer variable farthest from integrality, or -1
// when the point is integral.
func mostFractional(m *Model, x []float64) int {
	best := -1
	bestDist := intTol
	for i := range x {
		if !m.IsInteger(Var(i)) {
			continue
		}
		dist := math.Abs(x[i] - math.Round(x[i]))
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// roundIntegral snaps integer variables of x to the nearest integer within the
// node bounds.
func roundIntegral(m *Model, x, lower, upper []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for i := range out {
		if !m.IsInteger(Var(i)) {
			continue
		}
		v := math.Round(out[i])
		if v < lower[i] {
			v = lower[i]
		}
		if !math.IsInf(upper[i], 1) && v > upper[i] {
			v = upper[i]
		}
		out[i] = v
	}
	return out
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}

// bestBound is the tightest proof available: the maximum bound over the open
// nodes, or the incumbent itself when the tree is exhausted.
func bestBound(stack []bnbNode, incObj float64) float64 {
	bound := incObj
	for _, nd := range stack {
		if nd.bound > bound {
			bound = nd.bound
		}
	}
	return bound
}

func relGap(bound, obj float64) float64 {
	if math.IsInf(bound, 1) {
		return math.Inf(1)
	}
	return (bound - obj) / math.Max(1, math.Abs(obj))
}
