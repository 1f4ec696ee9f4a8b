package solver

import (
	"errors"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpTol is the pivot tolerance passed to the simplex algorithm.
const lpTol = 1e-7

// singularEps relaxes every row on the retry after a singular basis. Small
// enough that the clamped solution stays within the integer tolerance.
const singularEps = 1e-9

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
)

// errSimplexPanic marks a recovered panic from gonum's phase 1, which panics
// on some infeasible systems instead of returning ErrInfeasible.
var errSimplexPanic = errors.New("simplex phase 1 panic")

// solveRelaxation solves the LP relaxation of m under the given bound arrays.
// Branching tightens bounds relative to the model's own, so the arrays are
// passed explicitly. Variables with equal bounds are substituted out before
// the conversion: branching produces many of them and their degenerate
// columns break gonum's simplex. The remaining problem is converted to
// standard form (one slack per row, bounds as rows) and handed to lp.Simplex.
func solveRelaxation(m *Model, lower, upper []float64) (float64, []float64, relaxStatus, error) {
	n := m.NumVars()

	col := make([]int, n)
	var free []int
	for i := 0; i < n; i++ {
		switch {
		case upper[i] < lower[i]:
			return 0, nil, relaxInfeasible, nil
		case upper[i] == lower[i]:
			col[i] = -1
		default:
			col[i] = len(free)
			free = append(free, i)
		}
	}

	type stdRow struct {
		terms []Term
		rhs   float64
	}
	rows := make([]stdRow, 0, m.NumRows()+2*len(free))
	for r := 0; r < m.NumRows(); r++ {
		rhs := m.rows[r].rhs
		var terms []Term
		for _, t := range m.rows[r].terms {
			if col[t.Var] < 0 {
				rhs -= t.Coef * lower[t.Var]
			} else {
				terms = append(terms, Term{Var: Var(col[t.Var]), Coef: t.Coef})
			}
		}
		if len(terms) == 0 {
			if rhs < -lpTol {
				return 0, nil, relaxInfeasible, nil
			}
			continue
		}
		rows = append(rows, stdRow{terms: terms, rhs: rhs})
	}
	for j, i := range free {
		if !math.IsInf(upper[i], 1) {
			rows = append(rows, stdRow{terms: []Term{{Var: Var(j), Coef: 1}}, rhs: upper[i]})
		}
		if lower[i] > 0 {
			rows = append(rows, stdRow{terms: []Term{{Var: Var(j), Coef: -1}}, rhs: -lower[i]})
		}
	}

	expand := func(freeVals []float64) []float64 {
		x := make([]float64, n)
		for i := 0; i < n; i++ {
			if col[i] < 0 {
				x[i] = lower[i]
				continue
			}
			v := freeVals[col[i]]
			// Clamp simplex noise back into the bounds.
			if v < lower[i] {
				v = lower[i]
			}
			if !math.IsInf(upper[i], 1) && v > upper[i] {
				v = upper[i]
			}
			x[i] = v
		}
		return x
	}

	if len(free) == 0 {
		// Everything fixed; the rows were checked above.
		x := expand(nil)
		return m.ObjValue(x), x, relaxOptimal, nil
	}
	if len(rows) == 0 {
		// Unconstrained: each free variable sits at whichever bound
		// improves the objective.
		vals := make([]float64, len(free))
		for j, i := range free {
			if m.obj[i] > 0 {
				if math.IsInf(upper[i], 1) {
					return 0, nil, relaxUnbounded, nil
				}
				vals[j] = upper[i]
			} else {
				vals[j] = lower[i]
			}
		}
		x := expand(vals)
		return m.ObjValue(x), x, relaxOptimal, nil
	}

	nTot := len(free) + len(rows)
	c := make([]float64, nTot)
	for j, i := range free {
		c[j] = -m.obj[i] // simplex minimizes
	}
	a := mat.NewDense(len(rows), nTot, nil)
	b := make([]float64, len(rows))
	for r, rw := range rows {
		sign := 1.0
		// Equality rows may be scaled freely; keep rhs non-negative for
		// the phase-1 start.
		if rw.rhs < 0 {
			sign = -1
		}
		for _, t := range rw.terms {
			a.Set(r, int(t.Var), sign*t.Coef)
		}
		a.Set(r, len(free)+r, sign)
		b[r] = sign * rw.rhs
	}

	sol, err := runSimplex(c, a, b)
	if err != nil && err != lp.ErrInfeasible && err != lp.ErrUnbounded {
		// A singular basis here is degeneracy, not an unsolvable model.
		// Relaxing every row by a vanishing epsilon breaks the ties; the
		// enlarged region keeps the objective a valid bound and the
		// clamped point lands within the integer tolerance.
		bp := make([]float64, len(b))
		for r := range b {
			bp[r] = b[r] + singularEps*(1+math.Abs(b[r]))
		}
		sol, err = runSimplex(c, a, bp)
	}
	switch {
	case err == nil:
	case err == lp.ErrInfeasible:
		return 0, nil, relaxInfeasible, nil
	case err == lp.ErrUnbounded:
		return 0, nil, relaxUnbounded, nil
	case err == errSimplexPanic || strings.Contains(err.Error(), "singular"):
		// Phase 1 found no usable basis even on the relaxed retry: the
		// constraint system has no feasible point.
		return 0, nil, relaxInfeasible, nil
	default:
		return 0, nil, relaxOptimal, err
	}

	x := expand(sol[:len(free)])
	return m.ObjValue(x), x, relaxOptimal, nil
}

func runSimplex(c []float64, a *mat.Dense, b []float64) (sol []float64, err error) {
	defer func() {
		if recover() != nil {
			sol, err = nil, errSimplexPanic
		}
	}()
	_, sol, err = lp.Simplex(c, a, b, lpTol, nil)
	return sol, err
}
