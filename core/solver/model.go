package solver

import (
	"fmt"
	"math"
)

// Var identifies a decision variable within a Model.
type Var int

// Term is a single coefficient of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

type varDef struct {
	lower   float64
	upper   float64
	integer bool
	name    string
}

type row struct {
	terms []Term
	rhs   float64
	name  string
}

// Model is a mixed-integer linear program in maximization form: bounded
// non-negative variables and a set of <= rows. It carries no solver state;
// backends read it and return variable values in a Result.
type Model struct {
	vars []varDef
	obj  []float64
	rows []row
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// AddVar adds a variable with the given bounds. Lower bounds must be
// non-negative; use a row to express a conditional minimum. Upper may be
// math.Inf(1) for an unbounded variable.
func (m *Model) AddVar(lower, upper float64, integer bool, name string) Var {
	if lower < 0 {
		panic(fmt.Sprintf("solver: variable %s has negative lower bound %g", name, lower))
	}
	m.vars = append(m.vars, varDef{lower: lower, upper: upper, integer: integer, name: name})
	m.obj = append(m.obj, 0)
	return Var(len(m.vars) - 1)
}

// SetObj sets the objective coefficient of v. The objective is maximized.
func (m *Model) SetObj(v Var, coef float64) {
	m.obj[v] = coef
}

// AddLe adds the constraint sum(terms) <= rhs.
func (m *Model) AddLe(terms []Term, rhs float64, name string) {
	m.rows = append(m.rows, row{terms: terms, rhs: rhs, name: name})
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumRows returns the number of constraint rows.
func (m *Model) NumRows() int { return len(m.rows) }

// NumIntegers returns the number of integer-constrained variables.
func (m *Model) NumIntegers() int {
	n := 0
	for _, v := range m.vars {
		if v.integer {
			n++
		}
	}
	return n
}

// Bounds returns the lower and upper bound of v.
func (m *Model) Bounds(v Var) (float64, float64) {
	return m.vars[v].lower, m.vars[v].upper
}

// IsInteger reports whether v is integer-constrained.
func (m *Model) IsInteger(v Var) bool { return m.vars[v].integer }

// VarName returns the name of v.
func (m *Model) VarName(v Var) string { return m.vars[v].name }

// ObjCoef returns the objective coefficient of v.
func (m *Model) ObjCoef(v Var) float64 { return m.obj[v] }

// ObjValue evaluates the objective at the given point.
func (m *Model) ObjValue(x []float64) float64 {
	var sum float64
	for i, c := range m.obj {
		sum += c * x[i]
	}
	return sum
}

// RowActivity evaluates the left-hand side of row r at the given point.
func (m *Model) RowActivity(r int, x []float64) float64 {
	var sum float64
	for _, t := range m.rows[r].terms {
		sum += t.Coef * x[t.Var]
	}
	return sum
}

// Feasible reports whether x satisfies all rows and variable bounds within tol.
func (m *Model) Feasible(x []float64, tol float64) bool {
	if len(x) != len(m.vars) {
		return false
	}
	for i, v := range m.vars {
		if x[i] < v.lower-tol || x[i] > v.upper+tol {
			return false
		}
		if v.integer && math.Abs(x[i]-math.Round(x[i])) > tol {
			return false
		}
	}
	for r := range m.rows {
		if m.RowActivity(r, x) > m.rows[r].rhs+tol {
			return false
		}
	}
	return true
}

// lowerPoint returns the point with every variable at its lower bound. For the
// facility model this is the all-closed configuration.
func (m *Model) lowerPoint() []float64 {
	x := make([]float64, len(m.vars))
	for i, v := range m.vars {
		x[i] = v.lower
	}
	return x
}
