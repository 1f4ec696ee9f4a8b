package solver

import "time"

// Status is the termination status reported by a backend.
type Status int

const (
	// StatusOptimal means an incumbent was proved optimal within the
	// requested gap tolerance.
	StatusOptimal Status = iota
	// StatusFeasible means an incumbent exists but the gap was not closed
	// within the time limit.
	StatusFeasible
	// StatusInfeasible means no point satisfies all constraints.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusNoSolution means the backend terminated without a usable
	// solution or recognized status.
	StatusNoSolution
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "no_solution"
	}
}

// Result is the raw outcome of a backend solve.
type Result struct {
	Status    Status
	Objective float64
	// Bound is the best known objective bound. For a proved optimum it
	// equals Objective.
	Bound float64
	// Gap is the relative gap between Bound and Objective.
	Gap     float64
	Values  []float64
	Nodes   int
	Runtime time.Duration
}

// HasSolution reports whether the result carries usable variable values.
func (r Result) HasSolution() bool {
	return (r.Status == StatusOptimal || r.Status == StatusFeasible) && r.Values != nil
}
