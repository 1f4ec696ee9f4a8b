package solver

import "fmt"

// InfeasibleError indicates that no configuration satisfies all hard
// constraints simultaneously. Diagnostic names the most likely offending
// parameters; the caller is expected to relax and resubmit.
type InfeasibleError struct {
	Diagnostic string
}

func (e *InfeasibleError) Error() string {
	return "model infeasible: " + e.Diagnostic
}

// UnboundedError indicates an unbounded objective direction.
type UnboundedError struct {
	Detail string
}

func (e *UnboundedError) Error() string {
	return "model unbounded: " + e.Detail
}

// NoSolutionError indicates the backend terminated without a usable solution
// or a recognized termination status.
type NoSolutionError struct {
	Backend string
	Status  Status
	Err     error
}

func (e *NoSolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solver %s failed with status %s: %v", e.Backend, e.Status, e.Err)
	}
	return fmt.Sprintf("solver %s terminated with status %s and no solution", e.Backend, e.Status)
}

func (e *NoSolutionError) Unwrap() error { return e.Err }
