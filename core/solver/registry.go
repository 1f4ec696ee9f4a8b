package solver

import "fmt"

// Backend solves a built model under its native option map.
type Backend interface {
	Solve(m *Model, options map[string]float64) (Result, error)
}

// Built-in backend names.
const (
	// BackendBranchAndBound is the exact branch-and-bound solver.
	BackendBranchAndBound = "bnb"
	// BackendDive is the LP-diving heuristic. It returns feasible
	// solutions quickly but proves no optimality.
	BackendDive = "dive"
)

var registry = map[string]func() Backend{
	BackendBranchAndBound: func() Backend { return &branchAndBound{} },
	BackendDive:           func() Backend { return &dive{} },
}

// Register adds a backend constructor under the given name, replacing any
// existing registration.
func Register(name string, f func() Backend) {
	registry[name] = f
}

// New returns a fresh backend instance for the given name.
func New(name string) (Backend, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver backend %q", name)
	}
	return f(), nil
}
