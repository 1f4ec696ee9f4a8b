package siting

import (
	"github.com/aridgrid/solsite/core/solver"
)

// infeasibleDiagnostic enumerates the parameters that most commonly render
// the model infeasible, in decreasing order of likelihood.
const infeasibleDiagnostic = "typical causes: min_spacing_km too large for the candidate density, " +
	"max_detour_m too small, or budget_usd too low to open any valid configuration; " +
	"relax the offending parameter and resubmit"

// Solve runs the configured backend against a built model and interprets the
// termination status. A proved optimum and a feasible-within-time solution
// are both accepted; callers may inspect the reported gap. Failures propagate
// typed errors and are never substituted with a degraded answer.
func Solve(bm *BuiltModel, cfg solver.Config) (solver.Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return solver.Result{}, &ConfigError{Param: "solver", Reason: err.Error()}
	}
	backend, err := solver.New(cfg.Name)
	if err != nil {
		return solver.Result{}, &ConfigError{Param: "solver.name", Reason: err.Error()}
	}
	native, err := solver.MapOptions(cfg)
	if err != nil {
		return solver.Result{}, &ConfigError{Param: "solver.name", Reason: err.Error()}
	}

	res, err := backend.Solve(bm.Model, native)
	if err != nil {
		return res, &solver.NoSolutionError{Backend: cfg.Name, Status: res.Status, Err: err}
	}
	switch {
	case res.Status == solver.StatusInfeasible:
		return res, &solver.InfeasibleError{Diagnostic: infeasibleDiagnostic}
	case res.Status == solver.StatusUnbounded:
		return res, &solver.UnboundedError{Detail: "check the objective weights"}
	case res.HasSolution():
		return res, nil
	default:
		return res, &solver.NoSolutionError{Backend: cfg.Name, Status: res.Status}
	}
}
