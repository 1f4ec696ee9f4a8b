package siting

import (
	"math"

	"github.com/aridgrid/solsite/core/model"
	"github.com/aridgrid/solsite/core/solver"
)

// openThreshold accounts for floating-point solver tolerance when reading the
// binary open variables.
const openThreshold = 0.5

// Extract produces one row per opened candidate from the solved model. The
// linking constraints already guarantee ports/PV/storage bounds for opened
// sites, so no validation happens here beyond the open threshold.
func Extract(bm *BuiltModel, res solver.Result) []model.SiteSelection {
	if !res.HasSolution() {
		return nil
	}
	var out []model.SiteSelection
	for i, c := range bm.Candidates {
		if res.Values[bm.Open[i]] < openThreshold {
			continue
		}
		out = append(out, model.SiteSelection{
			Candidate:  c,
			Ports:      int(math.Round(res.Values[bm.Ports[i]])),
			PVKw:       clampNonNeg(res.Values[bm.PVKw[i]]),
			StorageKWh: clampNonNeg(res.Values[bm.StorageKWh[i]]),
		})
	}
	return out
}

func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
