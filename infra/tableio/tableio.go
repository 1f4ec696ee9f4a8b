// Package tableio loads and writes the in-memory tables at the optimizer
// boundary as JSON files. The core operates on arrays only; this adapter owns
// the persistence concern, including the documented defaults for null scores.
package tableio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aridgrid/solsite/core/model"
)

// Default values applied to null candidate columns before the arrays reach
// the model builder. The builder itself requires fully populated inputs.
const (
	defaultEquityScore = 0.5
	defaultGridPenalty = 1.0
	defaultNodeWeight  = 1.0
)

// candidateRecord mirrors model.Candidate with nullable score columns.
type candidateRecord struct {
	ID            int      `json:"cand_id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	PredDailyKWh  *float64 `json:"pred_daily_kwh"`
	EquityScore   *float64 `json:"equity_score"`
	SafetyPenalty *float64 `json:"safety_penalty"`
	GridPenalty   *float64 `json:"grid_penalty"`
	SiteCapexUSD  float64  `json:"site_capex_usd"`
}

type nodeRecord struct {
	ID     int      `json:"node_id"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Weight *float64 `json:"pop_weight"`
}

// LoadCandidates reads a candidate table, filling null scores with the
// documented defaults.
func LoadCandidates(path string) ([]model.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	var recs []candidateRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	out := make([]model.Candidate, len(recs))
	for i, r := range recs {
		out[i] = model.Candidate{
			ID:            r.ID,
			X:             r.X,
			Y:             r.Y,
			PredDailyKWh:  orDefault(r.PredDailyKWh, 0),
			EquityScore:   orDefault(r.EquityScore, defaultEquityScore),
			SafetyPenalty: orDefault(r.SafetyPenalty, 0),
			GridPenalty:   orDefault(r.GridPenalty, defaultGridPenalty),
			SiteCapexUSD:  r.SiteCapexUSD,
		}
	}
	return out, nil
}

// LoadDemandNodes reads a demand-node table, filling null weights with 1.
func LoadDemandNodes(path string) ([]model.DemandNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demand nodes: %w", err)
	}
	var recs []nodeRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse demand nodes: %w", err)
	}
	out := make([]model.DemandNode, len(recs))
	for i, r := range recs {
		out[i] = model.DemandNode{
			ID:     r.ID,
			X:      r.X,
			Y:      r.Y,
			Weight: orDefault(r.Weight, defaultNodeWeight),
		}
	}
	return out, nil
}

// WriteCandidates persists a candidate table.
func WriteCandidates(path string, cands []model.Candidate) error {
	return writeJSON(path, cands)
}

// WriteDemandNodes persists a demand-node table.
func WriteDemandNodes(path string, nodes []model.DemandNode) error {
	return writeJSON(path, nodes)
}

// WriteSelection persists the solution table.
func WriteSelection(path string, sel []model.SiteSelection) error {
	if sel == nil {
		sel = []model.SiteSelection{}
	}
	return writeJSON(path, sel)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
