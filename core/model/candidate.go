package model

import "fmt"

// Candidate represents a potential solar DCFC station location. Attributes are
// produced by the upstream feature pipeline and are read-only during an
// optimization run.
type Candidate struct {
	ID int `json:"cand_id"`
	// X and Y are projected coordinates in meters.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// PredDailyKWh is the predicted daily energy demand at the site.
	PredDailyKWh float64 `json:"pred_daily_kwh"`
	// EquityScore is a composite score roughly in [0,1].
	EquityScore float64 `json:"equity_score"`
	// SafetyPenalty and GridPenalty are non-negative penalty scores.
	SafetyPenalty float64 `json:"safety_penalty"`
	GridPenalty   float64 `json:"grid_penalty"`
	// SiteCapexUSD is the base capital cost of the site (civil work,
	// interconnect) excluding chargers, PV and storage.
	SiteCapexUSD float64 `json:"site_capex_usd"`
}

// Validate checks that the candidate attributes are sound.
func (c Candidate) Validate() error {
	if c.SafetyPenalty < 0 || c.GridPenalty < 0 {
		return fmt.Errorf("candidate %d: penalty scores must be non-negative", c.ID)
	}
	if c.SiteCapexUSD < 0 {
		return fmt.Errorf("candidate %d: site capex must be non-negative", c.ID)
	}
	return nil
}

// DemandNode is a point of aggregated population or traffic demand. In the
// reference configuration demand nodes coincide with candidates, but the two
// index sets are kept independent.
type DemandNode struct {
	ID int     `json:"node_id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	// Weight is the population/traffic weight of the node.
	Weight float64 `json:"pop_weight"`
}
