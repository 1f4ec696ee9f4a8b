package siting

// Weights are the five competing objective weights. Util and equity reward
// opening sites, safety and grid penalize them, and NPCCost weighs the scaled
// total capital cost.
type Weights struct {
	Util          float64 `json:"util"`
	Equity        float64 `json:"equity"`
	SafetyPenalty float64 `json:"safety_penalty"`
	GridPenalty   float64 `json:"grid_penalty"`
	NPCCost       float64 `json:"npc_cost"`
}

// Params are the scalar knobs controlling one optimization run. They are
// invariant for the duration of the run.
type Params struct {
	PortPowerKW   float64 `json:"port_power_kw"`
	PortsMin      int     `json:"ports_min"`
	PortsMax      int     `json:"ports_max"`
	PVKwMin       float64 `json:"pv_kw_min"`
	PVKwMax       float64 `json:"pv_kw_max"`
	StorageKWhMax float64 `json:"storage_kwh_max"`
	MaxSites      int     `json:"max_sites"`
	BudgetUSD     float64 `json:"budget_usd"`
	MinSpacingKm  float64 `json:"min_spacing_km"`
	MaxDetourM    float64 `json:"max_detour_m"`
	Weights       Weights `json:"weights"`
}

// Validate checks that every required parameter is present and coherent.
func (p Params) Validate() error {
	switch {
	case p.PortPowerKW <= 0:
		return &ConfigError{Param: "port_power_kw", Reason: "must be positive"}
	case p.PortsMin <= 0:
		return &ConfigError{Param: "ports_min", Reason: "must be positive"}
	case p.PortsMax < p.PortsMin:
		return &ConfigError{Param: "ports_max", Reason: "must be >= ports_min"}
	case p.PVKwMin < 0:
		return &ConfigError{Param: "pv_kw_min", Reason: "must be non-negative"}
	case p.PVKwMax < p.PVKwMin:
		return &ConfigError{Param: "pv_kw_max", Reason: "must be >= pv_kw_min"}
	case p.StorageKWhMax < 0:
		return &ConfigError{Param: "storage_kwh_max", Reason: "must be non-negative"}
	case p.MaxSites < 0:
		return &ConfigError{Param: "max_sites", Reason: "must be non-negative"}
	case p.BudgetUSD < 0:
		return &ConfigError{Param: "budget_usd", Reason: "must be non-negative"}
	case p.MinSpacingKm < 0:
		return &ConfigError{Param: "min_spacing_km", Reason: "must be non-negative"}
	case p.MaxDetourM <= 0:
		return &ConfigError{Param: "max_detour_m", Reason: "must be positive"}
	}
	return nil
}

// CostRates are the per-unit capital cost rates of the sizing variables.
type CostRates struct {
	PVPerKW       float64 `json:"pv_capex_per_kw"`
	StoragePerKWh float64 `json:"storage_capex_per_kwh"`
	PerPort       float64 `json:"per_port_capex"`
}

// SetDefaults fills zero rates with the reference cost assumptions.
func (c *CostRates) SetDefaults() {
	if c.PVPerKW == 0 {
		c.PVPerKW = 1600
	}
	if c.StoragePerKWh == 0 {
		c.StoragePerKWh = 600
	}
	if c.PerPort == 0 {
		c.PerPort = 65000
	}
}

// Validate checks the rates.
func (c CostRates) Validate() error {
	if c.PVPerKW < 0 || c.StoragePerKWh < 0 || c.PerPort < 0 {
		return &ConfigError{Param: "cost rates", Reason: "must be non-negative"}
	}
	return nil
}
