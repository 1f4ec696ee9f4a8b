// Package economics post-processes the optimization output: capex breakdowns
// with incentives, annual operating cost and revenue, and NPV/payback figures
// per site and for the whole portfolio.
package economics

import (
	"math"

	"github.com/aridgrid/solsite/core/model"
)

// Parameters hold the cost, revenue and financial assumptions.
type Parameters struct {
	SitePrepUSD            float64 `json:"site_prep_usd"`
	CivilWorkUSD           float64 `json:"civil_work_usd"`
	InterconnectionBaseUSD float64 `json:"interconnection_base_usd"`
	TransformerUSDPerKW    float64 `json:"transformer_usd_per_kw"`
	ChargerUSDPerPort      float64 `json:"charger_usd_per_port"`
	PVUSDPerKW             float64 `json:"pv_usd_per_kw"`
	StorageUSDPerKWh       float64 `json:"storage_usd_per_kwh"`

	MaintenancePct   float64 `json:"maintenance_pct"`
	InsurancePct     float64 `json:"insurance_pct"`
	LandLeaseAnnual  float64 `json:"land_lease_annual"`
	NetworkFeeAnnual float64 `json:"network_fee_annual"`

	ElectricityUSDPerKWh float64 `json:"electricity_usd_per_kwh"`
	DemandChargeUSDPerKW float64 `json:"demand_charge_usd_per_kw"`

	ChargingPriceUSDPerKWh float64 `json:"charging_price_usd_per_kwh"`
	UtilizationRate        float64 `json:"utilization_rate"`

	DiscountRate         float64 `json:"discount_rate"`
	ProjectLifetimeYears int     `json:"project_lifetime_years"`

	FederalITCPct float64 `json:"federal_itc_pct"`
	NEVIGrantPct  float64 `json:"nevi_grant_pct"`
}

// DefaultParameters returns the reference cost assumptions.
func DefaultParameters() Parameters {
	return Parameters{
		SitePrepUSD:            50000,
		CivilWorkUSD:           75000,
		InterconnectionBaseUSD: 100000,
		TransformerUSDPerKW:    50,
		ChargerUSDPerPort:      65000,
		PVUSDPerKW:             1600,
		StorageUSDPerKWh:       600,
		MaintenancePct:         0.02,
		InsurancePct:           0.005,
		LandLeaseAnnual:        12000,
		NetworkFeeAnnual:       2400,
		ElectricityUSDPerKWh:   0.12,
		DemandChargeUSDPerKW:   15,
		ChargingPriceUSDPerKWh: 0.35,
		UtilizationRate:        0.15,
		DiscountRate:           0.08,
		ProjectLifetimeYears:   15,
		FederalITCPct:          0.30,
		NEVIGrantPct:           0.80,
	}
}

// neviGrantCapUSD limits the per-site NEVI grant.
const neviGrantCapUSD = 1_000_000

// CapexBreakdown itemizes the capital expenditure of a site.
type CapexBreakdown struct {
	SitePrep        float64 `json:"site_prep"`
	CivilWork       float64 `json:"civil_work"`
	Interconnection float64 `json:"interconnection"`
	Chargers        float64 `json:"chargers"`
	PVSystem        float64 `json:"pv_system"`
	Storage         float64 `json:"storage"`
	Total           float64 `json:"total_capex"`
	FederalITC      float64 `json:"federal_itc"`
	NEVIGrant       float64 `json:"nevi_grant"`
	Net             float64 `json:"net_capex"`
}

// SiteCapex itemizes capital costs for a configured site and applies the ITC
// and NEVI incentives.
func SiteCapex(ports int, pvKW, storageKWh, portPowerKW float64, p Parameters) CapexBreakdown {
	totalPowerKW := float64(ports) * portPowerKW
	b := CapexBreakdown{
		SitePrep:        p.SitePrepUSD,
		CivilWork:       p.CivilWorkUSD,
		Interconnection: p.InterconnectionBaseUSD + p.TransformerUSDPerKW*totalPowerKW,
		Chargers:        float64(ports) * p.ChargerUSDPerPort,
		PVSystem:        pvKW * p.PVUSDPerKW,
		Storage:         storageKWh * p.StorageUSDPerKWh,
	}
	b.Total = b.SitePrep + b.CivilWork + b.Interconnection + b.Chargers + b.PVSystem + b.Storage
	b.FederalITC = -b.PVSystem * p.FederalITCPct
	b.NEVIGrant = -math.Min(b.Total*p.NEVIGrantPct, neviGrantCapUSD)
	b.Net = b.Total + b.FederalITC + b.NEVIGrant
	return b
}

// AnnualOpex returns the yearly operating cost for a site with the given
// demand profile. PV generation offsets grid energy and storage shaves peak
// demand.
func AnnualOpex(capex, annualKWh, peakKW, pvKWh, storageMitKW float64, p Parameters) float64 {
	netGrid := math.Max(0, annualKWh-pvKWh)
	netPeak := math.Max(0, peakKW-storageMitKW)
	return capex*p.MaintenancePct +
		capex*p.InsurancePct +
		p.LandLeaseAnnual +
		p.NetworkFeeAnnual +
		netGrid*p.ElectricityUSDPerKWh +
		netPeak*p.DemandChargeUSDPerKW*12
}

// AnnualRevenue returns the charging revenue for the annual energy demand.
func AnnualRevenue(annualKWh float64, p Parameters) float64 {
	return annualKWh * p.ChargingPriceUSDPerKWh
}

// SiteEconomics is the full financial picture of one opened site.
type SiteEconomics struct {
	CandID        int            `json:"cand_id"`
	Capex         CapexBreakdown `json:"capex"`
	AnnualOpex    float64        `json:"annual_opex"`
	AnnualRevenue float64        `json:"annual_revenue"`
	NPV           float64        `json:"npv"`
	PaybackYears  float64        `json:"payback_years"`
	ROIPct        float64        `json:"roi_pct"`
}

// EvaluateSite computes the economics of one selection row. portPowerKW is
// the DCFC port rating from the optimization parameters.
func EvaluateSite(sel model.SiteSelection, portPowerKW float64, p Parameters) SiteEconomics {
	annualKWh := sel.PredDailyKWh * 365
	// 70% simultaneity across ports.
	peakKW := sel.TotalPowerKW(portPowerKW) * 0.7
	storageMitKW := math.Min(sel.StorageKWh*0.5, peakKW*0.3)
	// PV yield approximation: kW rating at capacity-factor hours.
	pvKWh := sel.PVKw * pvAnnualHours

	capex := SiteCapex(sel.Ports, sel.PVKw, sel.StorageKWh, portPowerKW, p)
	opex := AnnualOpex(capex.Total, annualKWh, peakKW, pvKWh, storageMitKW, p)
	revenue := AnnualRevenue(annualKWh, p)

	r := p.DiscountRate
	n := float64(p.ProjectLifetimeYears)
	pvf := (1 - math.Pow(1+r, -n)) / r
	annualNet := revenue - opex
	npv := -capex.Net + annualNet*pvf

	payback := math.Inf(1)
	if annualNet > 0 {
		payback = capex.Net / annualNet
	}
	roi := 0.0
	if capex.Net > 0 {
		roi = annualNet / capex.Net * 100
	}
	return SiteEconomics{
		CandID:        sel.ID,
		Capex:         capex,
		AnnualOpex:    opex,
		AnnualRevenue: revenue,
		NPV:           npv,
		PaybackYears:  payback,
		ROIPct:        roi,
	}
}

// pvAnnualHours approximates annual PV yield per installed kW in the desert
// southwest.
const pvAnnualHours = 1750

// Portfolio aggregates the economics of all opened sites.
type Portfolio struct {
	NumSites      int             `json:"num_sites"`
	TotalCapex    float64         `json:"total_capex"`
	TotalNetCapex float64         `json:"total_net_capex"`
	AnnualOpex    float64         `json:"annual_opex"`
	AnnualRevenue float64         `json:"annual_revenue"`
	NPV           float64         `json:"npv"`
	Sites         []SiteEconomics `json:"sites"`
}

// EvaluatePortfolio computes per-site economics and portfolio totals.
func EvaluatePortfolio(sel []model.SiteSelection, portPowerKW float64, p Parameters) Portfolio {
	out := Portfolio{NumSites: len(sel)}
	for _, s := range sel {
		e := EvaluateSite(s, portPowerKW, p)
		out.Sites = append(out.Sites, e)
		out.TotalCapex += e.Capex.Total
		out.TotalNetCapex += e.Capex.Net
		out.AnnualOpex += e.AnnualOpex
		out.AnnualRevenue += e.AnnualRevenue
		out.NPV += e.NPV
	}
	return out
}
