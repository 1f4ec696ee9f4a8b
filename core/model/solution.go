package model

// SiteSelection is one row of the optimization output: an opened candidate
// together with its sized configuration. Immutable once produced.
type SiteSelection struct {
	Candidate
	Ports      int     `json:"ports"`
	PVKw       float64 `json:"pv_kw"`
	StorageKWh float64 `json:"storage_kwh"`
}

// TotalPowerKW returns the installed charging power of the site.
func (s SiteSelection) TotalPowerKW(portPowerKW float64) float64 {
	return float64(s.Ports) * portPowerKW
}
