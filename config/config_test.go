package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
opt:
  port_power_kw: 150
  ports_min: 2
  ports_max: 8
  pv_kw_min: 50
  pv_kw_max: 500
  storage_kwh_max: 1000
  max_sites: 5
  budget_usd: 10000000
  min_spacing_km: 1.5
  max_detour_m: 5000
  weights:
    util: 1
    equity: 10
    safety_penalty: 5
    grid_penalty: 5
    npc_cost: 1
solver:
  name: bnb
  time_limit_s: 120
data:
  candidates: testdata/candidates.json
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Opt.PortPowerKW)
	assert.Equal(t, 2, cfg.Opt.PortsMin)
	assert.Equal(t, 10.0, cfg.Opt.Weights.Equity)
	assert.Equal(t, "bnb", cfg.Solver.Name)
	assert.Equal(t, 120.0, cfg.Solver.TimeLimitS)
	// Unset fields fall back to defaults.
	assert.Equal(t, 0.01, cfg.Solver.MIPGap)
	assert.Equal(t, 1600.0, cfg.Costs.PVPerKW)
	assert.Equal(t, "testdata/candidates.json", cfg.Data.Candidates)
	assert.Equal(t, "data/demand_nodes.json", cfg.Data.DemandNodes)
}

func TestLoad_JSON(t *testing.T) {
	body := `{
  "opt": {
    "port_power_kw": 150, "ports_min": 2, "ports_max": 8,
    "pv_kw_min": 50, "pv_kw_max": 500, "storage_kwh_max": 1000,
    "max_sites": 3, "budget_usd": 1e7, "min_spacing_km": 2, "max_detour_m": 5000
  }
}`
	cfg, err := Load(writeConfig(t, "config.json", body))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Opt.MaxSites)
	assert.Equal(t, "bnb", cfg.Solver.Name)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SOLSITE_SOLVER__NAME", "dive")
	t.Setenv("SOLSITE_OPT__MAX_SITES", "7")

	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)
	assert.Equal(t, "dive", cfg.Solver.Name)
	assert.Equal(t, 7, cfg.Opt.MaxSites)
}

func TestLoad_InvalidParams(t *testing.T) {
	body := `
opt:
  port_power_kw: 150
  ports_min: 4
  ports_max: 2
  max_detour_m: 5000
`
	_, err := Load(writeConfig(t, "config.yaml", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ports_max")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "x = 1"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
