package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aridgrid/solsite/core/metrics"
	"github.com/aridgrid/solsite/core/siting"
	"github.com/aridgrid/solsite/core/solver"
	"github.com/aridgrid/solsite/infra/mqtt"
)

// Config is the root configuration of a siting run.
type Config struct {
	Opt     siting.Params    `json:"opt"`
	Costs   siting.CostRates `json:"costs"`
	Solver  solver.Config    `json:"solver"`
	Data    DataConfig       `json:"data"`
	Metrics metrics.Config   `json:"metrics"`
	MQTT    mqtt.Config      `json:"mqtt"`
}

// DataConfig locates the input and output tables.
type DataConfig struct {
	Candidates  string `json:"candidates"`
	DemandNodes string `json:"demand_nodes"`
	Output      string `json:"output"`
}

// SetDefaults applies sane defaults.
func (c *DataConfig) SetDefaults() {
	if c.Candidates == "" {
		c.Candidates = "data/candidates.json"
	}
	if c.DemandNodes == "" {
		c.DemandNodes = "data/demand_nodes.json"
	}
	if c.Output == "" {
		c.Output = "artifacts/selected_sites.json"
	}
}

// Load reads the configuration file (yaml or json), applies SOLSITE_
// environment overrides and validates the result. A .env file next to the
// working directory is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional .env, ignore missing

	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SOLSITE_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "solsite_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Costs.SetDefaults()
	cfg.Solver.SetDefaults()
	cfg.Data.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Opt.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Costs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
