package simulator

import (
	"strings"
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := InstanceConfig{Candidates: 20, Nodes: 10, Seed: 42}
	a, an := Generate(cfg)
	b, bn := Generate(cfg)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("candidate %d differs between runs with the same seed", i)
		}
	}
	for j := range an {
		if an[j] != bn[j] {
			t.Fatalf("node %d differs between runs with the same seed", j)
		}
	}
	c, _ := Generate(InstanceConfig{Candidates: 20, Nodes: 10, Seed: 43})
	if a[0] == c[0] {
		t.Fatal("different seeds produced the same first candidate")
	}
}

func TestGenerate_Ranges(t *testing.T) {
	cands, nodes := Generate(InstanceConfig{Candidates: 200, Nodes: 50, AreaKm: 100, Seed: 1})
	if len(cands) != 200 || len(nodes) != 50 {
		t.Fatalf("got %d candidates, %d nodes", len(cands), len(nodes))
	}
	for _, c := range cands {
		if c.X < 0 || c.X > 100000 || c.Y < 0 || c.Y > 100000 {
			t.Fatalf("candidate %d outside study area: (%g, %g)", c.ID, c.X, c.Y)
		}
		if c.PredDailyKWh < 10 || c.PredDailyKWh > 500 {
			t.Fatalf("candidate %d demand out of range: %g", c.ID, c.PredDailyKWh)
		}
		if c.EquityScore < 0 || c.EquityScore > 1 {
			t.Fatalf("candidate %d equity out of range: %g", c.ID, c.EquityScore)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("generated candidate invalid: %v", err)
		}
	}
	for _, n := range nodes {
		if n.Weight < 1 || n.Weight > 1000 {
			t.Fatalf("node %d weight out of range: %g", n.ID, n.Weight)
		}
	}
}

func TestGenerate_Defaults(t *testing.T) {
	cands, nodes := Generate(InstanceConfig{})
	if len(cands) != 50 || len(nodes) != 50 {
		t.Fatalf("defaults produced %d candidates, %d nodes", len(cands), len(nodes))
	}
}

func TestDescribe(t *testing.T) {
	s := Describe(InstanceConfig{Candidates: 10, Seed: 3})
	if !strings.Contains(s, "10 candidates") || !strings.Contains(s, "seed 3") {
		t.Fatalf("unexpected description: %q", s)
	}
}
