package siting

import (
	"math"

	"github.com/aridgrid/solsite/core/model"
)

// DistanceMatrixKm computes the dense candidate-by-node distance matrix in
// kilometers from projected coordinates. Computed once before model
// construction and read-only afterwards.
func DistanceMatrixKm(cands []model.Candidate, nodes []model.DemandNode) [][]float64 {
	dist := make([][]float64, len(cands))
	for i, c := range cands {
		dist[i] = make([]float64, len(nodes))
		for j, n := range nodes {
			dist[i][j] = math.Hypot(c.X-n.X, c.Y-n.Y) / 1000.0
		}
	}
	return dist
}
