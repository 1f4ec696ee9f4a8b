package siting

import (
	"math"

	"github.com/aridgrid/solsite/core/model"
)

type spacingPair struct {
	i, k int
}

// closePairs returns every unordered candidate pair closer than the minimum
// spacing. Dense O(I^2) scan over the planar coordinates; fine for candidate
// counts in the hundreds. A spatial index would produce the identical pair
// set at larger scale.
func closePairs(cands []model.Candidate, minSpacingKm float64) []spacingPair {
	limitM := minSpacingKm * 1000
	var pairs []spacingPair
	for i := range cands {
		for k := i + 1; k < len(cands); k++ {
			d := math.Hypot(cands[i].X-cands[k].X, cands[i].Y-cands[k].Y)
			if d < limitM {
				pairs = append(pairs, spacingPair{i: i, k: k})
			}
		}
	}
	return pairs
}
