// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lightcone

import "math"

// DecayMode selects the spacetime distance used for exponential decay
// weighting of lightcone coordinates
type DecayMode int

const (
	// NoDecay applies no weighting
	NoDecay DecayMode = iota

	// SpaceDecay decays with the spatial radius √(a²+b²) of each cell
	SpaceDecay

	// TimeDecay decays with the temporal depth d of each cell
	TimeDecay

	// SpacetimeDecay decays with the spacetime radius √(a²+b²+d²)
	SpacetimeDecay
)

// DecayModeFromString parses a decay mode name
func DecayModeFromString(name string) (mode DecayMode, err error) {
	switch name {
	case "none":
		mode = NoDecay
	case "space":
		mode = SpaceDecay
	case "time":
		mode = TimeDecay
	case "spacetime":
		mode = SpacetimeDecay
	default:
		err = ErrDecayMode
	}
	return
}

// String returns the name of this decay mode
func (o DecayMode) String() string {
	switch o {
	case SpaceDecay:
		return "space"
	case TimeDecay:
		return "time"
	case SpacetimeDecay:
		return "spacetime"
	}
	return "none"
}

// distance returns the decay distance of a cell at depth d with spatial
// offsets (a, b) under this mode
func (o DecayMode) distance(d, a, b int) float64 {
	switch o {
	case SpaceDecay:
		return math.Sqrt(float64(a*a + b*b))
	case TimeDecay:
		return float64(d)
	case SpacetimeDecay:
		return math.Sqrt(float64(a*a + b*b + d*d))
	}
	return 0
}

// PastDecays returns the per-cell weights exp(-rate・dist) for a past
// lightcone of the given depth. The present cell (depth 0) has weight 1.
// Cell order matches the extractor traversal so the weights multiply the
// past lightcone matrix columnwise.
func PastDecays(mode DecayMode, depth, c int, rate float64) []float64 {
	w := make([]float64, Size(depth, c))
	i := 0
	visit(0, depth, c, func(d, a, b int) {
		w[i] = math.Exp(-rate * mode.distance(d, a, b))
		i++
	})
	return w
}

// FutureDecays returns the per-cell weights for a future lightcone of the
// given depth; temporal depths run over 1..depth (depth 0 belongs to the
// past lightcone)
func FutureDecays(mode DecayMode, depth, c int, rate float64) []float64 {
	w := make([]float64, FutureSize(depth, c))
	i := 0
	visit(1, depth, c, func(d, a, b int) {
		w[i] = math.Exp(-rate * mode.distance(d, a, b))
		i++
	})
	return w
}
