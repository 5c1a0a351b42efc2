// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/lightcone"
)

// Filter projects the past labels back across the spacetime lattice and
// re-pads the margin with the NAN state 0.
//
// The past label vector is reshaped to the adjusted interior shape (the
// extractor's lexicographic row order makes this a plain reshape), mapped
// elementwise through the past→state label map, and padded back out:
// spatially by pad on each side for open boundaries (periodic interiors
// are already full width), temporally by pastDepth before and futureDepth
// after. Callers stitching temporal shards pass padTemporal false and pad
// the stitched result themselves.
func Filter(pasts []int, adjusted [3]int, labelMap []int, bc field.Boundary,
	pad, pastDepth, futureDepth int, padTemporal bool) *field.StateField {

	adjT, adjY, adjX := adjusted[0], adjusted[1], adjusted[2]
	spad := pad
	if bc == field.Periodic {
		spad = 0
	}
	tpad := 0
	T := adjT
	if padTemporal {
		tpad = pastDepth
		T += pastDepth + futureDepth
	}

	sf := field.NewStateField(T, adjY+2*spad, adjX+2*spad)
	for t := 0; t < adjT; t++ {
		for y := 0; y < adjY; y++ {
			for x := 0; x < adjX; x++ {
				past := pasts[lightcone.RowIndex(adjusted, t, y, x)]
				sf.Data[tpad+t][spad+y][spad+x] = labelMap[past]
			}
		}
	}
	return sf
}
