// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lightcone implements the stencil geometry of 2+1 dimensional
// lightcones and the extraction of lightcone matrices from spacetime fields
package lightcone

// Size returns the number of cells in a past lightcone of the given depth
// with propagation speed c:
//
//	size = Σ_{d=0}^{depth} (2・c・d + 1)²
func Size(depth, c int) (size int) {
	for d := 0; d <= depth; d++ {
		w := 2*c*d + 1
		size += w * w
	}
	return
}

// FutureSize returns the number of cells in a future lightcone of the given
// depth. The present cell belongs to the past lightcone, hence the -1.
func FutureSize(depth, c int) int {
	return Size(depth, c) - 1
}

// visit enumerates the cells of a cone between temporal depths dmin and
// dmax (inclusive), calling fn with the depth d and spatial offsets (a, b)
// of each cell. The order -- d outer, then a in [-c・d, c・d], then b -- is
// the traversal contract shared by the extractor and the decay builders.
func visit(dmin, dmax, c int, fn func(d, a, b int)) {
	for d := dmin; d <= dmax; d++ {
		for a := -d * c; a <= d*c; a++ {
			for b := -d * c; b <= d*c; b++ {
				fn(d, a, b)
			}
		}
	}
}
