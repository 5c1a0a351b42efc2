// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lightcone

import (
	"runtime"
	"sync"

	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/cpmech/gosl/la"
)

// Extract materializes the past and future lightcone matrices of every
// interior point of a field.
//
// Rows are ordered lexicographically over the interior (t, y, x) with x
// fastest; downstream label vectors index into this order, so it is part
// of the extraction contract. Row i of plcs enumerates the past cone cells
// with d = 0..pastDepth, spatial offsets a then b in [-c・d, c・d]; row i
// of flcs enumerates the future cone with d = 1..futureDepth.
//
// For Periodic boundaries the spatial axes are wrap-padded by
// max(P, F)・c and the adjusted spatial dimensions equal the originals;
// for Open the field is left as is and the adjusted dimensions lose
// 2・max(P, F)・c. The temporal margin is always cut.
//
// Returns the two matrices and the adjusted interior shape (T', Y', X').
func Extract(f *field.Field, pastDepth, futureDepth, c int, bc field.Boundary) (plcs, flcs [][]float64, adjusted [3]int, err error) {

	// adjusted interior shape
	pad := maxDepth(pastDepth, futureDepth) * c
	adjT := f.T - pastDepth - futureDepth
	adjY, adjX := f.Y, f.X
	if bc == field.Open {
		adjY -= 2 * pad
		adjX -= 2 * pad
	}
	if adjT < 1 || adjY < 1 || adjX < 1 {
		err = field.ErrShape
		return
	}
	adjusted = [3]int{adjT, adjY, adjX}

	// pad and anchor
	padded := f.PadSpace(pad, bc)
	baseT, baseY, baseX := pastDepth, pad, pad

	n := adjT * adjY * adjX
	plcs = la.MatAlloc(n, Size(pastDepth, c))
	flcs = la.MatAlloc(n, FutureSize(futureDepth, c))

	// scan interior points, one worker per block of t-slices
	nw := runtime.NumCPU()
	if nw > adjT {
		nw = adjT
	}
	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func(w int) {
			defer wg.Done()
			for t := w; t < adjT; t += nw {
				i := t * adjY * adjX
				for y := 0; y < adjY; y++ {
					for x := 0; x < adjX; x++ {
						p := 0
						visit(0, pastDepth, c, func(d, a, b int) {
							plcs[i][p] = padded.Data[baseT+t-d][baseY+y+a][baseX+x+b]
							p++
						})
						q := 0
						visit(1, futureDepth, c, func(d, a, b int) {
							flcs[i][q] = padded.Data[baseT+t+d][baseY+y+a][baseX+x+b]
							q++
						})
						i++
					}
				}
			}
		}(w)
	}
	wg.Wait()
	return
}

// RowIndex returns the lexicographic row index of interior point (t, y, x)
// for the given adjusted shape
func RowIndex(adjusted [3]int, t, y, x int) int {
	return (t*adjusted[1]+y)*adjusted[2] + x
}

func maxDepth(a, b int) int {
	if a > b {
		return a
	}
	return b
}
