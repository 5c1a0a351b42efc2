// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form synthetic spacetime fields used by the
// test suite and the demo driver
package ana

import (
	"math"

	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/cpmech/gosl/rnd"
)

// Zeros returns an identically zero field
func Zeros(T, Y, X int) *field.Field {
	return field.NewField(T, Y, X)
}

// Gradient returns the field F(t, y, x) = t + y + x
func Gradient(T, Y, X int) *field.Field {
	f := field.NewField(T, Y, X)
	for t := 0; t < T; t++ {
		for y := 0; y < Y; y++ {
			for x := 0; x < X; x++ {
				f.Data[t][y][x] = float64(t + y + x)
			}
		}
	}
	return f
}

// Stripes returns a binary field with vertical stripes of the given period
// along x, constant in t and y
func Stripes(T, Y, X, period int) *field.Field {
	f := field.NewField(T, Y, X)
	for t := 0; t < T; t++ {
		for y := 0; y < Y; y++ {
			for x := 0; x < X; x++ {
				if (x/period)%2 == 0 {
					f.Data[t][y][x] = 1
				}
			}
		}
	}
	return f
}

// TwoBlobs returns two disjoint Gaussian bumps advected diagonally at
// speed 1 across a periodic lattice
func TwoBlobs(T, Y, X int, sigma float64) *field.Field {
	f := field.NewField(T, Y, X)
	centers := [][2]float64{
		{float64(Y) * 0.25, float64(X) * 0.25},
		{float64(Y) * 0.75, float64(X) * 0.75},
	}
	for t := 0; t < T; t++ {
		for y := 0; y < Y; y++ {
			for x := 0; x < X; x++ {
				v := 0.0
				for _, c := range centers {
					dy := periodicDist(float64(y), c[0]+float64(t), float64(Y))
					dx := periodicDist(float64(x), c[1]+float64(t), float64(X))
					v += math.Exp(-(dy*dy + dx*dx) / (2 * sigma * sigma))
				}
				f.Data[t][y][x] = v
			}
		}
	}
	return f
}

// RandomInts returns a field of uniform random integers in [0, nvals)
// drawn from the seeded global random source. Integer values keep
// distributed floating point reductions exact.
func RandomInts(T, Y, X, nvals, seed int) *field.Field {
	rnd.Init(seed)
	f := field.NewField(T, Y, X)
	for t := 0; t < T; t++ {
		for y := 0; y < Y; y++ {
			for x := 0; x < X; x++ {
				f.Data[t][y][x] = float64(rnd.Int(0, nvals-1))
			}
		}
	}
	return f
}

// periodicDist returns the shortest distance between a and b on a ring of
// the given length
func periodicDist(a, b, length float64) float64 {
	d := math.Mod(a-b, length)
	if d < -length/2 {
		d += length
	}
	if d > length/2 {
		d -= length
	}
	return d
}
