// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements containers for 2+1 dimensional spacetime fields
// and the integer causal state fields derived from them
package field

// Boundary defines the spatial boundary condition of a field. The temporal
// axis is never wrapped.
type Boundary int

const (
	// Open leaves a spatial margin where lightcones are not collected
	Open Boundary = iota

	// Periodic wraps the spatial axes so lightcones cover the whole lattice
	Periodic
)

// BoundaryFromString parses a boundary condition name
func BoundaryFromString(name string) (bc Boundary, err error) {
	switch name {
	case "open":
		bc = Open
	case "periodic":
		bc = Periodic
	default:
		err = ErrBoundary
	}
	return
}

// String returns the name of this boundary condition
func (o Boundary) String() string {
	if o == Periodic {
		return "periodic"
	}
	return "open"
}

// Field holds a scalar quantity sampled over a 2+1 dimensional spacetime
// lattice. Data is indexed [t][y][x] with time on the first axis.
type Field struct {
	T, Y, X int           // dimensions
	Data    [][][]float64 // sampled values
}

// NewField allocates a zeroed field with the given dimensions
func NewField(T, Y, X int) *Field {
	return &Field{T: T, Y: Y, X: X, Data: Alloc3(T, Y, X)}
}

// NewFieldFrom wraps an existing array after checking that it is a
// non-empty rectangular 3D array
func NewFieldFrom(data [][][]float64) (o *Field, err error) {
	if len(data) < 1 || len(data[0]) < 1 || len(data[0][0]) < 1 {
		err = ErrShape
		return
	}
	T, Y, X := len(data), len(data[0]), len(data[0][0])
	for _, slab := range data {
		if len(slab) != Y {
			err = ErrShape
			return
		}
		for _, row := range slab {
			if len(row) != X {
				err = ErrShape
				return
			}
		}
	}
	o = &Field{T: T, Y: Y, X: X, Data: data}
	return
}

// PadSpace pads both spatial axes by the given width. For Periodic the
// values wrap around; for Open the field is returned unchanged since open
// boundaries keep a margin instead of padding.
func (o *Field) PadSpace(width int, bc Boundary) *Field {
	if bc == Open || width == 0 {
		return o
	}
	p := NewField(o.T, o.Y+2*width, o.X+2*width)
	for t := 0; t < o.T; t++ {
		for y := 0; y < p.Y; y++ {
			yy := wrap(y-width, o.Y)
			for x := 0; x < p.X; x++ {
				p.Data[t][y][x] = o.Data[t][yy][wrap(x-width, o.X)]
			}
		}
	}
	return p
}

// Roll returns a copy of the field with the spatial axes rolled
// periodically by (dy, dx); cell (y, x) moves to (y+dy, x+dx)
func (o *Field) Roll(dy, dx int) *Field {
	r := NewField(o.T, o.Y, o.X)
	for t := 0; t < o.T; t++ {
		for y := 0; y < o.Y; y++ {
			for x := 0; x < o.X; x++ {
				r.Data[t][wrap(y+dy, o.Y)][wrap(x+dx, o.X)] = o.Data[t][y][x]
			}
		}
	}
	return r
}

// StateField holds the integer causal state segmentation of a field.
// Interior cells hold state indices ≥ 1; margin cells hold the NAN state 0.
type StateField struct {
	T, Y, X int       // dimensions
	Data    [][][]int // state indices
}

// NewStateField allocates a StateField filled with the NAN state
func NewStateField(T, Y, X int) *StateField {
	return &StateField{T: T, Y: Y, X: X, Data: IntAlloc3(T, Y, X)}
}

// Roll returns a copy of the state field with the spatial axes rolled
// periodically by (dy, dx)
func (o *StateField) Roll(dy, dx int) *StateField {
	r := NewStateField(o.T, o.Y, o.X)
	for t := 0; t < o.T; t++ {
		for y := 0; y < o.Y; y++ {
			for x := 0; x < o.X; x++ {
				r.Data[t][wrap(y+dy, o.Y)][wrap(x+dx, o.X)] = o.Data[t][y][x]
			}
		}
	}
	return r
}

// Alloc3 allocates a T×Y×X array of float64
func Alloc3(T, Y, X int) (v [][][]float64) {
	v = make([][][]float64, T)
	for t := 0; t < T; t++ {
		v[t] = make([][]float64, Y)
		for y := 0; y < Y; y++ {
			v[t][y] = make([]float64, X)
		}
	}
	return
}

// IntAlloc3 allocates a T×Y×X array of int
func IntAlloc3(T, Y, X int) (v [][][]int) {
	v = make([][][]int, T)
	for t := 0; t < T; t++ {
		v[t] = make([][]int, Y)
		for y := 0; y < Y; y++ {
			v[t][y] = make([]int, X)
		}
	}
	return
}

// wrap maps i onto [0, n) periodically
func wrap(i, n int) int {
	i = i % n
	if i < 0 {
		i += n
	}
	return i
}
