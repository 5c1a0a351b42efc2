// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"testing"

	"github.com/adamrupe/Emergent-Organization/ana"
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// checkSegmentation verifies the structural invariants of a padded
// segmentation field: margins hold the NAN state, the interior holds
// state indices in 1..nstates
func checkSegmentation(tst *testing.T, sf *field.StateField, prm *inp.Params, nstates int) {
	bc, _ := field.BoundaryFromString(prm.Boundary)
	pad := 0
	if bc == field.Open {
		m := prm.PastDepth
		if prm.FutureDepth > m {
			m = prm.FutureDepth
		}
		pad = m * prm.C
	}
	for t := 0; t < sf.T; t++ {
		tIn := t >= prm.PastDepth && t < sf.T-prm.FutureDepth
		for y := 0; y < sf.Y; y++ {
			for x := 0; x < sf.X; x++ {
				in := tIn && y >= pad && y < sf.Y-pad && x >= pad && x < sf.X-pad
				v := sf.Data[t][y][x]
				if !in {
					chk.IntAssert(v, 0)
					continue
				}
				if v < 1 || v > nstates {
					tst.Errorf("interior state %d out of range 1..%d at (%d,%d,%d)", v, nstates, t, y, x)
					return
				}
			}
		}
	}
}

func Test_gradient01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gradient01. decayed reconstruction of a gradient field")

	prm := inp.NewParams()
	prm.PastDepth, prm.FutureDepth = 3, 2
	prm.PastK, prm.FutureK = 4, 4
	prm.Decay = "spacetime"
	prm.PastDecay, prm.FutureDecay = 0.1, 0.1
	prm.Boundary = "periodic"

	o, err := New(prm, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, o, ana.Gradient(10, 10, 10)) {
		return
	}

	io.Pforan("states = %d, labelMap = %v\n", len(o.States), o.LabelMap)
	if len(o.States) < 1 || len(o.States) > prm.PastK {
		tst.Errorf("state count %d out of range 1..%d", len(o.States), prm.PastK)
		return
	}
	checkSegmentation(tst, o.StateField, prm, len(o.States))

	// every occupied past maps into its state and state indices are
	// assigned in creation order
	for i, s := range o.States {
		chk.IntAssert(s.Index, i+1)
		for _, past := range s.Pasts {
			chk.IntAssert(o.LabelMap[past], s.Index)
		}
	}
}

func Test_roll01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("roll01. periodic reconstruction commutes with rolling")

	prm := inp.NewParams()
	prm.PastDepth, prm.FutureDepth = 1, 1
	prm.PastK, prm.FutureK = 2, 2
	prm.Boundary = "periodic"

	f := ana.Stripes(8, 8, 8, 2) // stripe pattern has period 4 along x
	dy, dx := 3, 4               // dx is a multiple of the pattern period

	a, err := New(prm, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, a, f) {
		return
	}

	b, err := New(prm, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, b, f.Roll(dy, dx)) {
		return
	}

	rolled := a.StateField.Roll(dy, dx)
	for t := 0; t < rolled.T; t++ {
		for y := 0; y < rolled.Y; y++ {
			chk.Ints(tst, "rolled state field rows", b.StateField.Data[t][y], rolled.Data[t][y])
		}
	}
}

func Test_blobs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("blobs01. moving blobs give a valid segmentation")

	prm := inp.NewParams()
	prm.PastDepth, prm.FutureDepth = 1, 1
	prm.PastK, prm.FutureK = 4, 4
	prm.Boundary = "periodic"

	o, err := New(prm, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, o, ana.TwoBlobs(10, 20, 20, 2.5)) {
		return
	}

	io.Pforan("states = %d, labelMap = %v\n", len(o.States), o.LabelMap)
	if len(o.States) < 1 || len(o.States) > prm.PastK {
		tst.Errorf("state count %d out of range 1..%d", len(o.States), prm.PastK)
		return
	}
	checkSegmentation(tst, o.StateField, prm, len(o.States))
}

func Test_determinism01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("determinism01. fixed seed gives identical output")

	build := func() *Reconstructor {
		prm := inp.NewParams()
		prm.PastDepth, prm.FutureDepth = 1, 1
		prm.PastK, prm.FutureK = 3, 3
		prm.Boundary = "periodic"
		prm.InitPast, prm.InitFuture = "plus_plus", "plus_plus"
		prm.Seed = 4321
		o, err := New(prm, nil)
		if err != nil {
			tst.Fatalf("New failed:\n%v", err)
		}
		return o
	}

	f := ana.RandomInts(10, 8, 8, 4, 99)
	a := build()
	if !runAll(tst, a, f) {
		return
	}
	b := build()
	if !runAll(tst, b, f) {
		return
	}

	chk.IntAssert(len(a.States), len(b.States))
	chk.Ints(tst, "label maps", a.LabelMap, b.LabelMap)
	for t := 0; t < a.StateField.T; t++ {
		for y := 0; y < a.StateField.Y; y++ {
			chk.Ints(tst, "state field rows", a.StateField.Data[t][y], b.StateField.Data[t][y])
		}
	}
}

func Test_window01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("window01. open-mode window agrees with periodic view")

	// noisy field with a quiet inner window
	f := ana.RandomInts(6, 14, 14, 4, 13)
	for t := 0; t < f.T; t++ {
		for y := 3; y < 11; y++ {
			for x := 3; x < 11; x++ {
				f.Data[t][y][x] = 0
			}
		}
	}

	prm := inp.NewParams()
	prm.PastDepth, prm.FutureDepth = 1, 1
	prm.PastK, prm.FutureK = 3, 3
	prm.Boundary = "open"

	o, err := New(prm, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, o, f) {
		return
	}

	// points whose full lightcones lie inside the quiet window share one
	// label in open mode
	sf := o.StateField
	label := sf.Data[1][4][4]
	if label < 1 {
		tst.Errorf("window label must be a real state, got %d", label)
		return
	}
	for t := 1; t < 5; t++ {
		for y := 4; y < 10; y++ {
			for x := 4; x < 10; x++ {
				chk.IntAssert(sf.Data[t][y][x], label)
			}
		}
	}

	// the periodic reconstruction of the quiet window alone is uniform
	// too: the two segmentations agree up to label renaming
	prmB := inp.NewParams()
	prmB.PastDepth, prmB.FutureDepth = 1, 1
	prmB.PastK, prmB.FutureK = 2, 2
	prmB.Boundary = "periodic"
	b, err := New(prmB, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if !runAll(tst, b, ana.Zeros(6, 8, 8)) {
		return
	}
	chk.IntAssert(len(b.States), 1)
	for t := 1; t < 5; t++ {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				chk.IntAssert(b.StateField.Data[t][y][x], 1)
			}
		}
	}
}
