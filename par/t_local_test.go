// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import (
	"errors"
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func verbose() {
	chk.Verbose = true
}

func Test_single01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("single01. single-worker communicator")

	var c Single
	chk.IntAssert(c.Rank(), 0)
	chk.IntAssert(c.Size(), 1)
	x := []float64{1, 2, 3}
	if err := c.Barrier(); err != nil {
		tst.Errorf("barrier failed:\n%v", err)
	}
	if err := c.AllReduceSum(x); err != nil {
		tst.Errorf("allreduce failed:\n%v", err)
	}
	chk.Vector(tst, "x unchanged", 1e-15, x, []float64{1, 2, 3})
}

func Test_local01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("local01. in-process allreduce and broadcast")

	n := 4
	g := NewLocalGroup(n)
	chk.IntAssert(g[2].Rank(), 2)
	chk.IntAssert(g[2].Size(), n)

	results := make([][]float64, n)
	bcast := make([][]float64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for r := 0; r < n; r++ {
		go func(r int) {
			defer wg.Done()
			c := g[r]

			// sum of [r+1, 10(r+1)] over r = [10, 100]
			x := []float64{float64(r + 1), float64(10 * (r + 1))}
			if err := c.AllReduceSum(x); err != nil {
				tst.Errorf("allreduce failed on rank %d:\n%v", r, err)
				return
			}
			results[r] = x

			// broadcast rank 0's vector
			y := []float64{-1, -1}
			if c.Rank() == 0 {
				y = []float64{7, 8}
			}
			if err := c.BcastFromRoot(y); err != nil {
				tst.Errorf("bcast failed on rank %d:\n%v", r, err)
				return
			}
			bcast[r] = y

			if err := c.Barrier(); err != nil {
				tst.Errorf("barrier failed on rank %d:\n%v", r, err)
			}
		}(r)
	}
	wg.Wait()

	for r := 0; r < n; r++ {
		chk.Vector(tst, "reduced sum", 1e-15, results[r], []float64{10, 100})
		chk.Vector(tst, "broadcast vector", 1e-15, bcast[r], []float64{7, 8})
	}
}

func Test_local02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("local02. repeated collectives stay in step")

	n := 3
	g := NewLocalGroup(n)
	sums := make([]float64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for r := 0; r < n; r++ {
		go func(r int) {
			defer wg.Done()
			for round := 0; round < 50; round++ {
				x := []float64{float64(r + round)}
				if err := g[r].AllReduceSum(x); err != nil {
					tst.Errorf("allreduce failed:\n%v", err)
					return
				}
				sums[r] += x[0]
			}
		}(r)
	}
	wg.Wait()

	// Σ_round (3・round + 0 + 1 + 2) over 50 rounds
	correct := 0.0
	for round := 0; round < 50; round++ {
		correct += float64(3*round + 3)
	}
	for r := 0; r < n; r++ {
		chk.Scalar(tst, "accumulated sum", 1e-15, sums[r], correct)
	}
}

func Test_local03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("local03. abort releases blocked workers")

	g := NewLocalGroup(3)
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for r := 0; r < 2; r++ {
		go func(r int) {
			defer wg.Done()
			errs <- g[r].Barrier()
		}(r)
	}
	g[2].Abort()
	wg.Wait()
	close(errs)
	for err := range errs {
		if !errors.Is(err, ErrCollective) {
			tst.Errorf("expected ErrCollective, got %v", err)
		}
	}

	// the group is unusable afterwards
	if err := g[0].AllReduceSum([]float64{1}); !errors.Is(err, ErrCollective) {
		tst.Errorf("expected ErrCollective after abort, got %v", err)
	}
}
