// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/adamrupe/Emergent-Organization/ana"
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/inp"
	"github.com/adamrupe/Emergent-Organization/par"
	"github.com/adamrupe/Emergent-Organization/recon"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nEmergent Organization -- local causal state reconstruction\n\n")
	}

	// parameters
	flag.Parse()
	prm := inp.NewParams()
	prm.PastDepth, prm.FutureDepth = 2, 1
	prm.PastK, prm.FutureK = 4, 8
	prm.Boundary = "periodic"
	prm.Verbose = true
	if len(flag.Args()) > 0 {
		prm = inp.ReadParams(flag.Arg(0))
	}
	kind := "blobs"
	if len(flag.Args()) > 1 {
		kind = flag.Arg(1)
	}

	// worker group
	var comm par.Communicator = par.Single{}
	if mpi.IsOn() && mpi.Size() > 1 {
		comm = par.NewMPIComm()
		prm.Distributed = true
	}

	// demo field; real drivers load their own data and shard it with the
	// halo overlap required for complete lightcones
	var f *field.Field
	switch kind {
	case "zeros":
		f = ana.Zeros(16, 32, 32)
	case "gradient":
		f = ana.Gradient(16, 32, 32)
	case "random":
		f = ana.RandomInts(16, 32, 32, 4, prm.Seed)
	case "blobs":
		f = ana.TwoBlobs(16, 32, 32, 3.0)
	default:
		chk.Panic("unknown demo field kind %q", kind)
	}

	// each worker takes a disjoint temporal strip, extended by the halo
	// needed for complete lightcones; adjacent shards overlap by P+F steps
	if comm.Size() > 1 {
		f = shard(f, prm, comm.Rank(), comm.Size())
		prm.PadTemporal = false // strips are not stitched; rank 0 reports its own strip
	}

	// run pipeline
	o, err := recon.New(prm, comm)
	if err != nil {
		chk.Panic("invalid parameters:\n%v", err)
	}
	run(o, f)

	// report
	if comm.Rank() == 0 {
		io.Pf("\nstates: %d\n", len(o.States))
		for _, s := range o.States {
			io.Pf("  state %2d : pasts=%v entropy=%.3f bits\n", s.Index, s.Pasts, s.Entropy())
		}
		sf := o.StateField
		counts := make([]int, len(o.States)+1)
		for t := 0; t < sf.T; t++ {
			for y := 0; y < sf.Y; y++ {
				for x := 0; x < sf.X; x++ {
					counts[sf.Data[t][y][x]]++
				}
			}
		}
		io.Pf("occupancy (0 = margin): %v\n", counts)
	}
}

// shard slices this worker's temporal strip out of the full field,
// including the halo required for complete lightcones
func shard(f *field.Field, prm *inp.Params, rank, size int) *field.Field {
	P, F := prm.PastDepth, prm.FutureDepth
	adjT := f.T - P - F
	strip := adjT / size
	g0 := P + rank*strip
	g1 := g0 + strip
	if rank == size-1 {
		g1 = P + adjT
	}
	s, err := field.NewFieldFrom(f.Data[g0-P : g1+F])
	if err != nil {
		chk.Panic("cannot shard demo field:\n%v", err)
	}
	return s
}

// run invokes the pipeline stages in their required order
func run(o *recon.Reconstructor, f *field.Field) {
	stages := []struct {
		name string
		fcn  func() error
	}{
		{"Extract", func() error { return o.Extract(f) }},
		{"KmeansLightcones", o.KmeansLightcones},
		{"ReconstructMorphs", o.ReconstructMorphs},
		{"AllReduceMorphs", o.AllReduceMorphs},
		{"ReconstructStates", func() error { return o.ReconstructStates(nil) }},
		{"CausalFilter", o.CausalFilter},
	}
	for _, stg := range stages {
		if err := stg.fcn(); err != nil {
			chk.Panic("stage %s failed:\n%v", stg.name, err)
		}
	}
}
