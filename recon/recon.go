// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package recon implements the local causal state reconstruction pipeline:
// lightcone extraction, distance-weighted lightcone clustering,
// distributed morph reconstruction, causal state agglomeration, and
// causal filtering into a segmentation field
package recon

import (
	"fmt"

	"github.com/adamrupe/Emergent-Organization/cluster"
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/inp"
	"github.com/adamrupe/Emergent-Organization/lightcone"
	"github.com/adamrupe/Emergent-Organization/morph"
	"github.com/adamrupe/Emergent-Organization/par"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

// Reconstructor holds all data for one reconstruction run. The stage
// methods must be invoked in order:
//
//	o, err := recon.New(prm, comm)
//	o.Extract(f)
//	o.KmeansLightcones()
//	o.ReconstructMorphs()
//	o.AllReduceMorphs()
//	o.ReconstructStates(nil)
//	o.CausalFilter()
//
// The segmentation is then o.StateField. Each stage consumes its
// predecessor's buffer exactly once and releases what it no longer needs:
// the lightcone matrices after clustering, the future labels after joint
// counting, the contingency table after agglomeration.
type Reconstructor struct {

	// input
	Prm  *inp.Params      // inference parameters
	Comm par.Communicator // worker group

	// results
	States     []*morph.CausalState // the causal state arena
	LabelMap   []int                // past→state map
	StateField *field.StateField    // the segmentation field

	// derived parameters
	bc         field.Boundary
	decay      lightcone.DecayMode
	initPast   cluster.InitMethod
	initFuture cluster.InitMethod
	pad        int // max(P, F)・c

	// staged buffers
	plcs, flcs  [][]float64
	adjusted    [3]int
	pasts       []int
	futures     []int
	localJoint  [][]int
	globalJoint [][]int
}

// New returns a Reconstructor after validating the parameters. A nil comm
// selects single-node mode; the seed for random/plus_plus initialization
// is applied here.
func New(prm *inp.Params, comm par.Communicator) (o *Reconstructor, err error) {
	if err = prm.Validate(); err != nil {
		return
	}
	if comm == nil {
		comm = par.Single{}
	}
	o = &Reconstructor{Prm: prm, Comm: comm}
	o.bc, _ = field.BoundaryFromString(prm.Boundary)
	o.decay, _ = lightcone.DecayModeFromString(prm.Decay)
	o.initPast, _ = cluster.InitMethodFromString(prm.InitPast)
	o.initFuture, _ = cluster.InitMethodFromString(prm.InitFuture)
	o.pad = max(prm.PastDepth, prm.FutureDepth) * prm.C
	rnd.Init(prm.Seed)
	return
}

// Pad returns the spatial margin width max(P, F)・c
func (o *Reconstructor) Pad() int { return o.pad }

// Adjusted returns the interior shape (T', Y', X') set by Extract
func (o *Reconstructor) Adjusted() [3]int { return o.adjusted }

// Pasts returns the past labels; valid between KmeansLightcones and
// CausalFilter
func (o *Reconstructor) Pasts() []int { return o.pasts }

// Extract scans the target field into past and future lightcone matrices.
// This is the first stage. In distributed mode f is this worker's shard,
// extended by the halo needed for complete lightcones.
func (o *Reconstructor) Extract(f *field.Field) (err error) {
	o.msg("> Extracting lightcones\n")
	o.plcs, o.flcs, o.adjusted, err = lightcone.Extract(f, o.Prm.PastDepth, o.Prm.FutureDepth, o.Prm.C, o.bc)
	if err != nil {
		return
	}
	o.pasts, o.futures = nil, nil
	o.localJoint, o.globalJoint = nil, nil
	o.States, o.LabelMap, o.StateField = nil, nil, nil
	return
}

// KmeansLightcones clusters the two lightcone matrices and keeps only the
// per-row labels; the matrices are released afterwards. Runs after
// Extract. In distributed mode the workers first meet at a barrier, then
// agree on the centroid sets during clustering.
func (o *Reconstructor) KmeansLightcones() (err error) {
	if o.plcs == nil {
		return fmt.Errorf("%w: KmeansLightcones requires Extract", ErrOrder)
	}
	if err = o.Comm.Barrier(); err != nil {
		return
	}

	// decayed spacetime distance via columnwise sqrt(w) scaling
	if o.decay != lightcone.NoDecay {
		cluster.ApplyDecay(o.plcs, lightcone.PastDecays(o.decay, o.Prm.PastDepth, o.Prm.C, o.Prm.PastDecay))
		cluster.ApplyDecay(o.flcs, lightcone.FutureDecays(o.decay, o.Prm.FutureDepth, o.Prm.C, o.Prm.FutureDecay))
	}

	// convergence and assignment are separate passes: the converged
	// centroids are shared by the whole group, the labels are local
	o.msg("> Clustering %d past lightcones into %d clusters\n", len(o.plcs), o.Prm.PastK)
	km := cluster.KMeans{K: o.Prm.PastK, MaxIt: o.Prm.MaxItPast, Init: o.initPast, Comm: o.groupComm()}
	cen, err := km.Compute(o.plcs)
	if err != nil {
		return
	}
	o.pasts = km.Assign(o.plcs, cen)
	o.plcs = nil

	o.msg("> Clustering %d future lightcones into %d clusters\n", len(o.flcs), o.Prm.FutureK)
	km = cluster.KMeans{K: o.Prm.FutureK, MaxIt: o.Prm.MaxItFuture, Init: o.initFuture, Comm: o.groupComm()}
	cen, err = km.Compute(o.flcs)
	if err != nil {
		return
	}
	o.futures = km.Assign(o.flcs, cen)
	o.flcs = nil
	return
}

// ReconstructMorphs counts the (past, future) label pairs of this worker's
// shard into the local contingency table; the future labels are released
// afterwards. Runs after KmeansLightcones.
func (o *Reconstructor) ReconstructMorphs() (err error) {
	if o.pasts == nil || o.futures == nil {
		return fmt.Errorf("%w: ReconstructMorphs requires KmeansLightcones", ErrOrder)
	}
	o.msg("> Reconstructing morphs\n")
	o.localJoint, err = morph.JointDistribution(o.pasts, o.futures, o.Prm.PastK, o.Prm.FutureK)
	if err != nil {
		return
	}
	o.futures = nil
	return
}

// AllReduceMorphs combines the local contingency tables into the global
// one: a barrier followed by a single elementwise integer sum reduction.
// This is the last collective; everything after it is local and
// deterministic, so every worker derives identical states. In single-node
// mode the global table is the local one.
func (o *Reconstructor) AllReduceMorphs() (err error) {
	if o.localJoint == nil {
		return fmt.Errorf("%w: AllReduceMorphs requires ReconstructMorphs", ErrOrder)
	}
	if !o.Prm.Distributed || o.Comm.Size() == 1 {
		o.globalJoint = o.localJoint
		return
	}
	if err = o.Comm.Barrier(); err != nil {
		return
	}
	o.msg("> Reducing joint distribution across %d workers\n", o.Comm.Size())
	o.globalJoint = make([][]int, len(o.localJoint))
	for i, row := range o.localJoint {
		o.globalJoint[i] = append([]int(nil), row...)
	}
	return morph.AllReduceJoint(o.globalJoint, o.Comm)
}

// ReconstructStates agglomerates past clusters with equivalent morphs into
// causal states. A nil comparator selects the chi-square test with the
// configured offset; the p-value threshold comes from the parameters. The
// contingency table is released afterwards. Runs after ReconstructMorphs
// (single-node) or AllReduceMorphs (distributed).
func (o *Reconstructor) ReconstructStates(cmp morph.Comparator) (err error) {
	table := o.globalJoint
	if table == nil {
		if o.Prm.Distributed {
			return fmt.Errorf("%w: ReconstructStates requires AllReduceMorphs in distributed mode", ErrOrder)
		}
		table = o.localJoint
	}
	if table == nil {
		return fmt.Errorf("%w: ReconstructStates requires ReconstructMorphs", ErrOrder)
	}
	if cmp == nil {
		cmp = morph.ChiSquared(o.Prm.ChiSqOffset)
	}
	o.msg("> Reconstructing causal states\n")
	o.States, o.LabelMap, err = morph.Agglomerate(table, cmp, o.Prm.Pval)
	if err != nil {
		return
	}
	o.localJoint, o.globalJoint = nil, nil
	o.msg("> %d causal states\n", len(o.States))
	return
}

// CausalFilter maps the past labels through the past→state map and emits
// the segmentation field with NAN state margins; the past labels are
// released afterwards. Runs after ReconstructStates.
func (o *Reconstructor) CausalFilter() (err error) {
	if o.LabelMap == nil || o.pasts == nil {
		return fmt.Errorf("%w: CausalFilter requires ReconstructStates", ErrOrder)
	}
	o.msg("> Causal filtering\n")
	o.StateField = Filter(o.pasts, o.adjusted, o.LabelMap, o.bc,
		o.pad, o.Prm.PastDepth, o.Prm.FutureDepth, o.Prm.PadTemporal)
	o.pasts = nil
	return
}

// auxiliary ///////////////////////////////////////////////////////////////

// groupComm returns the communicator the k-means backend should reduce
// over: the worker group in distributed mode, nobody otherwise
func (o *Reconstructor) groupComm() par.Communicator {
	if o.Prm.Distributed {
		return o.Comm
	}
	return par.Single{}
}

// msg prints a stage message on rank 0 when verbose
func (o *Reconstructor) msg(m string, args ...interface{}) {
	if o.Prm.Verbose && o.Comm.Rank() == 0 {
		io.Pf(m, args...)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
