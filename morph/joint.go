// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package morph builds the empirical joint distribution over past and
// future lightcone clusters and agglomerates pasts with statistically
// indistinguishable morphs into local causal states
package morph

import "github.com/adamrupe/Emergent-Organization/par"

// JointDistribution counts (past, future) co-occurrences into an
// npast × nfuture contingency table. Row i is the unnormalized morph of
// past cluster i: the empirical distribution over futures conditioned on
// the past. Labels are assumed to take values in [0, npast) and
// [0, nfuture); the two vectors share the extractor's row order.
func JointDistribution(pasts, futures []int, npast, nfuture int) (joint [][]int, err error) {
	if npast < 1 || nfuture < 1 {
		return nil, ErrEmptyTable
	}
	if len(pasts) != len(futures) {
		return nil, ErrLabelMismatch
	}
	joint = make([][]int, npast)
	for i := range joint {
		joint[i] = make([]int, nfuture)
	}
	for i, p := range pasts {
		joint[p][futures[i]]++
	}
	return
}

// AllReduceJoint sums a contingency table elementwise across the worker
// group, in place. This is the single collective after joint counting; the
// reduction is staged through a float64 buffer for the underlying sum
// operation (counts stay exact far below 2⁵³).
func AllReduceJoint(joint [][]int, comm par.Communicator) error {
	if comm == nil || comm.Size() == 1 {
		return nil
	}
	nf := len(joint[0])
	flat := make([]float64, len(joint)*nf)
	p := 0
	for _, row := range joint {
		for _, v := range row {
			flat[p] = float64(v)
			p++
		}
	}
	if err := comm.AllReduceSum(flat); err != nil {
		return err
	}
	p = 0
	for _, row := range joint {
		for j := range row {
			row[j] = int(flat[p])
			p++
		}
	}
	return nil
}
