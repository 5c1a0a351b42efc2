// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package morph

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CausalState is one local causal state: an equivalence class of past
// lightcone clusters whose morphs test indistinguishable. States live in a
// flat arena indexed by their creation order; the past→state relation is
// held in the label map, not in back-pointers.
type CausalState struct {
	Index  int       // integer label, assigned from 1 in creation order
	Pasts  []int     // member past clusters, in insertion order
	Counts []float64 // elementwise sum of the member morph rows
	Morph  []float64 // Counts averaged over the number of members
}

func newState(index, past int, counts []float64) *CausalState {
	s := &CausalState{
		Index:  index,
		Pasts:  []int{past},
		Counts: append([]float64(nil), counts...),
		Morph:  append([]float64(nil), counts...),
	}
	return s
}

// add absorbs a new past into the state and refreshes the aggregate morph,
// which is the count sum averaged over the member pasts
func (o *CausalState) add(past int, counts []float64) {
	o.Pasts = append(o.Pasts, past)
	floats.Add(o.Counts, counts)
	copy(o.Morph, o.Counts)
	floats.Scale(1/float64(len(o.Pasts)), o.Morph)
}

// NormalizedMorph returns the morph normalized to a probability
// distribution. Not needed for the chi-square comparison; kept for other
// distribution comparators and diagnostics.
func (o *CausalState) NormalizedMorph() []float64 {
	m := append([]float64(nil), o.Morph...)
	if total := floats.Sum(m); total > 0 {
		floats.Scale(1/total, m)
	}
	return m
}

// Entropy returns the Shannon entropy (bits) of the normalized morph
func (o *CausalState) Entropy() (h float64) {
	for _, p := range o.NormalizedMorph() {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return
}

// Agglomerate partitions the past clusters of a contingency table into
// local causal states by a single greedy first-fit pass: pasts are visited
// in ascending index, existing states in creation order, and the first
// state whose morph tests equivalent (p > pvalThreshold) absorbs the past.
// Both iteration orders are part of the contract; changing either changes
// the output.
//
// Past clusters with no observations (all-zero rows) are noise clusters:
// they are mapped to the NAN state 0 and belong to no causal state.
//
// Returns the state arena and the past→state label map; labelMap[i] holds
// the state index of past i (≥ 1, or 0 for a noise past).
func Agglomerate(joint [][]int, cmp Comparator, pvalThreshold float64) (states []*CausalState, labelMap []int, err error) {
	if len(joint) == 0 {
		return nil, nil, ErrEmptyTable
	}
	labelMap = make([]int, len(joint))
	next := 1 // state index counter, local to this pass
	row := make([]float64, len(joint[0]))
	for past, counts := range joint {

		// noise cluster: no lightcones were assigned to this past
		total := 0
		for j, v := range counts {
			row[j] = float64(v)
			total += v
		}
		if total == 0 {
			continue
		}

		// first-fit scan over existing states
		placed := false
		for _, s := range states {
			if cmp(row, s.Morph) > pvalThreshold {
				s.add(past, row)
				labelMap[past] = s.Index
				placed = true
				break
			}
		}
		if !placed {
			s := newState(next, past, row)
			states = append(states, s)
			labelMap[past] = s.Index
			next++
		}
	}
	return
}
