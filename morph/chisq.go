// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package morph

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Comparator is a statistical equivalence test between two empirical
// distributions over futures, returning a p-value. Two morphs are
// considered equivalent when the p-value exceeds the agglomeration
// threshold. The chi-square test below is one instance; the agglomerator
// takes any comparator.
type Comparator func(obs, exp []float64) (pval float64)

// ChiSquared returns a one-way chi-square comparator with the given
// offset. The offset is added to every cell of both histograms before the
// test; morphs routinely contain zero counts, and the test statistic is
// undefined for zero expected frequencies. Degenerate inputs yield p = 0,
// so such morphs never merge with anything.
func ChiSquared(offset float64) Comparator {
	return func(obs, exp []float64) float64 {
		if len(obs) != len(exp) || len(obs) < 2 {
			return 0
		}
		stat := 0.0
		for i, o := range obs {
			e := exp[i] + offset
			if e <= 0 {
				return 0
			}
			d := o + offset - e
			stat += d * d / e
		}
		if math.IsNaN(stat) || math.IsInf(stat, 0) {
			return 0
		}
		dist := distuv.ChiSquared{K: float64(len(obs) - 1)}
		return dist.Survival(stat)
	}
}
