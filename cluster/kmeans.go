// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cluster implements Lloyd k-means over tall matrices of lightcone
// vectors, with optional distributed centroid reduction across workers
package cluster

import (
	"math"
	"runtime"
	"sync"

	"github.com/adamrupe/Emergent-Organization/par"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

// InitMethod selects the centroid initialization scheme
type InitMethod int

const (
	// InitDefault seeds with the first K pairwise-distinct rows;
	// deterministic without a random source
	InitDefault InitMethod = iota

	// InitRandom seeds with K rows drawn uniformly without replacement
	InitRandom

	// InitPlusPlus seeds with D²-weighted sampling (k-means++)
	InitPlusPlus
)

// InitMethodFromString parses an initialization method name
func InitMethodFromString(name string) (m InitMethod, err error) {
	switch name {
	case "default":
		m = InitDefault
	case "random":
		m = InitRandom
	case "plus_plus":
		m = InitPlusPlus
	default:
		err = ErrInitMethod
	}
	return
}

// KMeans clusters the rows of a matrix into K groups under Euclidean
// distance. Convergence (Compute) and assignment (Assign) are separate
// passes so that, in distributed mode, every worker can first agree on the
// centroid set and then label its own shard locally.
type KMeans struct {
	K     int              // number of clusters
	MaxIt int              // maximum Lloyd iterations
	Init  InitMethod       // centroid initialization scheme
	Comm  par.Communicator // worker group; nil means single-node
}

// Compute runs Lloyd iterations on X until the assignments stop changing
// or MaxIt is reached, and returns the centroids. In distributed mode the
// initial centroids are chosen on rank 0 and broadcast, and the
// per-iteration sums are reduced across the group, so every worker returns
// the same centroid set.
func (o *KMeans) Compute(X [][]float64) (centroids [][]float64, err error) {

	// validate
	n := len(X)
	if n < 1 {
		return nil, ErrEmptyInput
	}
	if o.K < 1 || o.K > n {
		return nil, ErrBadK
	}
	ncols := len(X[0])
	comm := o.comm()

	// initial centroids, agreed across the group
	centroids = la.MatAlloc(o.K, ncols)
	if comm.Rank() == 0 {
		var seeds [][]float64
		seeds, err = o.initCentroids(X)
		if err != nil {
			return nil, err
		}
		for k := 0; k < o.K; k++ {
			copy(centroids[k], seeds[k])
		}
	}
	if err = bcastMat(comm, centroids); err != nil {
		return nil, err
	}

	// Lloyd iterations
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	sums := la.MatAlloc(o.K, ncols)
	counts := make([]float64, o.K)
	buf := make([]float64, o.K*ncols+o.K+1) // sums + counts + changed
	for it := 0; it < o.MaxIt; it++ {

		// local assignment and accumulation
		la.MatFill(sums, 0)
		for k := range counts {
			counts[k] = 0
		}
		changed := 0
		for i, row := range X {
			best := Nearest(row, centroids)
			if best != labels[i] {
				changed++
				labels[i] = best
			}
			for j, v := range row {
				sums[best][j] += v
			}
			counts[best]++
		}

		// combine across the group
		p := 0
		for k := 0; k < o.K; k++ {
			p += copy(buf[p:], sums[k])
		}
		p += copy(buf[p:], counts)
		buf[p] = float64(changed)
		if err = comm.AllReduceSum(buf); err != nil {
			return nil, err
		}

		// recompute centroids; empty clusters keep their previous one
		p = 0
		for k := 0; k < o.K; k++ {
			cnt := buf[o.K*ncols+k]
			if cnt > 0 {
				for j := 0; j < ncols; j++ {
					centroids[k][j] = buf[p+j] / cnt
				}
			}
			p += ncols
		}
		if buf[o.K*ncols+o.K] == 0 { // no assignment changed anywhere
			break
		}
	}
	return
}

// Assign labels each row of X with the index of its nearest centroid.
// This is the MaxIt = 0 pass run after Compute; ties break to the lowest
// centroid index.
func (o *KMeans) Assign(X, centroids [][]float64) []int {
	labels := make([]int, len(X))
	nw := runtime.NumCPU()
	if nw > len(X) {
		nw = len(X)
	}
	if nw < 1 {
		return labels
	}
	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(X); i += nw {
				labels[i] = Nearest(X[i], centroids)
			}
		}(w)
	}
	wg.Wait()
	return labels
}

// Nearest returns the index of the centroid closest to x under squared
// Euclidean distance, lowest index on ties
func Nearest(x []float64, centroids [][]float64) (best int) {
	dmin := math.Inf(1)
	for k, cen := range centroids {
		d := sqDist(x, cen)
		if d < dmin {
			dmin = d
			best = k
		}
	}
	return
}

// ApplyDecay scales the columns of X by the elementwise square root of w.
// Squared Euclidean distance in the scaled space then equals
// Σ_i w_i・(x_i - y_i)², i.e. exponentially decayed spacetime distance.
func ApplyDecay(X [][]float64, w []float64) {
	root := make([]float64, len(w))
	for i, v := range w {
		root[i] = math.Sqrt(v)
	}
	for _, row := range X {
		for j := range row {
			row[j] *= root[j]
		}
	}
}

// auxiliary ///////////////////////////////////////////////////////////////

func (o *KMeans) comm() par.Communicator {
	if o.Comm == nil {
		return par.Single{}
	}
	return o.Comm
}

// initCentroids chooses the K seed rows on the calling worker
func (o *KMeans) initCentroids(X [][]float64) ([][]float64, error) {
	switch o.Init {
	case InitRandom:
		return initRandom(X, o.K), nil
	case InitPlusPlus:
		return initPlusPlus(X, o.K)
	}
	return initDefault(X, o.K), nil
}

// initDefault takes the first K pairwise-distinct rows; if X holds fewer
// distinct rows than K the remaining seeds repeat earlier rows, which
// leaves the surplus clusters empty
func initDefault(X [][]float64, K int) [][]float64 {
	seeds := make([][]float64, 0, K)
	for _, row := range X {
		if len(seeds) == K {
			break
		}
		dup := false
		for _, s := range seeds {
			if equalRows(row, s) {
				dup = true
				break
			}
		}
		if !dup {
			seeds = append(seeds, row)
		}
	}
	for i := 0; len(seeds) < K; i++ {
		seeds = append(seeds, X[i%len(X)])
	}
	return seeds
}

// initRandom draws K row indices without replacement from the seeded
// global random source
func initRandom(X [][]float64, K int) [][]float64 {
	n := len(X)
	taken := make(map[int]bool, K)
	seeds := make([][]float64, 0, K)
	for len(seeds) < K {
		i := rnd.Int(0, n-1)
		if taken[i] {
			continue
		}
		taken[i] = true
		seeds = append(seeds, X[i])
	}
	return seeds
}

// initPlusPlus implements k-means++ seeding: the first seed is drawn
// uniformly, each further seed with probability proportional to its
// squared distance to the nearest seed so far
func initPlusPlus(X [][]float64, K int) ([][]float64, error) {
	n := len(X)
	seeds := make([][]float64, 0, K)
	seeds = append(seeds, X[rnd.Int(0, n-1)])
	d2 := make([]float64, n)
	for i, row := range X {
		d2[i] = sqDist(row, seeds[0])
	}
	for len(seeds) < K {
		total := 0.0
		for _, d := range d2 {
			total += d
		}
		if total == 0 {
			// fewer distinct rows than K; no further seed can be found
			return nil, ErrNumeric
		}
		r := rnd.Float64(0, total)
		acc := 0.0
		pick := -1
		for i, d := range d2 {
			if d == 0 {
				continue
			}
			pick = i
			acc += d
			if acc >= r {
				break
			}
		}
		seeds = append(seeds, X[pick])
		for i, row := range X {
			if d := sqDist(row, X[pick]); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return seeds, nil
}

// bcastMat broadcasts a matrix from rank 0 to the whole group
func bcastMat(comm par.Communicator, m [][]float64) error {
	if comm.Size() == 1 {
		return nil
	}
	ncols := len(m[0])
	flat := make([]float64, len(m)*ncols)
	p := 0
	for _, row := range m {
		p += copy(flat[p:], row)
	}
	if err := comm.BcastFromRoot(flat); err != nil {
		return err
	}
	p = 0
	for _, row := range m {
		copy(row, flat[p:p+ncols])
		p += ncols
	}
	return nil
}

func sqDist(x, y []float64) (d float64) {
	for i, v := range x {
		e := v - y[i]
		d += e * e
	}
	return
}

func equalRows(x, y []float64) bool {
	for i, v := range x {
		if v != y[i] {
			return false
		}
	}
	return true
}
