// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import "sync"

// hub coordinates a group of in-process workers. Contributions to a
// reduction are always combined in ascending rank order, so floating point
// results are deterministic regardless of goroutine scheduling.
type hub struct {
	n      int
	mu     sync.Mutex
	cond   *sync.Cond
	count  int
	gen    int
	closed bool
	parts  [][]float64 // per-rank contribution to the current collective
	result []float64   // combined result, valid until the next sync
}

func newHub(n int) *hub {
	h := &hub{n: n, parts: make([][]float64, n)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// sync is a reusable barrier; the last worker to arrive runs onLast while
// holding the hub lock, then everyone is released
func (h *hub) sync(onLast func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrCollective
	}
	h.count++
	if h.count == h.n {
		if onLast != nil {
			onLast()
		}
		h.count = 0
		h.gen++
		h.cond.Broadcast()
		return nil
	}
	g := h.gen
	for h.gen == g && !h.closed {
		h.cond.Wait()
	}
	if h.closed {
		return ErrCollective
	}
	return nil
}

// close releases all waiting workers with ErrCollective
func (h *hub) close() {
	h.mu.Lock()
	h.closed = true
	h.cond.Broadcast()
	h.mu.Unlock()
}

// Local is one rank of an in-process communicator group. It exists so
// multi-rank runs can be exercised inside a single test binary, without an
// MPI launch; each rank's pipeline runs in its own goroutine.
type Local struct {
	rank int
	h    *hub
}

// NewLocalGroup creates an in-process group of n connected communicators
func NewLocalGroup(n int) []*Local {
	h := newHub(n)
	g := make([]*Local, n)
	for r := 0; r < n; r++ {
		g[r] = &Local{rank: r, h: h}
	}
	return g
}

// Rank returns this worker's id within the group
func (o *Local) Rank() int { return o.rank }

// Size returns the number of workers in the group
func (o *Local) Size() int { return o.h.n }

// Barrier blocks until every worker in the group has arrived
func (o *Local) Barrier() error {
	return o.h.sync(nil)
}

// Abort wakes all workers blocked on a collective with ErrCollective;
// subsequent collectives on the group fail as well
func (o *Local) Abort() {
	o.h.close()
}

// AllReduceSum sums x elementwise across the group, in place
func (o *Local) AllReduceSum(x []float64) error {
	h := o.h
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrCollective
	}
	h.parts[o.rank] = append([]float64(nil), x...)
	h.mu.Unlock()

	err := h.sync(func() {
		h.result = make([]float64, len(h.parts[0]))
		for r := 0; r < h.n; r++ { // rank order, for determinism
			for i, v := range h.parts[r] {
				h.result[i] += v
			}
			h.parts[r] = nil
		}
	})
	if err != nil {
		return err
	}
	copy(x, h.result)

	// nobody may start the next collective before everyone has copied
	return h.sync(nil)
}

// BcastFromRoot replaces x with rank 0's x on all workers
func (o *Local) BcastFromRoot(x []float64) error {
	h := o.h
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrCollective
	}
	if o.rank == 0 {
		h.parts[0] = append([]float64(nil), x...)
	}
	h.mu.Unlock()

	err := h.sync(func() {
		h.result = h.parts[0]
		h.parts[0] = nil
	})
	if err != nil {
		return err
	}
	copy(x, h.result)
	return h.sync(nil)
}
