// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import "github.com/cpmech/gosl/mpi"

// MPIComm implements Communicator over MPI. mpi.Start must have been
// called by the driver before constructing one, and mpi.Stop after the
// pipeline finishes.
type MPIComm struct {
	work []float64 // workspace for reductions
}

// NewMPIComm returns a Communicator over the MPI world group
func NewMPIComm() *MPIComm {
	return new(MPIComm)
}

// Rank returns this process' MPI rank
func (o *MPIComm) Rank() int { return mpi.Rank() }

// Size returns the number of MPI processes
func (o *MPIComm) Size() int { return mpi.Size() }

// Barrier blocks until all processes arrive
func (o *MPIComm) Barrier() error {
	mpi.Barrier()
	return nil
}

// AllReduceSum sums x elementwise across all processes, in place
func (o *MPIComm) AllReduceSum(x []float64) error {
	if len(o.work) < len(x) {
		o.work = make([]float64, len(x))
	}
	mpi.AllReduceSum(x, o.work[:len(x)])
	return nil
}

// BcastFromRoot replaces x with rank 0's x on all processes
func (o *MPIComm) BcastFromRoot(x []float64) error {
	mpi.BcastFromRoot(x)
	return nil
}
