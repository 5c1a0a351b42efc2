// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package par provides the collective communication capability used by the
// distributed reconstruction pipeline: barriers, elementwise sum
// reductions, and root broadcasts over a group of workers
package par

import "errors"

// ErrCollective indicates that an underlying barrier, reduction, or
// broadcast could not complete; fatal to the pipeline invocation
var ErrCollective = errors.New("par: collective operation failed")

// Communicator is the capability required of a worker group. The pipeline
// only suspends at these operations; everything between collectives is
// local and CPU-bound.
type Communicator interface {

	// Rank returns this worker's id within the group
	Rank() int

	// Size returns the number of workers in the group
	Size() int

	// Barrier blocks until every worker in the group has arrived
	Barrier() error

	// AllReduceSum replaces x on every worker with the elementwise sum
	// of x across the group
	AllReduceSum(x []float64) error

	// BcastFromRoot replaces x on every worker with rank 0's x
	BcastFromRoot(x []float64) error
}

// Single is the trivial single-worker communicator; all collectives are
// no-ops. Used when the pipeline runs in single-node mode.
type Single struct{}

// Rank returns 0
func (o Single) Rank() int { return 0 }

// Size returns 1
func (o Single) Size() int { return 1 }

// Barrier does nothing
func (o Single) Barrier() error { return nil }

// AllReduceSum does nothing; x is already the global sum
func (o Single) AllReduceSum(x []float64) error { return nil }

// BcastFromRoot does nothing; x is already rank 0's x
func (o Single) BcastFromRoot(x []float64) error { return nil }
