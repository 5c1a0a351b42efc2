// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "errors"

var (
	// ErrEmptyInput indicates a matrix with no rows
	ErrEmptyInput = errors.New("cluster: input matrix must have at least one row")

	// ErrBadK indicates K < 1 or K larger than the number of rows
	ErrBadK = errors.New("cluster: number of clusters must be between 1 and the number of rows")

	// ErrInitMethod indicates an unknown initialization method name
	ErrInitMethod = errors.New("cluster: init method must be 'default', 'random', or 'plus_plus'")

	// ErrNumeric indicates that initialization could not find enough
	// distinct seed rows
	ErrNumeric = errors.New("cluster: k-means initialization failed to find K distinct seeds")
)
