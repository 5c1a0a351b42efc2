// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "errors"

var (
	// ErrShape indicates a field that is not a non-empty rectangular 3D
	// array, or one whose interior region is non-positive
	ErrShape = errors.New("field: input field must be a non-empty 3D array with a positive interior")

	// ErrBoundary indicates an unknown boundary condition name
	ErrBoundary = errors.New("field: boundary condition must be either 'open' or 'periodic'")
)
