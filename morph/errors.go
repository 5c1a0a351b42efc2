// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package morph

import "errors"

var (
	// ErrEmptyTable indicates a contingency table with no past clusters
	ErrEmptyTable = errors.New("morph: contingency table must have at least one past cluster")

	// ErrLabelMismatch indicates past and future label vectors of
	// different lengths
	ErrLabelMismatch = errors.New("morph: past and future label vectors must have the same length")
)
