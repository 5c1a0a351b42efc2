// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import "errors"

// ErrOrder indicates a pipeline stage invoked before the stage that
// produces its input buffer
var ErrOrder = errors.New("recon: pipeline stage invoked out of order")
