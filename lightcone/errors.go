// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lightcone

import "errors"

// ErrDecayMode indicates an unknown decay mode name
var ErrDecayMode = errors.New("lightcone: decay mode must be 'none', 'space', 'time', or 'spacetime'")
