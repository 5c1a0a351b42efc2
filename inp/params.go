// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the reconstruction parameters read from a JSON file
package inp

import (
	"encoding/json"
	"fmt"

	"github.com/adamrupe/Emergent-Organization/cluster"
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/lightcone"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Params holds all inference parameters for one reconstruction run
type Params struct {

	// lightcone template
	PastDepth   int `json:"pastdepth"`   // depth of the past lightcones
	FutureDepth int `json:"futuredepth"` // depth of the future lightcones
	C           int `json:"c"`           // finite propagation speed used for inference

	// lightcone clustering
	PastK       int     `json:"pastk"`       // number of past lightcone clusters
	FutureK     int     `json:"futurek"`     // number of future lightcone clusters
	MaxItPast   int     `json:"maxitpast"`   // max k-means iterations for pasts
	MaxItFuture int     `json:"maxitfuture"` // max k-means iterations for futures
	InitPast    string  `json:"initpast"`    // "default", "random", or "plus_plus"
	InitFuture  string  `json:"initfuture"`  // "default", "random", or "plus_plus"
	Decay       string  `json:"decay"`       // "none", "space", "time", or "spacetime"
	PastDecay   float64 `json:"pastdecay"`   // exponential decay rate for past lightcone distance
	FutureDecay float64 `json:"futuredecay"` // exponential decay rate for future lightcone distance

	// state reconstruction
	Pval        float64 `json:"pval"`        // p-value threshold for morph equivalence
	ChiSqOffset float64 `json:"chisqoffset"` // offset added to counts in the chi-square test

	// run options
	Boundary    string `json:"boundary"`    // "open" or "periodic"
	Distributed bool   `json:"distributed"` // reconstruct over a worker group
	Seed        int    `json:"seed"`        // seed for random/plus_plus initialization
	PadTemporal bool   `json:"padtemporal"` // re-pad the temporal margin in the causal filter
	Verbose     bool   `json:"verbose"`     // stage messages on rank 0
}

// NewParams returns parameters with default values
func NewParams() *Params {
	return &Params{
		C:           1,
		MaxItPast:   200,
		MaxItFuture: 200,
		InitPast:    "default",
		InitFuture:  "default",
		Decay:       "none",
		Pval:        0.05,
		ChiSqOffset: 10,
		Boundary:    "open",
		PadTemporal: true,
	}
}

// ReadParams reads a parameters (.json) file. Absent keys keep their
// default values.
func ReadParams(filenamepath string) *Params {
	b, err := io.ReadFile(filenamepath)
	if err != nil {
		chk.Panic("cannot read parameters file %q:\n%v", filenamepath, err)
	}
	p := NewParams()
	if err := json.Unmarshal(b, p); err != nil {
		chk.Panic("cannot parse parameters file %q:\n%v", filenamepath, err)
	}
	return p
}

// Validate checks all parameter values, returning the first problem found
func (o *Params) Validate() error {
	if o.PastDepth < 0 || o.FutureDepth < 0 {
		return fmt.Errorf("inp: lightcone depths must be non-negative (pastdepth=%d, futuredepth=%d)", o.PastDepth, o.FutureDepth)
	}
	if o.C < 1 {
		return fmt.Errorf("inp: propagation speed must be at least 1 (c=%d)", o.C)
	}
	if o.PastK < 1 || o.FutureK < 1 {
		return fmt.Errorf("%w (pastk=%d, futurek=%d)", cluster.ErrBadK, o.PastK, o.FutureK)
	}
	if o.MaxItPast < 0 || o.MaxItFuture < 0 {
		return fmt.Errorf("inp: max iterations must be non-negative")
	}
	if _, err := lightcone.DecayModeFromString(o.Decay); err != nil {
		return fmt.Errorf("%w (decay=%q)", err, o.Decay)
	}
	if _, err := field.BoundaryFromString(o.Boundary); err != nil {
		return fmt.Errorf("%w (boundary=%q)", err, o.Boundary)
	}
	if _, err := cluster.InitMethodFromString(o.InitPast); err != nil {
		return fmt.Errorf("%w (initpast=%q)", err, o.InitPast)
	}
	if _, err := cluster.InitMethodFromString(o.InitFuture); err != nil {
		return fmt.Errorf("%w (initfuture=%q)", err, o.InitFuture)
	}
	if o.Pval <= 0 || o.Pval >= 1 {
		return fmt.Errorf("inp: p-value threshold must lie in (0, 1) (pval=%g)", o.Pval)
	}
	if o.ChiSqOffset <= 0 {
		return fmt.Errorf("inp: chi-square offset must be positive (chisqoffset=%g)", o.ChiSqOffset)
	}
	return nil
}
