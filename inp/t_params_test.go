// Copyright 2020 The Emergent Organization Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adamrupe/Emergent-Organization/cluster"
	"github.com/adamrupe/Emergent-Organization/field"
	"github.com/adamrupe/Emergent-Organization/lightcone"
	"github.com/cpmech/gosl/chk"
)

func verbose() {
	chk.Verbose = true
}

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01. defaults and validation")

	p := NewParams()
	p.PastK, p.FutureK = 4, 8
	chk.IntAssert(p.C, 1)
	chk.IntAssert(p.MaxItPast, 200)
	chk.StrAssert(p.Decay, "none")
	chk.StrAssert(p.Boundary, "open")
	chk.Scalar(tst, "pval default", 1e-15, p.Pval, 0.05)
	chk.Scalar(tst, "offset default", 1e-15, p.ChiSqOffset, 10)
	if !p.PadTemporal {
		tst.Errorf("padtemporal must default to true")
	}
	if err := p.Validate(); err != nil {
		tst.Errorf("defaults must validate:\n%v", err)
	}
}

func Test_params02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params02. each parameter kind maps to its error")

	base := func() *Params {
		p := NewParams()
		p.PastK, p.FutureK = 2, 2
		return p
	}

	p := base()
	p.PastDepth = -1
	if err := p.Validate(); err == nil {
		tst.Errorf("expected error for negative depth")
	}

	p = base()
	p.C = 0
	if err := p.Validate(); err == nil {
		tst.Errorf("expected error for c=0")
	}

	p = base()
	p.PastK = 0
	if err := p.Validate(); !errors.Is(err, cluster.ErrBadK) {
		tst.Errorf("expected ErrBadK, got %v", err)
	}

	p = base()
	p.Decay = "gaussian"
	if err := p.Validate(); !errors.Is(err, lightcone.ErrDecayMode) {
		tst.Errorf("expected ErrDecayMode, got %v", err)
	}

	p = base()
	p.Boundary = "mirror"
	if err := p.Validate(); !errors.Is(err, field.ErrBoundary) {
		tst.Errorf("expected ErrBoundary, got %v", err)
	}

	p = base()
	p.InitFuture = "farthest"
	if err := p.Validate(); !errors.Is(err, cluster.ErrInitMethod) {
		tst.Errorf("expected ErrInitMethod, got %v", err)
	}

	p = base()
	p.Pval = 1.5
	if err := p.Validate(); err == nil {
		tst.Errorf("expected error for pval outside (0,1)")
	}

	p = base()
	p.ChiSqOffset = 0
	if err := p.Validate(); err == nil {
		tst.Errorf("expected error for zero chi-square offset")
	}
}

func Test_params03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params03. reading a parameters file")

	fn := filepath.Join(tst.TempDir(), "recon.json")
	data := `{
		"pastdepth"   : 3,
		"futuredepth" : 2,
		"pastk"       : 4,
		"futurek"     : 10,
		"decay"       : "spacetime",
		"pastdecay"   : 0.05,
		"boundary"    : "periodic",
		"distributed" : true
	}`
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		tst.Errorf("cannot write test file:\n%v", err)
		return
	}

	p := ReadParams(fn)
	chk.IntAssert(p.PastDepth, 3)
	chk.IntAssert(p.FutureDepth, 2)
	chk.IntAssert(p.PastK, 4)
	chk.IntAssert(p.FutureK, 10)
	chk.StrAssert(p.Decay, "spacetime")
	chk.StrAssert(p.Boundary, "periodic")
	chk.Scalar(tst, "pastdecay", 1e-15, p.PastDecay, 0.05)
	if !p.Distributed {
		tst.Errorf("distributed must be read as true")
	}

	// absent keys keep their defaults
	chk.IntAssert(p.MaxItPast, 200)
	chk.Scalar(tst, "pval default kept", 1e-15, p.Pval, 0.05)
	if err := p.Validate(); err != nil {
		tst.Errorf("read parameters must validate:\n%v", err)
	}
}
