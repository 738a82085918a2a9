// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the numerical control input data read from a JSON file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Control holds the numerical control parameters driving the crystallite
// stress and state integration
type Control struct {

	// stress integration
	AtolS     float64 `json:"atols"`     // absolute tolerance for stress (velocity gradient) residuals
	RtolS     float64 `json:"rtols"`     // relative tolerance for stress (velocity gradient) residuals
	NmaxS     int     `json:"nmaxs"`     // max number of iterations of the plastic (inner) Newton loop
	NmaxL     int     `json:"nmaxl"`     // max number of iterations of the intermediate (outer) Newton loop
	NjacS     int     `json:"njacs"`     // recompute the Newton Jacobian every njacs improving iterations
	Nls       int     `json:"nls"`       // max number of line-search step halvings
	UnitDetFp bool    `json:"unitdetfp"` // renormalise updated inverse plastic deformation gradient to unit determinant

	// state integration
	Integ string  `json:"integ"` // state integrator: "fpi", "euler", "adpeuler", "rk4" or "rkck45"
	RtolA float64 `json:"rtola"` // relative tolerance for state residuals
	NmaxA int     `json:"nmaxa"` // max number of iterations of the fixed-point state loop

	// substepping
	Sdiv float64 `json:"sdiv"` // initial subdivision of the load increment; subStep starts at 1/sdiv
	Sinc float64 `json:"sinc"` // sub-step growth factor after a converged sub-step
	Sdec float64 `json:"sdec"` // sub-step shrink factor after a failed sub-step
	Smin float64 `json:"smin"` // minimum sub-step size; below this the point is abandoned

	// execution
	Nproc int  `json:"nproc"` // number of workers; 0 means all CPUs
	Verb  bool `json:"verb"`  // verbose trace of failures and cutbacks
}

// NewControl returns control data with default values
func NewControl() *Control {
	return &Control{
		AtolS:     1e-9,
		RtolS:     1e-6,
		NmaxS:     40,
		NmaxL:     40,
		NjacS:     1,
		Nls:       8,
		UnitDetFp: true,
		Integ:     "fpi",
		RtolA:     1e-6,
		NmaxA:     20,
		Sdiv:      1,
		Sinc:      1.5,
		Sdec:      0.25,
		Smin:      1e-3,
	}
}

// ReadControl reads control data from a JSON file; missing fields keep their
// default values
func ReadControl(fn string) (*Control, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read control file %q:\n%v", fn, err)
	}
	ctl := NewControl()
	err = json.Unmarshal(b, ctl)
	if err != nil {
		return nil, chk.Err("cannot parse control file %q:\n%v", fn, err)
	}
	err = ctl.Validate()
	if err != nil {
		return nil, err
	}
	return ctl, nil
}

// Validate checks the consistency of the control parameters
func (o *Control) Validate() (err error) {
	switch {
	case o.AtolS <= 0 || o.RtolS <= 0:
		err = chk.Err("stress tolerances must be positive: atols=%g, rtols=%g", o.AtolS, o.RtolS)
	case o.RtolA <= 0:
		err = chk.Err("state tolerance must be positive: rtola=%g", o.RtolA)
	case o.NmaxS < 1 || o.NmaxL < 1 || o.NmaxA < 1:
		err = chk.Err("iteration limits must be at least 1: nmaxs=%d, nmaxl=%d, nmaxa=%d", o.NmaxS, o.NmaxL, o.NmaxA)
	case o.NjacS < 1:
		err = chk.Err("Jacobian refresh interval must be at least 1: njacs=%d", o.NjacS)
	case o.Nls < 0:
		err = chk.Err("number of line-search halvings cannot be negative: nls=%d", o.Nls)
	case o.Sdiv < 1:
		err = chk.Err("initial subdivision must be at least 1: sdiv=%g", o.Sdiv)
	case o.Sinc < 1:
		err = chk.Err("sub-step growth factor must be at least 1: sinc=%g", o.Sinc)
	case o.Sdec <= 0 || o.Sdec >= 1:
		err = chk.Err("sub-step shrink factor must be within (0,1): sdec=%g", o.Sdec)
	case o.Smin <= 0 || o.Smin > 1:
		err = chk.Err("minimum sub-step must be within (0,1]: smin=%g", o.Smin)
	case o.Nproc < 0:
		err = chk.Err("number of workers cannot be negative: nproc=%d", o.Nproc)
	}
	return
}
