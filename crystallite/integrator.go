// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"math"

	"github.com/cpmech/gosl/tsr"
)

// StateIntegrator advances the constitutive state of one material point over
// one sub-increment, re-integrating the stress consistently, and reports the
// outcome through the point's Converged flag
type StateIntegrator interface {
	Name() string
	Step(o *Solver, p *Point, Δt float64)
}

// stateallocators holds all available state integrators; name => allocator
var stateallocators = map[string]func() StateIntegrator{}

// defAtolA is the fallback absolute tolerance for state components when the
// model does not provide per-variable tolerances
const defAtolA = 1e-8

// collectDot computes the current rate of the internal state variables;
// returns false on evaluation error or non-finite components
func (o *Solver) collectDot(p *Point, dst []float64, Δt float64) bool {
	tsr.Man2Ten(p.s33m, p.Cur.S)
	if err := p.Mdl.CollectDotState(dst, p.s33m, p.Cur.Fe, Δt, p.Sta); err != nil {
		o.diag(p, "dot state evaluation failed: %v", err)
		return false
	}
	if !vecFinite(dst) {
		o.diag(p, "non-finite dot state")
		return false
	}
	return true
}

// applyDeltaState applies the instantaneous state jump to the trailing slice
// of the state vector. A non-finite jump leaves the state untouched and
// demotes the point to not converged.
func (o *Solver) applyDeltaState(p *Point) bool {
	if p.Sta.Ndlt == 0 {
		return true
	}
	tsr.Man2Ten(p.s33m, p.Cur.S)
	if err := p.Mdl.CollectDeltaState(p.Sta.Dlt, p.s33m, p.Cur.Fe, p.Sta); err != nil {
		o.diag(p, "delta state evaluation failed: %v", err)
		return false
	}
	if !vecFinite(p.Sta.Dlt) {
		o.diag(p, "non-finite delta state")
		return false
	}
	off := len(p.Sta.Alp) - p.Sta.Ndlt
	for i, d := range p.Sta.Dlt {
		p.Sta.Alp[off+i] += d
	}
	return true
}

// stageStress refreshes the dependent (derived) state and integrates the
// stress at a fraction of the current sub-increment
func (o *Solver) stageStress(p *Point, Δt, frac float64) bool {
	if err := p.Mdl.UpdateMicro(p.Cur.Fe, p.Sta); err != nil {
		o.diag(p, "microstructure update failed: %v", err)
		return false
	}
	return o.integrateStress(p, Δt, frac)
}

// stateOk checks every component of the state error estimate against the
// absolute/relative tolerances
func (o *Solver) stateOk(p *Point, esti []float64) bool {
	atol := p.Mdl.StateAtol()
	for i, e := range esti {
		a := defAtolA
		if atol != nil {
			a = atol[i]
		}
		if math.Abs(e) > max(a, o.Ctl.RtolA*math.Abs(p.Sta.Alp[i])) {
			return false
		}
	}
	return true
}
