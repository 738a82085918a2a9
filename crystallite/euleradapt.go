// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

// EulerAdapt integrates the constitutive state with an Euler predictor and a
// Heun-type corrector contribution: the local truncation error is estimated
// from the two slopes and a rejection surfaces as a failed sub-step, which
// increases the cutback in the substep scheduler
type EulerAdapt struct {
}

// add integrator to factory
func init() {
	stateallocators["adpeuler"] = func() StateIntegrator { return new(EulerAdapt) }
}

// Name returns the name of this integrator
func (o *EulerAdapt) Name() string { return "adpeuler" }

// Step advances state and stress over one sub-increment
func (o *EulerAdapt) Step(s *Solver, p *Point, Δt float64) {
	p.Converged = false

	// Euler predictor
	if !s.collectDot(p, p.Sta.Dot, Δt) {
		return
	}
	for i := range p.Sta.Alp {
		p.aerr[i] = -0.5 * p.Sta.Dot[i] * Δt
		p.Sta.Alp[i] = p.StaSub.Alp[i] + p.Sta.Dot[i]*Δt
	}
	if !s.applyDeltaState(p) {
		return
	}
	if !s.stageStress(p, Δt, 1) {
		return
	}

	// corrector half-step contribution and error estimate
	if !s.collectDot(p, p.Sta.Dot, Δt) {
		return
	}
	for i := range p.Sta.Alp {
		p.aerr[i] += 0.5 * p.Sta.Dot[i] * Δt
	}
	p.Converged = s.stateOk(p, p.aerr)
}
