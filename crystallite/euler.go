// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

// Euler integrates the constitutive state with a single explicit first-order
// update; cheapest and least accurate of the strategies
type Euler struct {
}

// add integrator to factory
func init() {
	stateallocators["euler"] = func() StateIntegrator { return new(Euler) }
}

// Name returns the name of this integrator
func (o *Euler) Name() string { return "euler" }

// Step advances state and stress over one sub-increment
func (o *Euler) Step(s *Solver, p *Point, Δt float64) {
	p.Converged = false
	if !s.collectDot(p, p.Sta.Dot, Δt) {
		return
	}
	for i := range p.Sta.Alp {
		p.Sta.Alp[i] = p.StaSub.Alp[i] + p.Sta.Dot[i]*Δt
	}
	if !s.applyDeltaState(p) {
		return
	}
	if !s.stageStress(p, Δt, 1) {
		return
	}
	p.Converged = true
}
