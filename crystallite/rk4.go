// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

// RK4 integrates the constitutive state with the classical 4th-order
// Runge-Kutta scheme, re-integrating the stress at the intermediate stage
// fractions {0.5, 0.5, 1.0}
type RK4 struct {
}

// add integrator to factory
func init() {
	stateallocators["rk4"] = func() StateIntegrator { return new(RK4) }
}

// Name returns the name of this integrator
func (o *RK4) Name() string { return "rk4" }

// Step advances state and stress over one sub-increment
func (o *RK4) Step(s *Solver, p *Point, Δt float64) {
	p.Converged = false
	c := []float64{0.5, 0.5, 1.0}

	// stages
	if !s.collectDot(p, p.rk[0], Δt) {
		return
	}
	for stg := 1; stg < 4; stg++ {
		for i := range p.Sta.Alp {
			p.Sta.Alp[i] = p.StaSub.Alp[i] + p.rk[stg-1][i]*c[stg-1]*Δt
		}
		if !s.stageStress(p, Δt, c[stg-1]) {
			return
		}
		if !s.collectDot(p, p.rk[stg], c[stg-1]*Δt) {
			return
		}
	}

	// weighted combination (1,2,2,1)/6
	for i := range p.Sta.Alp {
		p.Sta.Alp[i] = p.StaSub.Alp[i] + Δt*(p.rk[0][i]+2.0*p.rk[1][i]+2.0*p.rk[2][i]+p.rk[3][i])/6.0
	}
	if !s.applyDeltaState(p) {
		return
	}
	if !s.stageStress(p, Δt, 1) {
		return
	}
	p.Converged = true
}
