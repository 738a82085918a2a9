// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import "math"

// FixedPoint integrates the constitutive state by fixed-point iteration: a
// first-order predictor followed by repeated stress re-integration and damped
// state corrections until the residual between the predicted state and the
// rate-consistent state is within tolerance. The damping factor blends the
// current and previous rates through a hyperbolic tangent of the angle
// between consecutive rate changes.
type FixedPoint struct {
}

// add integrator to factory
func init() {
	stateallocators["fpi"] = func() StateIntegrator { return new(FixedPoint) }
}

// Name returns the name of this integrator
func (o *FixedPoint) Name() string { return "fpi" }

// Step advances state and stress over one sub-increment
func (o *FixedPoint) Step(s *Solver, p *Point, Δt float64) {
	p.Converged = false
	sta := p.Sta

	// first-order predictor
	if !s.collectDot(p, sta.Dot, Δt) {
		return
	}
	for i := range sta.Alp {
		sta.Alp[i] = p.StaSub.Alp[i] + sta.Dot[i]*Δt
	}
	copy(sta.DotPrev, sta.Dot)
	for i := range sta.DotPrev2 {
		sta.DotPrev2[i] = 0
	}

	// corrector iterations
	for it := 0; it < s.Ctl.NmaxA; it++ {

		if !s.stageStress(p, Δt, 1) {
			return
		}
		copy(sta.DotPrev2, sta.DotPrev)
		copy(sta.DotPrev, sta.Dot)
		if !s.collectDot(p, sta.Dot, Δt) {
			return
		}

		// rate damping from the angle between consecutive rate changes
		damper := 1.0
		if it > 0 {
			var d12, d22, d11 float64
			for i := range sta.Dot {
				d12 += (sta.Dot[i] - sta.DotPrev[i]) * (sta.DotPrev[i] - sta.DotPrev2[i])
				d22 += (sta.DotPrev[i] - sta.DotPrev2[i]) * (sta.DotPrev[i] - sta.DotPrev2[i])
				d11 += sta.Dot[i] * sta.DotPrev[i]
			}
			if d22 > 0 && (d12 < 0 || d11 < 0) {
				damper = max(0.75, 0.75+0.25*math.Tanh(2.0-4.0*d12/d22))
			}
		}

		// damped correction and residual check
		for i := range sta.Alp {
			sta.Dot[i] = damper*sta.Dot[i] + (1.0-damper)*sta.DotPrev[i]
			r := sta.Alp[i] - p.StaSub.Alp[i] - sta.Dot[i]*Δt
			sta.Alp[i] -= r
			p.aerr[i] = r
		}
		if s.stateOk(p, p.aerr) {
			if !s.applyDeltaState(p) {
				return
			}
			p.Converged = true
			return
		}
	}
	s.diag(p, "max number of state iterations reached")
}
