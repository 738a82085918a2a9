// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

// Cash-Karp embedded Runge-Kutta coefficients
var (
	rkckA = [][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{3.0 / 10.0, -9.0 / 10.0, 6.0 / 5.0},
		{-11.0 / 54.0, 5.0 / 2.0, -70.0 / 27.0, 35.0 / 27.0},
		{1631.0 / 55296.0, 175.0 / 512.0, 575.0 / 13824.0, 44275.0 / 110592.0, 253.0 / 4096.0},
	}
	rkckC  = []float64{1.0 / 5.0, 3.0 / 10.0, 3.0 / 5.0, 1.0, 7.0 / 8.0}
	rkckB5 = []float64{37.0 / 378.0, 0, 250.0 / 621.0, 125.0 / 594.0, 0, 512.0 / 1771.0}
	rkckB4 = []float64{2825.0 / 27648.0, 0, 18575.0 / 48384.0, 13525.0 / 55296.0, 277.0 / 14336.0, 1.0 / 4.0}
)

// RKCK45 integrates the constitutive state with the six-stage embedded
// Runge-Kutta-Cash-Karp scheme: the sub-step advances with the 5th-order
// solution (local extrapolation), and the difference between the 5th- and
// 4th-order weighted sums estimates the local error, checked per state
// component against the absolute/relative tolerances
type RKCK45 struct {
}

// add integrator to factory
func init() {
	stateallocators["rkck45"] = func() StateIntegrator { return new(RKCK45) }
}

// Name returns the name of this integrator
func (o *RKCK45) Name() string { return "rkck45" }

// Step advances state and stress over one sub-increment
func (o *RKCK45) Step(s *Solver, p *Point, Δt float64) {
	p.Converged = false

	// stages
	if !s.collectDot(p, p.rk[0], Δt) {
		return
	}
	for stg := 1; stg < 6; stg++ {
		for i := range p.Sta.Alp {
			sum := 0.0
			for j := 0; j < stg; j++ {
				sum += rkckA[stg][j] * p.rk[j][i]
			}
			p.Sta.Alp[i] = p.StaSub.Alp[i] + sum*Δt
		}
		if !s.stageStress(p, Δt, rkckC[stg-1]) {
			return
		}
		if !s.collectDot(p, p.rk[stg], rkckC[stg-1]*Δt) {
			return
		}
	}

	// 5th-order solution and embedded error estimate
	for i := range p.Sta.Alp {
		sum5, sum4 := 0.0, 0.0
		for j := 0; j < 6; j++ {
			sum5 += rkckB5[j] * p.rk[j][i]
			sum4 += rkckB4[j] * p.rk[j][i]
		}
		p.Sta.Alp[i] = p.StaSub.Alp[i] + sum5*Δt
		p.aerr[i] = (sum5 - sum4) * Δt
	}
	if !s.stateOk(p, p.aerr) {
		return
	}
	if !s.applyDeltaState(p) {
		return
	}
	if !s.stageStress(p, Δt, 1) {
		return
	}
	p.Converged = true
}
