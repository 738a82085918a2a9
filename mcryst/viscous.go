// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcryst

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Viscous implements an isotropic linear-viscous plastic flow on top of the
// St.Venant-Kirchhoff elastic response:
//  Lp = dev(S) / η
// One internal variable tracks the accumulated shear, with rate ‖dev(S)‖/η.
// With the "nonlocal" parameter set, the model declares nonlocal plasticity
// and therefore joint convergence with all other nonlocal points.
type Viscous struct {
	Hooke
	Eta   float64   // η: viscosity
	Hjump float64   // magnitude of the instantaneous jump of the accumulated shear
	local bool      // purely local plasticity
	atol  []float64 // per-variable absolute tolerance for state integration
}

// add model to factory
func init() {
	allocators["viscous"] = func() Model { return new(Viscous) }
}

// Init initialises model
func (o *Viscous) Init(prms fun.Prms) (err error) {
	o.local = true
	atol := 1e-8
	for _, p := range prms {
		switch p.N {
		case "eta":
			o.Eta = p.V
		case "nonlocal":
			o.local = p.V == 0
		case "atol":
			atol = p.V
		case "hjump":
			o.Hjump = p.V
		}
	}
	if o.Eta <= 0 {
		return chk.Err("viscous: viscosity must be positive: eta=%g", o.Eta)
	}
	o.atol = []float64{atol}
	return o.Hooke.Init(prms)
}

// Nstate returns the number of internal state variables
func (o *Viscous) Nstate() int { return 1 }

// Ndelta returns the number of trailing state variables receiving jumps
func (o *Viscous) Ndelta() int { return 1 }

// IsLocal tells whether the plasticity of this model is purely local
func (o *Viscous) IsLocal() bool { return o.local }

// StateAtol returns the per-variable absolute tolerances for state integration
func (o *Viscous) StateAtol() []float64 { return o.atol }

// PlasticVelGrad computes the plastic velocity gradient and its tangents
func (o *Viscous) PlasticVelGrad(Lp [][]float64, dLpdS, dLpdFi [][][][]float64, S, Fi [][]float64, sta *State) (err error) {
	trS := (S[0][0] + S[1][1] + S[2][2]) / 3.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Lp[i][j] = (S[i][j] - trS*eye(i, j)) / o.Eta
		}
	}
	if dLpdS != nil {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					for l := 0; l < 3; l++ {
						dLpdS[i][j][k][l] = (eye(i, k)*eye(j, l) - eye(i, j)*eye(k, l)/3.0) / o.Eta
						dLpdFi[i][j][k][l] = 0
					}
				}
			}
		}
	}
	return
}

// CollectDotState computes the rate of the internal state variables
func (o *Viscous) CollectDotState(dot []float64, S, Fe [][]float64, Δt float64, sta *State) error {
	trS := (S[0][0] + S[1][1] + S[2][2]) / 3.0
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := S[i][j] - trS*eye(i, j)
			sum += d * d
		}
	}
	dot[0] = math.Sqrt(sum) / o.Eta
	return nil
}

// CollectDeltaState computes the instantaneous jump of the trailing state variables
func (o *Viscous) CollectDeltaState(dlt []float64, S, Fe [][]float64, sta *State) error {
	dlt[0] = o.Hjump
	return nil
}
