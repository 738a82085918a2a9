// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcryst

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Hooke implements an isotropic St.Venant-Kirchhoff elastic response:
//  S = λ tr(E) I + 2μ E  with  E = (Feᵀ·Fe − I)/2
// The plastic and intermediate velocity gradients are identically zero and
// there are no internal variables.
type Hooke struct {
	Lam float64 // λ: Lamé parameter
	Mu  float64 // μ: shear modulus
}

// add model to factory
func init() {
	allocators["hooke"] = func() Model { return new(Hooke) }
}

// Init initialises model
func (o *Hooke) Init(prms fun.Prms) (err error) {
	var E, ν float64
	for _, p := range prms {
		switch p.N {
		case "E":
			E = p.V
		case "nu":
			ν = p.V
		case "lam":
			o.Lam = p.V
		case "mu":
			o.Mu = p.V
		case "eta", "nonlocal", "atol", "hjump":
		default:
			return chk.Err("hooke: parameter named %q is incorrect", p.N)
		}
	}
	if E > 0 {
		o.Lam = E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
		o.Mu = E / (2.0 * (1.0 + ν))
	}
	if o.Mu <= 0 {
		return chk.Err("hooke: elastic constants are missing or invalid: lam=%g, mu=%g", o.Lam, o.Mu)
	}
	return
}

// Nstate returns the number of internal state variables
func (o *Hooke) Nstate() int { return 0 }

// Ndelta returns the number of trailing state variables receiving jumps
func (o *Hooke) Ndelta() int { return 0 }

// IsLocal tells whether the plasticity of this model is purely local
func (o *Hooke) IsLocal() bool { return true }

// StateAtol returns the per-variable absolute tolerances for state integration
func (o *Hooke) StateAtol() []float64 { return nil }

// StressAndTangents computes S(Fe) and its tangents
func (o *Hooke) StressAndTangents(S [][]float64, dSdFe, dSdFi [][][][]float64, Fe, Fi [][]float64, sta *State) (err error) {

	// Green-Lagrange strain and its trace
	trE := 0.0
	for m := 0; m < 3; m++ {
		for n := 0; n < 3; n++ {
			e := -0.5 * eye(m, n)
			for k := 0; k < 3; k++ {
				e += 0.5 * Fe[k][m] * Fe[k][n]
			}
			S[m][n] = 2.0 * o.Mu * e
			if m == n {
				trE += e
			}
		}
	}

	// stress
	for m := 0; m < 3; m++ {
		S[m][m] += o.Lam * trE
	}

	// tangents
	if dSdFe != nil {
		for m := 0; m < 3; m++ {
			for n := 0; n < 3; n++ {
				for p := 0; p < 3; p++ {
					for q := 0; q < 3; q++ {
						dSdFe[m][n][p][q] = o.Lam*eye(m, n)*Fe[p][q] + o.Mu*(eye(m, q)*Fe[p][n]+eye(n, q)*Fe[p][m])
						dSdFi[m][n][p][q] = 0
					}
				}
			}
		}
	}
	return
}

// PlasticVelGrad computes the plastic velocity gradient and its tangents
func (o *Hooke) PlasticVelGrad(Lp [][]float64, dLpdS, dLpdFi [][][][]float64, S, Fi [][]float64, sta *State) (err error) {
	zero33(Lp)
	zero3333(dLpdS)
	zero3333(dLpdFi)
	return
}

// IntermedVelGrad computes the intermediate velocity gradient and its tangents
func (o *Hooke) IntermedVelGrad(Li [][]float64, dLidS, dLidFi [][][][]float64, S, Fi [][]float64, sta *State) (err error) {
	zero33(Li)
	zero3333(dLidS)
	zero3333(dLidFi)
	return
}

// CollectDotState computes the rate of the internal state variables
func (o *Hooke) CollectDotState(dot []float64, S, Fe [][]float64, Δt float64, sta *State) error { return nil }

// CollectDeltaState computes the instantaneous jump of the trailing state variables
func (o *Hooke) CollectDeltaState(dlt []float64, S, Fe [][]float64, sta *State) error { return nil }

// UpdateMicro refreshes dependent quantities from the current state vector
func (o *Hooke) UpdateMicro(Fe [][]float64, sta *State) error { return nil }
