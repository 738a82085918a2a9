// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mcryst implements constitutive models for the crystallite mechanics
// engine. A model supplies the elastic stress response, the plastic and
// intermediate velocity gradients with their tangents, and the rate and jump
// of its internal (history) variables.
package mcryst

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Model defines the capability contract consumed by the crystallite engine.
// Deformation and velocity gradients are full 3x3 tensors; the second
// Piola-Kirchhoff stress S is exchanged here as a full (symmetric) 3x3
// tensor. Rank-4 tangents are [3][3][3][3].
type Model interface {

	// Init initialises model with parameters
	Init(prms fun.Prms) error

	// Nstate returns the number of internal state variables
	Nstate() int

	// Ndelta returns the number of trailing state variables receiving
	// instantaneous (non-rate) jumps
	Ndelta() int

	// IsLocal tells whether the plasticity of this model is purely local
	IsLocal() bool

	// StateAtol returns the per-variable absolute tolerances for state
	// integration [nstate]
	StateAtol() []float64

	// StressAndTangents computes the second Piola-Kirchhoff stress in the
	// intermediate configuration and its tangents w.r.t Fe and Fi
	StressAndTangents(S [][]float64, dSdFe, dSdFi [][][][]float64, Fe, Fi [][]float64, sta *State) error

	// PlasticVelGrad computes the plastic velocity gradient and its tangents
	PlasticVelGrad(Lp [][]float64, dLpdS, dLpdFi [][][][]float64, S, Fi [][]float64, sta *State) error

	// IntermedVelGrad computes the intermediate velocity gradient and its tangents
	IntermedVelGrad(Li [][]float64, dLidS, dLidFi [][][][]float64, S, Fi [][]float64, sta *State) error

	// CollectDotState computes the rate of the internal state variables
	CollectDotState(dot []float64, S, Fe [][]float64, Δt float64, sta *State) error

	// CollectDeltaState computes the instantaneous jump of the trailing
	// state variables
	CollectDeltaState(dlt []float64, S, Fe [][]float64, sta *State) error

	// UpdateMicro refreshes dependent (derived) quantities from the current
	// state vector; called once per sub-step before stress integration
	UpdateMicro(Fe [][]float64, sta *State) error
}

// GetModel returns a new model from the factory
func GetModel(name string) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find model named %q", name)
	}
	return allocator(), nil
}

// allocators holds all available models; modelname => allocator
var allocators = map[string]func() Model{}
