// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcryst

// State holds the internal (history) variables of one material point,
// including the rate data needed to update them
type State struct {

	// essential
	Alp []float64 // α: internal variables [nalp]

	// rates (for state integration)
	Dot      []float64 // α̇: current rate of internal variables [nalp]
	DotPrev  []float64 // previous rate (for convergence damping) [nalp]
	DotPrev2 []float64 // rate before the previous one [nalp]

	// instantaneous jump (applies to the trailing ndlt variables of α)
	Dlt  []float64 // Δα: jump of trailing variables [ndlt]
	Ndlt int       // number of trailing variables receiving jumps
}

// NewState allocates a state structure
//  nalp -- number of internal variables
//  ndlt -- number of trailing variables receiving instantaneous jumps
func NewState(nalp, ndlt int) *State {
	return &State{
		Alp:      make([]float64, nalp),
		Dot:      make([]float64, nalp),
		DotPrev:  make([]float64, nalp),
		DotPrev2: make([]float64, nalp),
		Dlt:      make([]float64, ndlt),
		Ndlt:     ndlt,
	}
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Alp, other.Alp)
	copy(o.Dot, other.Dot)
	copy(o.DotPrev, other.DotPrev)
	copy(o.DotPrev2, other.DotPrev2)
	copy(o.Dlt, other.Dlt)
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Alp), o.Ndlt)
	other.Set(o)
	return other
}
