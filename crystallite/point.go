// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/samuel-hg-engel/DAMASK-sub002/mcryst"
)

// Mech holds the mechanical (configuration) variables of one material point
type Mech struct {
	F     [][]float64 // total deformation gradient
	Fp    [][]float64 // plastic deformation gradient
	InvFp [][]float64 // inverse of Fp
	Fi    [][]float64 // intermediate (inelastic) deformation gradient
	InvFi [][]float64 // inverse of Fi
	Fe    [][]float64 // elastic remainder: Fe = F·invFp·invFi
	Lp    [][]float64 // plastic velocity gradient
	Li    [][]float64 // intermediate velocity gradient
	S     []float64   // second Piola-Kirchhoff stress, Mandel basis [6]
	P     [][]float64 // first Piola-Kirchhoff (work-conjugate) stress
}

// NewMech allocates mechanical variables with unit deformation and zero stress
func NewMech() *Mech {
	o := &Mech{
		F:     la.MatAlloc(3, 3),
		Fp:    la.MatAlloc(3, 3),
		InvFp: la.MatAlloc(3, 3),
		Fi:    la.MatAlloc(3, 3),
		InvFi: la.MatAlloc(3, 3),
		Fe:    la.MatAlloc(3, 3),
		Lp:    la.MatAlloc(3, 3),
		Li:    la.MatAlloc(3, 3),
		S:     make([]float64, 6),
		P:     la.MatAlloc(3, 3),
	}
	m33ident(o.F)
	m33ident(o.Fp)
	m33ident(o.InvFp)
	m33ident(o.Fi)
	m33ident(o.InvFi)
	m33ident(o.Fe)
	return o
}

// Set copies mechanical variables
//  Note: this and other must have been pre-allocated
func (o *Mech) Set(other *Mech) {
	la.MatCopy(o.F, 1, other.F)
	la.MatCopy(o.Fp, 1, other.Fp)
	la.MatCopy(o.InvFp, 1, other.InvFp)
	la.MatCopy(o.Fi, 1, other.Fi)
	la.MatCopy(o.InvFi, 1, other.InvFi)
	la.MatCopy(o.Fe, 1, other.Fe)
	la.MatCopy(o.Lp, 1, other.Lp)
	la.MatCopy(o.Li, 1, other.Li)
	copy(o.S, other.S)
	la.MatCopy(o.P, 1, other.P)
}

// GetCopy returns a copy of these mechanical variables
func (o *Mech) GetCopy() *Mech {
	other := NewMech()
	other.Set(o)
	return other
}

// Point is one (element, integration point, grain) material point. All fields
// are allocated once by NewPoint; during an increment they are mutated only
// by the worker owning this point.
type Point struct {

	// identity
	Elem   int // element index
	Ipt    int // integration point index
	Grain  int // grain index
	Handle int // dense index in the solver's point arena

	// constitutive model
	Mdl   mcryst.Model
	Local bool // purely local plasticity

	// mechanical variables: converged-previous-increment, increment-start,
	// sub-increment-start and current-trial copies
	Cvg *Mech
	Beg *Mech
	Sub *Mech
	Cur *Mech

	// constitutive state with the same temporal roles
	StaCvg *mcryst.State
	StaBeg *mcryst.State
	StaSub *mcryst.State
	Sta    *mcryst.State

	// imposed deformation gradient at the end of the current increment
	Ftgt [][]float64

	// outbound stress-deformation tangent
	DPdF [][][][]float64

	// substepping
	SubFrac   float64 // progress through the increment, within [0,1]
	SubStep   float64 // size of the next sub-increment; SubFrac+SubStep <= 1
	Requested bool    // point takes part in the current increment
	Todo      bool    // point still needs iterations
	Converged bool    // outcome of the last sub-step (or of the increment, at the end)
	first     bool    // first state-integration pass of the current increment

	// stress-solve workspace
	wFt       [][]float64     // interpolated deformation gradient
	wA        [][]float64     // F·invFp at the sub-increment start
	wB        [][]float64     // I - dt·Lp
	wAB       [][]float64     // A·B
	wInvFiNew [][]float64     // trial inverse intermediate deformation
	wFiNew    [][]float64     // trial intermediate deformation
	wFe       [][]float64     // trial elastic deformation
	wS33      [][]float64     // full representation of the stress
	wLpc      [][]float64     // constitutive plastic velocity gradient
	wLic      [][]float64     // constitutive intermediate velocity gradient
	wLpLast   [][]float64     // last accepted Lp guess (line search)
	wLiLast   [][]float64     // last accepted Li guess (line search)
	wInvFpNew [][]float64     // updated inverse plastic deformation
	wFpNew    [][]float64     // updated plastic deformation
	wT1, wT2  [][]float64     // temporaries
	dSdFe     [][][][]float64 // stress tangents from the constitutive model
	dSdFi     [][][][]float64
	dLpdS     [][][][]float64
	dLpdFi    [][][][]float64
	dLidS     [][][][]float64
	dLidFi    [][][][]float64
	dFedL     [][][][]float64 // geometric tangent of Fe w.r.t the active velocity gradient
	dFidL     [][][][]float64
	w99a      [][]float64 // 9x9 workspace for the Newton Jacobian
	w99b      [][]float64
	w99c      [][]float64
	wJ        [][]float64 // Newton Jacobian of the Lp loop
	wJi       [][]float64 // inverse of the Lp Jacobian
	wJLi      [][]float64 // Newton Jacobian of the Li loop
	wJiLi     [][]float64 // inverse of the Li Jacobian
	wR9       []float64   // flattened residual
	wD9       []float64   // flattened Newton direction (Lp loop)
	wD9Li     []float64   // flattened Newton direction (Li loop)

	// state-integration workspace
	rk   [][]float64 // stage rates [6][nstate]
	aerr []float64   // state error estimate [nstate]
	s33m [][]float64 // full representation of the Mandel stress
}

// NewPoint allocates a material point with unit deformation, zero stress and
// zero constitutive state
func NewPoint(elem, ipt, grain int, mdl mcryst.Model) *Point {
	nalp := mdl.Nstate()
	ndlt := mdl.Ndelta()
	o := &Point{
		Elem:      elem,
		Ipt:       ipt,
		Grain:     grain,
		Mdl:       mdl,
		Local:     mdl.IsLocal(),
		Cvg:       NewMech(),
		Beg:       NewMech(),
		Sub:       NewMech(),
		Cur:       NewMech(),
		StaCvg:    mcryst.NewState(nalp, ndlt),
		StaBeg:    mcryst.NewState(nalp, ndlt),
		StaSub:    mcryst.NewState(nalp, ndlt),
		Sta:       mcryst.NewState(nalp, ndlt),
		Ftgt:      la.MatAlloc(3, 3),
		DPdF:      utl.Deep4alloc(3, 3, 3, 3),
		Requested: true,

		wFt:       la.MatAlloc(3, 3),
		wA:        la.MatAlloc(3, 3),
		wB:        la.MatAlloc(3, 3),
		wAB:       la.MatAlloc(3, 3),
		wInvFiNew: la.MatAlloc(3, 3),
		wFiNew:    la.MatAlloc(3, 3),
		wFe:       la.MatAlloc(3, 3),
		wS33:      la.MatAlloc(3, 3),
		wLpc:      la.MatAlloc(3, 3),
		wLic:      la.MatAlloc(3, 3),
		wLpLast:   la.MatAlloc(3, 3),
		wLiLast:   la.MatAlloc(3, 3),
		wInvFpNew: la.MatAlloc(3, 3),
		wFpNew:    la.MatAlloc(3, 3),
		wT1:       la.MatAlloc(3, 3),
		wT2:       la.MatAlloc(3, 3),
		dSdFe:     utl.Deep4alloc(3, 3, 3, 3),
		dSdFi:     utl.Deep4alloc(3, 3, 3, 3),
		dLpdS:     utl.Deep4alloc(3, 3, 3, 3),
		dLpdFi:    utl.Deep4alloc(3, 3, 3, 3),
		dLidS:     utl.Deep4alloc(3, 3, 3, 3),
		dLidFi:    utl.Deep4alloc(3, 3, 3, 3),
		dFedL:     utl.Deep4alloc(3, 3, 3, 3),
		dFidL:     utl.Deep4alloc(3, 3, 3, 3),
		w99a:      la.MatAlloc(9, 9),
		w99b:      la.MatAlloc(9, 9),
		w99c:      la.MatAlloc(9, 9),
		wJ:        la.MatAlloc(9, 9),
		wJi:       la.MatAlloc(9, 9),
		wJLi:      la.MatAlloc(9, 9),
		wJiLi:     la.MatAlloc(9, 9),
		wR9:       make([]float64, 9),
		wD9:       make([]float64, 9),
		wD9Li:     make([]float64, 9),

		rk:   la.MatAlloc(6, nalp),
		aerr: make([]float64, nalp),
		s33m: la.MatAlloc(3, 3),
	}
	m33ident(o.Ftgt)
	return o
}

// Impose sets the deformation gradient imposed at the end of the next increment
func (o *Point) Impose(F [][]float64) {
	la.MatCopy(o.Ftgt, 1, F)
}
