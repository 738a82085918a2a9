// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
)

func Test_stress01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stress01. purely elastic increment and tangent")

	lam, mu := 400.0, 400.0
	mdl := testmodel(tst, "hooke", fun.Prms{
		&fun.Prm{N: "lam", V: lam},
		&fun.Prm{N: "mu", V: mu},
	})
	if mdl == nil {
		return
	}

	ctl := testctl()
	ctl.Integ = "euler"
	p := NewPoint(0, 0, 0, mdl)
	sol, err := New(ctl, []*Point{p})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// uniaxial stretch
	p.Impose(diagF(1.01, 1, 1))
	if !sol.Advance(1) {
		tst.Errorf("elastic increment must converge\n")
		return
	}
	chk.Scalar(tst, "SubFrac", 1e-17, p.SubFrac, 1)

	// without plastic or intermediate flow the split is trivial
	I := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	chk.Matrix(tst, "Fp", 1e-15, p.Cur.Fp, I)
	chk.Matrix(tst, "Fi", 1e-15, p.Cur.Fi, I)
	chk.Matrix(tst, "Fe", 1e-15, p.Cur.Fe, p.Ftgt)
	chk.Matrix(tst, "Lp", 1e-15, p.Cur.Lp, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	// stress equals the direct elastic evaluation at Fe = F
	e11 := (1.01*1.01 - 1.0) / 2.0
	s11 := (lam + 2.0*mu) * e11
	s22 := lam * e11
	io.Pforan("S = %v\n", p.Cur.S)
	chk.Vector(tst, "S", 1e-12, p.Cur.S, []float64{s11, s22, s22, 0, 0, 0})
	chk.Matrix(tst, "P", 1e-12, p.Cur.P, [][]float64{{1.01 * s11, 0, 0}, {0, s22, 0}, {0, 0, s22}})

	// committed state becomes the new reference
	sol.Commit()
	chk.Vector(tst, "committed S", 1e-17, p.Cvg.S, p.Cur.S)

	// stress-deformation tangent against central differences
	evalP := func(F [][]float64, i, j int) float64 {
		q := NewPoint(0, 0, 0, mdl)
		q.Impose(F)
		s2, e2 := New(ctl, []*Point{q})
		if e2 != nil {
			tst.Errorf("test failed: %v\n", e2)
			return 0
		}
		if !s2.Advance(1) {
			tst.Errorf("perturbed increment must converge\n")
			return 0
		}
		return q.Cur.P[i][j]
	}
	Ftmp := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
						la.MatCopy(Ftmp, 1, p.Ftgt)
						Ftmp[k][l] = x
						return evalP(Ftmp, i, j)
					}, p.Ftgt[k][l], 1e-6)
					chk.AnaNum(tst, io.Sf("dP%d%d/dF%d%d", i, j, k, l), 1e-5, p.DPdF[i][j][k][l], dnum, chk.Verbose)
				}
			}
		}
	}
}

func Test_stress02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stress02. fractional stage keeps the sub-increment target")

	lam, mu := 400.0, 400.0
	mdl := testmodel(tst, "hooke", fun.Prms{
		&fun.Prm{N: "lam", V: lam},
		&fun.Prm{N: "mu", V: mu},
	})
	if mdl == nil {
		return
	}

	p := NewPoint(0, 0, 0, mdl)
	sol, err := New(testctl(), []*Point{p})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// integrate the stress halfway between the sub-increment start (identity)
	// and the trial deformation
	la.MatCopy(p.Cur.F, 1, diagF(1.01, 1, 1))
	if !sol.integrateStress(p, 1, 0.5) {
		tst.Errorf("fractional stress integration must converge\n")
		return
	}
	e11 := (1.005*1.005 - 1.0) / 2.0
	chk.Scalar(tst, "S11 at half stage", 1e-11, p.Cur.S[0], (lam+2.0*mu)*e11)
	chk.Scalar(tst, "S22 at half stage", 1e-11, p.Cur.S[1], lam*e11)

	// the trial deformation gradient must not be overwritten by the stage
	chk.Scalar(tst, "F00 unchanged", 1e-17, p.Cur.F[0][0], 1.01)
	chk.Matrix(tst, "Fe at half stage", 1e-14, p.Cur.Fe, diagF(1.005, 1, 1))
}

func Test_stress03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stress03. zero increment is a fixed point")

	mdl := testmodel(tst, "viscous", fun.Prms{
		&fun.Prm{N: "lam", V: 400},
		&fun.Prm{N: "mu", V: 400},
		&fun.Prm{N: "eta", V: 1},
	})
	if mdl == nil {
		return
	}

	ctl := testctl()
	ctl.Integ = "euler"
	p := NewPoint(0, 0, 0, mdl)
	sol, err := New(ctl, []*Point{p})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// identity target over a vanishing time increment
	if !sol.Advance(1e-12) {
		tst.Errorf("zero increment must converge\n")
		return
	}
	I := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	chk.Scalar(tst, "SubFrac", 1e-17, p.SubFrac, 1)
	chk.Vector(tst, "S", 1e-14, p.Cur.S, []float64{0, 0, 0, 0, 0, 0})
	chk.Matrix(tst, "Fp", 1e-15, p.Cur.Fp, I)
	chk.Scalar(tst, "alp", 1e-14, p.Sta.Alp[0], 0)
}

func Test_stress04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stress04. viscous relaxation under a held stretch")

	mdl := testmodel(tst, "viscous", fun.Prms{
		&fun.Prm{N: "lam", V: 400},
		&fun.Prm{N: "mu", V: 400},
		&fun.Prm{N: "eta", V: 10},
	})
	if mdl == nil {
		return
	}

	p := NewPoint(0, 0, 0, mdl)
	sol, err := New(testctl(), []*Point{p})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// first increment: stretch
	p.Impose(diagF(1.002, 1, 1))
	if !sol.Advance(1) {
		tst.Errorf("first increment must converge\n")
		return
	}
	sol.Commit()
	alp1 := p.StaCvg.Alp[0]
	dev1 := devnorm(p.Cvg.S)
	io.Pforan("after stretch:  alp=%v  |dev(S)|=%v\n", alp1, dev1)
	if alp1 <= 0 {
		tst.Errorf("accumulated shear must be positive after plastic flow\n")
		return
	}

	// second increment: hold the stretch; the deviatoric stress must relax
	// and the accumulated shear must keep growing
	if !sol.Advance(1) {
		tst.Errorf("second increment must converge\n")
		return
	}
	sol.Commit()
	alp2 := p.StaCvg.Alp[0]
	dev2 := devnorm(p.Cvg.S)
	io.Pforan("after holding:  alp=%v  |dev(S)|=%v\n", alp2, dev2)
	if alp2 <= alp1 {
		tst.Errorf("accumulated shear must grow while the stress relaxes\n")
		return
	}
	if dev2 >= dev1 {
		tst.Errorf("deviatoric stress must relax under a held stretch\n")
		return
	}
}
