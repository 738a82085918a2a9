// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcryst

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

func Test_hooke01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hooke01. stress response and tangent")

	mdl, err := GetModel("hooke")
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "E", V: 1000},
		&fun.Prm{N: "nu", V: 0.25},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(mdl.Nstate(), 0)
	if !mdl.IsLocal() {
		tst.Errorf("hooke must be local\n")
		return
	}

	// uniaxial stretch
	Fe := [][]float64{{1.01, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	Fi := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	S := la.MatAlloc(3, 3)
	dSdFe := utl.Deep4alloc(3, 3, 3, 3)
	dSdFi := utl.Deep4alloc(3, 3, 3, 3)
	err = mdl.StressAndTangents(S, dSdFe, dSdFi, Fe, Fi, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("S = %v\n", S)

	// compare with direct evaluation: E11 = (1.01² - 1)/2, others zero
	lam, mu := 400.0, 400.0 // E=1000, nu=0.25
	e11 := (1.01*1.01 - 1.0) / 2.0
	chk.Scalar(tst, "S11", 1e-12, S[0][0], (lam+2.0*mu)*e11)
	chk.Scalar(tst, "S22", 1e-12, S[1][1], lam*e11)
	chk.Scalar(tst, "S33", 1e-12, S[2][2], lam*e11)
	chk.Scalar(tst, "S12", 1e-15, S[0][1], 0)

	// check tangent dS/dFe against central differences
	Stmp := la.MatAlloc(3, 3)
	for p := 0; p < 3; p++ {
		for q := 0; q < 3; q++ {
			for m := 0; m < 3; m++ {
				for n := 0; n < 3; n++ {
					dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
						old := Fe[p][q]
						Fe[p][q] = x
						mdl.StressAndTangents(Stmp, nil, nil, Fe, Fi, nil)
						Fe[p][q] = old
						return Stmp[m][n]
					}, Fe[p][q], 1e-6)
					chk.AnaNum(tst, io.Sf("dS%d%d/dFe%d%d", m, n, p, q), 1e-7, dSdFe[m][n][p][q], dnum, chk.Verbose)
				}
			}
		}
	}
}

func Test_viscous01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("viscous01. flow rule and state rate")

	mdl, err := GetModel("viscous")
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "E", V: 1000},
		&fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "eta", V: 100},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(mdl.Nstate(), 1)
	chk.IntAssert(mdl.Ndelta(), 1)
	chk.Vector(tst, "atol", 1e-17, mdl.StateAtol(), []float64{1e-8})

	// purely hydrostatic stress gives no flow
	S := [][]float64{{-3, 0, 0}, {0, -3, 0}, {0, 0, -3}}
	Fi := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	Lp := la.MatAlloc(3, 3)
	dLpdS := utl.Deep4alloc(3, 3, 3, 3)
	dLpdFi := utl.Deep4alloc(3, 3, 3, 3)
	err = mdl.PlasticVelGrad(Lp, dLpdS, dLpdFi, S, Fi, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Matrix(tst, "Lp (hydrostatic)", 1e-15, Lp, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	// deviatoric stress flows with Lp = dev(S)/eta
	S = [][]float64{{2, 1, 0}, {1, -1, 0}, {0, 0, -1}}
	err = mdl.PlasticVelGrad(Lp, dLpdS, dLpdFi, S, Fi, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Matrix(tst, "Lp (deviatoric)", 1e-15, Lp, [][]float64{{0.02, 0.01, 0}, {0.01, -0.01, 0}, {0, 0, -0.01}})

	// state rate equals the flow magnitude
	dot := []float64{0}
	err = mdl.CollectDotState(dot, S, nil, 1, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += Lp[i][j] * Lp[i][j]
		}
	}
	chk.Scalar(tst, "dot[0]", 1e-15, dot[0]*dot[0], sum)
}

func Test_models01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("models01. factory")

	if _, err := GetModel("unknown-model"); err == nil {
		tst.Errorf("factory must fail for unknown model names\n")
		return
	}

	mdl, err := GetModel("viscous")
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "mu", V: 400},
		&fun.Prm{N: "lam", V: 400},
		&fun.Prm{N: "eta", V: 50},
		&fun.Prm{N: "nonlocal", V: 1},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if mdl.IsLocal() {
		tst.Errorf("nonlocal parameter was not honoured\n")
	}
}
