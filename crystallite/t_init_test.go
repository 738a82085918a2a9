// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"

	"github.com/samuel-hg-engel/DAMASK-sub002/inp"
	"github.com/samuel-hg-engel/DAMASK-sub002/mcryst"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testctl returns sequential control data suitable for deterministic tests
func testctl() *inp.Control {
	ctl := inp.NewControl()
	ctl.Nproc = 1
	return ctl
}

// testmodel allocates and initialises a model from the factory
func testmodel(tst *testing.T, name string, prms fun.Prms) mcryst.Model {
	mdl, err := mcryst.GetModel(name)
	if err != nil {
		tst.Errorf("cannot allocate model: %v\n", err)
		return nil
	}
	err = mdl.Init(prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return nil
	}
	return mdl
}

// diagF builds a diagonal deformation gradient
func diagF(a, b, c float64) [][]float64 {
	F := la.MatAlloc(3, 3)
	F[0][0], F[1][1], F[2][2] = a, b, c
	return F
}

// brittle wraps a model and poisons its plastic flow for the first nfail
// evaluations, to exercise the cutback machinery
type brittle struct {
	mcryst.Model
	nfail int // number of leading evaluations to poison; use a huge value to always fail
	calls int
}

func (o *brittle) PlasticVelGrad(Lp [][]float64, dLpdS, dLpdFi [][][][]float64, S, Fi [][]float64, sta *mcryst.State) error {
	o.calls++
	if o.calls <= o.nfail {
		Lp[0][0] = math.NaN()
		return nil
	}
	return o.Model.PlasticVelGrad(Lp, dLpdS, dLpdFi, S, Fi, sta)
}

// devnorm returns the norm of the deviatoric part of the Mandel stress,
// computed on the full tensor representation
func devnorm(sman []float64) float64 {
	s := la.MatAlloc(3, 3)
	tsr.Man2Ten(s, sman)
	tr := (s[0][0] + s[1][1] + s[2][2]) / 3.0
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := s[i][j] - tr*eye(i, j)
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}
