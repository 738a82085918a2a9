// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/samuel-hg-engel/DAMASK-sub002/crystallite"
	"github.com/samuel-hg-engel/DAMASK-sub002/inp"
	"github.com/samuel-hg-engel/DAMASK-sub002/mcryst"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	scnpath, fnkey := io.ArgToFilename(0, "scenario", ".json", true)
	ctlpath := io.ArgToString(1, "")
	verbose := io.ArgToBool(2, true)

	// message
	if verbose {
		io.Pf("\n%v\n", io.ArgsTable(
			"scenario path", "scnpath", scnpath,
			"control path; empty means defaults", "ctlpath", ctlpath,
			"show messages", "verbose", verbose,
		))
	}

	// profiling?
	defer utl.DoProf(false)()

	// input data
	scn, err := inp.ReadScenario(scnpath)
	if err != nil {
		chk.Panic("cannot load scenario:\n%v", err)
	}
	ctl := inp.NewControl()
	if ctlpath != "" {
		ctl, err = inp.ReadControl(ctlpath)
		if err != nil {
			chk.Panic("cannot load control data:\n%v", err)
		}
	}
	ctl.Verb = verbose

	// material points and their target deformation gradients
	pts := make([]*crystallite.Point, len(scn.Points))
	tgts := make([][][]float64, len(scn.Points))
	for i, pd := range scn.Points {
		mdl, err := mcryst.GetModel(pd.Model)
		if err != nil {
			chk.Panic("point #%d:\n%v", i, err)
		}
		err = mdl.Init(pd.Prms)
		if err != nil {
			chk.Panic("point #%d:\n%v", i, err)
		}
		pts[i] = crystallite.NewPoint(pd.Elem, pd.Ipt, pd.Grain, mdl)
		F := la.MatAlloc(3, 3)
		for r := 0; r < 3; r++ {
			F[r][r] = 1
		}
		if len(pd.F) == 9 {
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					F[r][c] = pd.F[3*r+c]
				}
			}
		}
		tgts[i] = F
	}
	sol, err := crystallite.New(ctl, pts)
	if err != nil {
		chk.Panic("cannot allocate solver:\n%v", err)
	}

	// march to the final time, imposing linearly interpolated targets; on a
	// failed increment the caller-side (this loop) halves the increment
	t, dt := 0.0, scn.Dt
	Ftry := la.MatAlloc(3, 3)
	for t < scn.Tf-1e-12 {
		if dt > scn.Tf-t {
			dt = scn.Tf - t
		}
		frac := (t + dt) / scn.Tf
		for i, p := range pts {
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					e := 0.0
					if r == c {
						e = 1
					}
					Ftry[r][c] = e + frac*(tgts[i][r][c]-e)
				}
			}
			p.Impose(Ftry)
		}
		if !sol.Advance(dt) {
			dt /= 2
			if dt < scn.Dt*1e-3 {
				chk.Panic("increment at t=%g failed even after halving down to dt=%g", t, dt)
			}
			if verbose {
				io.Pfyel("t=%g: increment failed; retrying with dt=%g\n", t, dt)
			}
			continue
		}
		sol.Commit()
		t += dt
		dt = min(2*dt, scn.Dt)
	}

	// report
	if verbose {
		io.Pf("\n%q (%s) finished at t=%g\n\n", fnkey, scn.Desc, t)
		for _, p := range pts {
			io.Pf("point (%d,%d,%d):\n", p.Elem, p.Ipt, p.Grain)
			io.Pf("  S   = %v\n", p.Cvg.S)
			io.Pf("  alp = %v\n", p.StaCvg.Alp)
		}
	}
}
