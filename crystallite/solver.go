// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package crystallite advances the mechanical state (stress and internal
// variables) of every material point through one externally imposed load
// increment, using adaptive sub-stepping, a nested Newton-Raphson stress
// solve and pluggable explicit state integrators.
package crystallite

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/samuel-hg-engel/DAMASK-sub002/inp"
)

// Solver drives the convergence of all material points over load increments
type Solver struct {

	// input
	Ctl *inp.Control // numerical control parameters
	Pts []*Point     // material point arena in dense handle order

	// derived
	integ StateIntegrator // active state-integration strategy

	// shared reduction variables (updated atomically by workers)
	broken int32 // a nonlocal point failed during the current pass
}

// New creates a solver for the given points, selecting the state integrator
// once from the control data
func New(ctl *inp.Control, pts []*Point) (o *Solver, err error) {
	err = ctl.Validate()
	if err != nil {
		return
	}
	alloc, ok := stateallocators[ctl.Integ]
	if !ok {
		return nil, chk.Err("cannot find state integrator named %q", ctl.Integ)
	}
	o = &Solver{Ctl: ctl, Pts: pts, integ: alloc()}
	for i, p := range pts {
		p.Handle = i
	}
	return
}

// Advance integrates one load increment of duration Δt over all requested
// points. It returns true only if every requested point converged; failed
// points keep Converged == false and the caller is expected to reduce its
// own increment and retry.
func (o *Solver) Advance(Δt float64) (ok bool) {

	// initialise sub-increment state
	for _, p := range o.Pts {
		if !p.Requested {
			p.Todo = false
			continue
		}
		p.Beg.Set(p.Cvg)
		p.Sub.Set(p.Beg)
		p.Cur.Set(p.Beg)
		p.StaBeg.Set(p.StaCvg)
		p.StaSub.Set(p.StaBeg)
		p.Sta.Set(p.StaBeg)
		p.SubFrac = 0
		p.SubStep = 1.0 / o.Ctl.Sdiv
		p.Todo = true
		p.Converged = false
		p.first = true
	}

	// cutback loop
	for {

		// wind forward converged points and cut back failed ones
		ntodo := 0
		for _, p := range o.Pts {
			if !p.Todo {
				continue
			}
			switch {
			case p.first:
				p.first = false

			case p.Converged:
				// wind forward
				p.SubFrac += p.SubStep
				rem := 1.0 - p.SubFrac
				if rem < 1e-12 {
					p.SubFrac = 1.0
					p.Todo = false
					continue
				}
				p.SubStep = min(rem, o.Ctl.Sinc*p.SubStep)
				p.Sub.Set(p.Cur)
				p.StaSub.Set(p.Sta)
				p.Converged = false

			default:
				// cut back and restore the sub-increment baseline
				p.SubStep *= o.Ctl.Sdec
				p.Cur.Set(p.Sub)
				p.Sta.Set(p.StaSub)
				if p.SubStep < o.Ctl.Smin {
					if o.Ctl.Verb {
						io.Pfred("point (%d,%d,%d): abandoned, sub-step %g below minimum %g\n",
							p.Elem, p.Ipt, p.Grain, p.SubStep, o.Ctl.Smin)
					}
					p.Todo = false
					continue
				}
				if o.Ctl.Verb {
					io.Pfyel("point (%d,%d,%d): cutback to sub-step %g\n", p.Elem, p.Ipt, p.Grain, p.SubStep)
				}
			}

			// trial deformation gradient, interpolated linearly between the
			// sub-increment start and the imposed target
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					p.Cur.F[i][j] = p.Sub.F[i][j] + p.SubStep*(p.Ftgt[i][j]-p.Beg.F[i][j])
				}
			}
			ntodo++
		}
		if ntodo == 0 {
			break
		}

		// advance state over all to-do points
		atomic.StoreInt32(&o.broken, 0)
		o.foreach(func(p *Point) {
			if !p.Todo {
				return
			}
			o.integ.Step(o, p, p.SubStep*Δt)
			if !p.Converged && !p.Local {
				atomic.StoreInt32(&o.broken, 1)
			}
		})

		// nonlocal convergence is collective
		if atomic.LoadInt32(&o.broken) == 1 {
			o.cascadeNonlocal()
		}
	}

	// increment outcome and tangent computation
	ok = true
	for _, p := range o.Pts {
		if !p.Requested {
			continue
		}
		if !p.Converged {
			ok = false
			continue
		}
		o.stiffness(p)
	}
	return
}

// Commit accepts the last increment: the trial state of converged points
// becomes the converged-previous-increment state
func (o *Solver) Commit() {
	for _, p := range o.Pts {
		if p.Requested && p.Converged {
			p.Cvg.Set(p.Cur)
			p.StaCvg.Set(p.Sta)
		}
	}
}

// foreach runs f over all points, split across workers. Each point is touched
// by exactly one worker; f must not mutate anything but its own point.
func (o *Solver) foreach(f func(p *Point)) {
	nw := o.Ctl.Nproc
	if nw < 1 {
		nw = runtime.NumCPU()
	}
	if nw > len(o.Pts) {
		nw = len(o.Pts)
	}
	if nw <= 1 {
		for _, p := range o.Pts {
			f(p)
		}
		return
	}
	chunk := (len(o.Pts) + nw - 1) / nw
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(o.Pts))
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(pts []*Point) {
			defer wg.Done()
			for _, p := range pts {
				f(p)
			}
		}(o.Pts[lo:hi])
	}
	wg.Wait()
}

// diag prints a per-point diagnostic message when the verbose trace is on
func (o *Solver) diag(p *Point, msg string, prm ...interface{}) {
	if o.Ctl.Verb {
		io.Pfred("point (%d,%d,%d): %s\n", p.Elem, p.Ipt, p.Grain, io.Sf(msg, prm...))
	}
}
