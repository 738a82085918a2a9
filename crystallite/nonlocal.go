// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

// cascadeNonlocal demotes every nonlocal point still under iteration to not
// converged. Nonlocal constitutive coupling makes individual convergence
// meaningless until the whole nonlocal subset agrees, so one nonlocal failure
// forces all nonlocal points back into the cutback loop. Purely local points
// are unaffected and exit independently.
func (o *Solver) cascadeNonlocal() {
	for _, p := range o.Pts {
		if p.Todo && !p.Local {
			p.Converged = false
		}
	}
}
