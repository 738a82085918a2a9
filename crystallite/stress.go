// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"
)

// integrateStress solves the coupled nonlinear system for (Lp, Li, S) at one
// material point over a fraction frac of the sub-increment Δt, using two
// nested damped Newton-Raphson loops: the outer one on the intermediate
// velocity gradient Li, the inner one on the plastic velocity gradient Lp.
// On success the trial (Cur) mechanical variables are overwritten; on failure
// nothing is reported beyond the false return and the optional verbose trace.
func (o *Solver) integrateStress(p *Point, Δt, frac float64) (ok bool) {

	ctl := o.Ctl
	dt := frac * Δt

	// deformation gradient at this fraction of the sub-increment
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.wFt[i][j] = p.Sub.F[i][j] + frac*(p.Cur.F[i][j]-p.Sub.F[i][j])
		}
	}

	// A = F·invFp at the sub-increment start
	la.MatMul(p.wA, 1, p.wFt, p.Sub.InvFp)

	// outer loop: solve Li = f(S, Fi), with S depending on Li through the
	// inner loop
	Li := p.Cur.Li
	normLast := math.MaxFloat64
	step := 1.0
	njac, nls := 0, 0
	converged := false
	for it := 0; it < ctl.NmaxL; it++ {

		// trial intermediate deformation for this Li guess:
		// invFi = invFi0·(I - dt·Li)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p.wT1[i][j] = eye(i, j) - dt*Li[i][j]
			}
		}
		la.MatMul(p.wInvFiNew, 1, p.Sub.InvFi, p.wT1)
		if _, err := la.MatInv(p.wFiNew, p.wInvFiNew, minDet); err != nil {
			o.diag(p, "cannot invert trial intermediate deformation gradient")
			return
		}

		// inner loop: solve Lp at fixed Li
		if !o.solveLp(p, dt) {
			return
		}

		// residual on the intermediate velocity gradient
		if err := p.Mdl.IntermedVelGrad(p.wLic, p.dLidS, p.dLidFi, p.wS33, p.wFiNew, p.Sta); err != nil {
			o.diag(p, "intermediate flow evaluation failed: %v", err)
			return
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p.wR9[3*i+j] = Li[i][j] - p.wLic[i][j]
			}
		}
		normR := la.VecNorm(p.wR9)
		if !isfinite(normR) {
			o.diag(p, "non-finite residual in Li loop")
			return
		}
		if normR <= max(ctl.AtolS, ctl.RtolS*max(m33norm(Li), m33norm(p.wLic))) {
			converged = true
			break
		}

		if normR < normLast {
			// accepted: new Newton direction, Jacobian refreshed periodically
			normLast = normR
			la.MatCopy(p.wLiLast, 1, Li)
			step = 1.0
			nls = 0
			if njac%ctl.NjacS == 0 {
				if !o.jacobianLi(p, dt) {
					return
				}
			}
			njac++
			la.MatVecMul(p.wD9Li, -1, p.wJiLi, p.wR9)
		} else {
			// line search: shrink the step along the same direction
			nls++
			if nls > ctl.Nls {
				o.diag(p, "line search exhausted in Li loop")
				return
			}
			step *= 0.5
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Li[i][j] = p.wLiLast[i][j] + step*p.wD9Li[3*i+j]
			}
		}
	}
	if !converged {
		o.diag(p, "max number of iterations reached in Li loop")
		return
	}

	// updated inverse plastic deformation gradient, optionally renormalised
	// to unit determinant (safeguard against volumetric drift; see control
	// flag unitdetfp)
	la.MatMul(p.wInvFpNew, 1, p.Sub.InvFp, p.wB)
	if ctl.UnitDetFp {
		det := m33det(p.wInvFpNew)
		if det <= minDet || !isfinite(det) {
			o.diag(p, "cannot renormalise updated inverse plastic deformation gradient")
			return
		}
		c := 1.0 / math.Cbrt(det)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p.wInvFpNew[i][j] *= c
			}
		}
	}
	if _, err := la.MatInv(p.wFpNew, p.wInvFpNew, minDet); err != nil {
		o.diag(p, "cannot invert updated plastic deformation gradient")
		return
	}

	// final elastic deformation and work-conjugate stress:
	// Fe = F·invFp·invFi and P = F·invFp·S·invFpᵀ
	la.MatMul(p.wT1, 1, p.wFt, p.wInvFpNew)
	la.MatMul(p.wFe, 1, p.wT1, p.wInvFiNew)
	la.MatMul(p.wT2, 1, p.wT1, p.wS33)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.Cur.P[i][j] = 0
			for k := 0; k < 3; k++ {
				p.Cur.P[i][j] += p.wT2[i][k] * p.wInvFpNew[j][k]
			}
		}
	}

	// commit trial mechanical variables (Lp and Li were solved in place;
	// Cur.F keeps the sub-increment target, not the fractional interpolation)
	la.MatCopy(p.Cur.Fp, 1, p.wFpNew)
	la.MatCopy(p.Cur.InvFp, 1, p.wInvFpNew)
	la.MatCopy(p.Cur.Fi, 1, p.wFiNew)
	la.MatCopy(p.Cur.InvFi, 1, p.wInvFiNew)
	la.MatCopy(p.Cur.Fe, 1, p.wFe)
	tsr.Ten2Man(p.Cur.S, p.wS33)
	return true
}

// solveLp runs the inner Newton loop: for fixed Li, find Lp such that
// Lp = f(S(Fe), Fi) with Fe = A·(I - dt·Lp)·invFi. On success the workspace
// holds the consistent S, Fe, B and AB.
func (o *Solver) solveLp(p *Point, dt float64) (ok bool) {

	ctl := o.Ctl
	Lp := p.Cur.Lp
	normLast := math.MaxFloat64
	step := 1.0
	njac, nls := 0, 0
	for it := 0; it < ctl.NmaxS; it++ {

		// trial elastic deformation for this Lp guess
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p.wB[i][j] = eye(i, j) - dt*Lp[i][j]
			}
		}
		la.MatMul(p.wAB, 1, p.wA, p.wB)
		la.MatMul(p.wFe, 1, p.wAB, p.wInvFiNew)

		// constitutive response
		if err := p.Mdl.StressAndTangents(p.wS33, p.dSdFe, p.dSdFi, p.wFe, p.wFiNew, p.Sta); err != nil {
			o.diag(p, "stress evaluation failed: %v", err)
			return
		}
		if err := p.Mdl.PlasticVelGrad(p.wLpc, p.dLpdS, p.dLpdFi, p.wS33, p.wFiNew, p.Sta); err != nil {
			o.diag(p, "plastic flow evaluation failed: %v", err)
			return
		}

		// residual
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p.wR9[3*i+j] = Lp[i][j] - p.wLpc[i][j]
			}
		}
		normR := la.VecNorm(p.wR9)
		if !isfinite(normR) {
			o.diag(p, "non-finite residual in Lp loop")
			return
		}
		if normR <= max(ctl.AtolS, ctl.RtolS*max(m33norm(Lp), m33norm(p.wLpc))) {
			return true
		}

		if normR < normLast {
			// accepted: new Newton direction, Jacobian refreshed periodically
			normLast = normR
			la.MatCopy(p.wLpLast, 1, Lp)
			step = 1.0
			nls = 0
			if njac%ctl.NjacS == 0 {
				// dR/dLp = I - dLp/dS · dS/dFe · dFe/dLp
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						for k := 0; k < 3; k++ {
							for l := 0; l < 3; l++ {
								p.dFedL[i][j][k][l] = -dt * p.wA[i][k] * p.wInvFiNew[l][j]
							}
						}
					}
				}
				tt99(p.w99a, p.dLpdS)
				tt99(p.w99b, p.dSdFe)
				la.MatMul(p.wJ, 1, p.w99a, p.w99b)
				tt99(p.w99a, p.dFedL)
				la.MatMul(p.w99b, 1, p.wJ, p.w99a)
				for i := 0; i < 9; i++ {
					for j := 0; j < 9; j++ {
						p.wJ[i][j] = eye(i, j) - p.w99b[i][j]
					}
				}
				if err := la.MatInvG(p.wJi, p.wJ, 1e-12); err != nil {
					o.diag(p, "singular Newton Jacobian in Lp loop")
					return
				}
			}
			njac++
			la.MatVecMul(p.wD9, -1, p.wJi, p.wR9)
		} else {
			// line search: shrink the step along the same direction
			nls++
			if nls > ctl.Nls {
				o.diag(p, "line search exhausted in Lp loop")
				return
			}
			step *= 0.5
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Lp[i][j] = p.wLpLast[i][j] + step*p.wD9[3*i+j]
			}
		}
	}
	o.diag(p, "max number of iterations reached in Lp loop")
	return
}

// jacobianLi assembles and inverts the Newton Jacobian of the outer loop:
//  dR/dLi = I - [ dLi/dS·(dS/dFe·dFe/dLi + dS/dFi·dFi/dLi) + dLi/dFi·dFi/dLi ]
func (o *Solver) jacobianLi(p *Point, dt float64) (ok bool) {

	// geometric tangents: Fe = A·B·invFi and Fi = inv(invFi0·(I - dt·Li))
	la.MatMul(p.wT1, 1, p.wAB, p.Sub.InvFi)    // (A·B)·invFi0
	la.MatMul(p.wT2, 1, p.wFiNew, p.Sub.InvFi) // Fi·invFi0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					p.dFedL[i][j][k][l] = -dt * p.wT1[i][k] * eye(l, j)
					p.dFidL[i][j][k][l] = dt * p.wT2[i][k] * p.wFiNew[l][j]
				}
			}
		}
	}

	// dS/dFe·dFe/dLi + dS/dFi·dFi/dLi
	tt99(p.w99a, p.dSdFe)
	tt99(p.w99b, p.dFedL)
	la.MatMul(p.wJLi, 1, p.w99a, p.w99b)
	tt99(p.w99a, p.dSdFi)
	tt99(p.w99b, p.dFidL)
	la.MatMul(p.w99c, 1, p.w99a, p.w99b)
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			p.w99c[i][j] += p.wJLi[i][j]
		}
	}

	// dLi/dS·(...) + dLi/dFi·dFi/dLi
	tt99(p.w99a, p.dLidS)
	la.MatMul(p.w99b, 1, p.w99a, p.w99c)
	tt99(p.w99a, p.dLidFi)
	tt99(p.w99c, p.dFidL)
	la.MatMul(p.wJLi, 1, p.w99a, p.w99c)
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			p.wJLi[i][j] = eye(i, j) - p.w99b[i][j] - p.wJLi[i][j]
		}
	}
	if err := la.MatInvG(p.wJiLi, p.wJLi, 1e-12); err != nil {
		o.diag(p, "singular Newton Jacobian in Li loop")
		return
	}
	return true
}

// stiffness computes the stress-deformation tangent dP/dF at the converged
// configuration, holding the plastic and intermediate deformation fixed
func (o *Solver) stiffness(p *Point) {

	// constitutive tangent at the converged elastic deformation
	if err := p.Mdl.StressAndTangents(p.wS33, p.dSdFe, p.dSdFi, p.Cur.Fe, p.Cur.Fi, p.Sta); err != nil {
		o.diag(p, "stress tangent evaluation failed: %v", err)
		return
	}

	// G = invFp·invFi, H = invFp·S·invFpᵀ, K = F·invFp
	G := p.wT1
	la.MatMul(G, 1, p.Cur.InvFp, p.Cur.InvFi)
	la.MatMul(p.wT2, 1, p.Cur.InvFp, p.wS33)
	H := p.wA
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			H[i][j] = 0
			for k := 0; k < 3; k++ {
				H[i][j] += p.wT2[i][k] * p.Cur.InvFp[j][k]
			}
		}
	}
	K := p.wAB
	la.MatMul(K, 1, p.Cur.F, p.Cur.InvFp)

	// dP_ij/dF_kl = δ_ik H_lj + K_im dS_mn/dFe_pq δ_pk G_lq invFp_jn
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					v := eye(i, k) * H[l][j]
					for m := 0; m < 3; m++ {
						for n := 0; n < 3; n++ {
							for q := 0; q < 3; q++ {
								v += K[i][m] * p.dSdFe[m][n][k][q] * G[l][q] * p.Cur.InvFp[j][n]
							}
						}
					}
					p.DPdF[i][j][k][l] = v
				}
			}
		}
	}
}
