// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystallite

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// minDet is the smallest acceptable determinant when inverting deformation gradients
const minDet = 1e-20

// eye returns the Kronecker delta δij
func eye(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// m33ident sets a 3x3 tensor to the identity
func m33ident(a [][]float64) {
	la.MatFill(a, 0)
	a[0][0], a[1][1], a[2][2] = 1, 1, 1
}

// m33det returns the determinant of a 3x3 tensor
func m33det(a [][]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// m33norm returns the Frobenius norm of a 3x3 tensor
func m33norm(a [][]float64) (res float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res += a[i][j] * a[i][j]
		}
	}
	return math.Sqrt(res)
}

// isfinite tells whether x is neither NaN nor infinite
func isfinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// vecFinite tells whether all components of v are finite
func vecFinite(v []float64) bool {
	for _, x := range v {
		if !isfinite(x) {
			return false
		}
	}
	return true
}

// tt99 flattens a rank-4 tensor into a 9x9 matrix with index 3*i+j
func tt99(M [][]float64, T [][][][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					M[3*i+j][3*k+l] = T[i][j][k][l]
				}
			}
		}
	}
}
