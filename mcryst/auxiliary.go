// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcryst

// eye returns the Kronecker delta δij
func eye(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// zero33 fills a 3x3 tensor with zeros
func zero33(a [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = 0
		}
	}
}

// zero3333 fills a rank-4 tensor with zeros; nil is accepted
func zero3333(a [][][][]float64) {
	if a == nil {
		return
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					a[i][j][k][l] = 0
				}
			}
		}
	}
}
