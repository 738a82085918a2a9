// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_scn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scn01")

	fn := filepath.Join(tst.TempDir(), "scn.json")
	err := os.WriteFile(fn, []byte(`{
		"desc": "single stretched grain",
		"tf": 2.0,
		"dt": 0.5,
		"points": [
			{
				"elem": 1, "ipt": 2, "grain": 3, "model": "viscous",
				"prms": [
					{ "n": "E",   "v": 1000 },
					{ "n": "nu",  "v": 0.25 },
					{ "n": "eta", "v": 10 }
				],
				"f": [1.01, 0, 0, 0, 1, 0, 0, 0, 1]
			}
		]
	}`), 0644)
	if err != nil {
		tst.Errorf("cannot write temporary file: %v\n", err)
		return
	}

	scn, err := ReadScenario(fn)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("scn = %+v\n", scn)
	chk.Scalar(tst, "tf", 1e-17, scn.Tf, 2)
	chk.Scalar(tst, "dt", 1e-17, scn.Dt, 0.5)
	chk.IntAssert(len(scn.Points), 1)
	pd := scn.Points[0]
	chk.IntAssert(pd.Elem, 1)
	chk.IntAssert(pd.Ipt, 2)
	chk.IntAssert(pd.Grain, 3)
	chk.StrAssert(pd.Model, "viscous")
	chk.IntAssert(len(pd.Prms), 3)
	chk.StrAssert(pd.Prms[2].N, "eta")
	chk.Scalar(tst, "eta", 1e-17, pd.Prms[2].V, 10)
	chk.Scalar(tst, "f00", 1e-17, pd.F[0], 1.01)
}

func Test_scn02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scn02")

	scn := &Scenario{Tf: 1, Dt: 0.1}
	if err := scn.Validate(); err == nil {
		tst.Errorf("scenario without points must be rejected\n")
		return
	}

	scn = &Scenario{Tf: 1, Dt: 2, Points: []*PointData{{Model: "hooke"}}}
	if err := scn.Validate(); err == nil {
		tst.Errorf("time increment larger than the final time must be rejected\n")
		return
	}

	scn = &Scenario{Tf: 1, Dt: 0.1, Points: []*PointData{{Model: "hooke", F: []float64{1, 2, 3}}}}
	if err := scn.Validate(); err == nil {
		tst.Errorf("malformed deformation gradient must be rejected\n")
	}
}
