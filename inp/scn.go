// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// PointData holds the definition of one material point of a scenario
type PointData struct {
	Elem  int       `json:"elem"`  // element index
	Ipt   int       `json:"ipt"`   // integration point index
	Grain int       `json:"grain"` // grain index
	Model string    `json:"model"` // constitutive model name
	Prms  fun.Prms  `json:"prms"`  // model parameters
	F     []float64 `json:"f"`     // target deformation gradient, row-major [9]; empty means identity
}

// Scenario holds the definition of a stand-alone crystallite run: a set of
// material points driven from the identity to their target deformation
// gradients over the time interval [0, tf]
type Scenario struct {
	Desc   string       `json:"desc"`   // description of the run
	Tf     float64      `json:"tf"`     // final time
	Dt     float64      `json:"dt"`     // time increment
	Points []*PointData `json:"points"` // material points
}

// ReadScenario reads a scenario from a JSON file
func ReadScenario(fn string) (*Scenario, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read scenario file %q:\n%v", fn, err)
	}
	var scn Scenario
	err = json.Unmarshal(b, &scn)
	if err != nil {
		return nil, chk.Err("cannot parse scenario file %q:\n%v", fn, err)
	}
	err = scn.Validate()
	if err != nil {
		return nil, err
	}
	return &scn, nil
}

// Validate checks the consistency of the scenario data
func (o *Scenario) Validate() (err error) {
	switch {
	case o.Tf <= 0:
		return chk.Err("final time must be positive: tf=%g", o.Tf)
	case o.Dt <= 0 || o.Dt > o.Tf:
		return chk.Err("time increment must be within (0,tf]: dt=%g, tf=%g", o.Dt, o.Tf)
	case len(o.Points) < 1:
		return chk.Err("scenario needs at least one material point")
	}
	for i, pd := range o.Points {
		if pd.Model == "" {
			return chk.Err("point #%d misses the model name", i)
		}
		if len(pd.F) != 0 && len(pd.F) != 9 {
			return chk.Err("point #%d: target deformation gradient needs 9 row-major components: len(f)=%d", i, len(pd.F))
		}
	}
	return
}
