/*
Copyright © 2026 the acidbase authors.
This file is part of acidbase.

acidbase is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

acidbase is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with acidbase.  If not, see <http://www.gnu.org/licenses/>.
*/

package acidbaseutil

import (
	"encoding/csv"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSweep(t *testing.T) {
	const ka = 1.8e-5
	tbl, err := Sweep(ka, 1.e-4, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	c, err := tbl.Column("C")
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(c, []float64{1.e-4, 1.e-3, 1.e-2, 1.e-1, 1}, 1.e-12) {
		t.Errorf("concentrations: %v", c)
	}
	pH, _ := tbl.Column("pH")
	α, _ := tbl.Column("alpha")
	for i := 1; i < len(c); i++ {
		// Diluting a weak acid raises pH and increases dissociation.
		if pH[i] >= pH[i-1] {
			t.Errorf("pH should decrease with concentration: %v", pH)
		}
		if α[i] >= α[i-1] {
			t.Errorf("alpha should decrease with concentration: %v", α)
		}
	}
	if !floats.EqualWithinAbsOrRel(pH[3], 2.8753, 1.e-4, 1.e-4) {
		t.Errorf("pH at 0.1 M: have %g", pH[3])
	}
}

func TestSweepErrors(t *testing.T) {
	for _, test := range []struct {
		name         string
		ka, min, max float64
		n            int
	}{
		{"one point", 1.e-5, 1.e-3, 1, 1},
		{"reversed", 1.e-5, 1, 1.e-3, 10},
		{"zero min", 1.e-5, 0, 1, 10},
		{"negative Ka", -1.e-5, 1.e-3, 1, 10},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Sweep(test.ka, test.min, test.max, test.n); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSweepCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "acidbase")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	outputFile := filepath.Join(dir, "sweep.csv")
	plotFile := filepath.Join(dir, "sweep.png")

	Cfg.Set("Ka", 1.8e-5)
	Cfg.Set("Sweep.MinConc", 1.e-3)
	Cfg.Set("Sweep.MaxConc", 1.0)
	Cfg.Set("Sweep.Points", 4)
	Cfg.Set("Sweep.PlotFile", plotFile)
	Cfg.Set("Sweep.PlotVariable", "pOH")
	Cfg.Set("OutputFile", outputFile)
	Cfg.Set("OutputVariables", map[string]string{"pOH": "14 - pH"})
	defer Cfg.Set("Sweep.PlotFile", "")

	if _, err := execute(t, "sweep"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 {
		t.Fatalf("have %d records, want 5", len(recs))
	}
	want := []string{"C", "pH", "alpha", "pOH"}
	for i, h := range want {
		if recs[0][i] != h {
			t.Errorf("header %d: have %s, want %s", i, recs[0][i], h)
		}
	}
	if fi, err := os.Stat(plotFile); err != nil || fi.Size() == 0 {
		t.Errorf("plot file not written: %v", err)
	}

	Cfg.Set("Sweep.PlotVariable", "Kb")
	if _, err := execute(t, "sweep"); err == nil {
		t.Error("expected an error for an invalid plot variable")
	}
	Cfg.Set("Sweep.PlotVariable", "alpha")
}
