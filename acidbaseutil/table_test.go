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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/kr/pretty"
	"github.com/tealeg/xlsx"
	"gonum.org/v1/gonum/floats"
)

func testTable() *Table {
	return &Table{
		Names:   []string{"a", "b"},
		Columns: []string{"pH", "C"},
		Rows: [][]float64{
			{2, 0.5},
			{4, 0.25},
		},
	}
}

func TestAddVariables(t *testing.T) {
	tbl := testTable()
	err := tbl.AddVariables(map[string]string{
		"pOH":  "14 - pH",
		"H":    "pow10(-pH)",
		"frac": "H / C",
		"lg":   "log10(C * 4)",
	})
	if err != nil {
		t.Fatal(err)
	}
	wantCols := []string{"pH", "C", "H", "frac", "lg", "pOH"}
	if diff := pretty.Diff(tbl.Columns, wantCols); len(diff) > 0 {
		t.Errorf("columns: %v", diff)
	}
	want := [][]float64{
		{2, 0.5, 0.01, 0.02, 0.30102999566398120, 12},
		{4, 0.25, 0.0001, 0.0004, 0, 10},
	}
	for i, row := range tbl.Rows {
		if !floats.EqualApprox(row, want[i], 1.e-12) {
			t.Errorf("row %d: have %v, want %v", i, row, want[i])
		}
	}
}

func TestAddVariablesErrors(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"cycle":     {"x": "y + 1", "y": "x + 1"},
		"undefined": {"x": "Kb * 2"},
		"duplicate": {"pH": "14 - pH"},
		"syntax":    {"x": "14 -* (pH"},
		"boolean":   {"x": "pH > 3"},
		"arguments": {"x": "log10(pH, C)"},
	} {
		t.Run(name, func(t *testing.T) {
			if err := testTable().AddVariables(vars); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestColumn(t *testing.T) {
	c, err := testTable().Column("C")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(c, []float64{0.5, 0.25}); len(diff) > 0 {
		t.Error(diff)
	}
	if _, err := testTable().Column("Kb"); err == nil {
		t.Error("expected an error for a missing column")
	}
}

func TestWriteCSV(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := testTable().WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	const want = "Name,pH,C\na,2,0.5\nb,4,0.25\n"
	if buf.String() != want {
		t.Errorf("have %q, want %q", buf.String(), want)
	}

	buf.Reset()
	tbl := testTable()
	tbl.Names = nil
	if err := tbl.WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	if want := "pH,C\n2,0.5\n4,0.25\n"; buf.String() != want {
		t.Errorf("unnamed: have %q, want %q", buf.String(), want)
	}
}

func TestWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "acidbase")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	t.Run("xlsx", func(t *testing.T) {
		fileName := filepath.Join(dir, "results.xlsx")
		if err := testTable().Write(fileName); err != nil {
			t.Fatal(err)
		}
		f, err := xlsx.OpenFile(fileName)
		if err != nil {
			t.Fatal(err)
		}
		s, ok := f.Sheet["Results"]
		if !ok {
			t.Fatal("missing Results sheet")
		}
		if v := s.Cell(0, 0).Value; v != "Name" {
			t.Errorf("header: have %q", v)
		}
		if v := s.Cell(2, 0).Value; v != "b" {
			t.Errorf("name: have %q", v)
		}
		v, err := strconv.ParseFloat(s.Cell(2, 2).Value, 64)
		if err != nil {
			t.Fatal(err)
		}
		if v != 0.25 {
			t.Errorf("value: have %g, want 0.25", v)
		}
	})

	t.Run("csv", func(t *testing.T) {
		fileName := filepath.Join(dir, "results.csv")
		if err := testTable().Write(fileName); err != nil {
			t.Fatal(err)
		}
		b, err := ioutil.ReadFile(fileName)
		if err != nil {
			t.Fatal(err)
		}
		if want := "Name,pH,C\na,2,0.5\nb,4,0.25\n"; string(b) != want {
			t.Errorf("have %q", b)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := testTable().Write(filepath.Join(dir, "results.shp")); err == nil {
			t.Error("expected an error")
		}
	})
}
