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
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/tealeg/xlsx"
)

// Table holds calculation results. Each row corresponds to one
// calculation and each column to one quantity.
type Table struct {
	// Names optionally labels each row.
	Names []string

	Columns []string
	Rows    [][]float64
}

// Column returns the values in the column with the given name.
func (t *Table) Column(name string) ([]float64, error) {
	j := t.columnIndex(name)
	if j < 0 {
		return nil, fmt.Errorf("acidbase: table has no column '%s'; valid options are %s",
			name, strings.Join(t.Columns, ", "))
	}
	o := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		o[i] = r[j]
	}
	return o, nil
}

func (t *Table) columnIndex(name string) int {
	for j, c := range t.Columns {
		if c == name {
			return j
		}
	}
	return -1
}

// outputFunctions are the functions available to output variable
// expressions in addition to the govaluate operators.
var outputFunctions = map[string]govaluate.ExpressionFunction{
	"log10": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("acidbase: got %d arguments for function 'log10', but needs 1", len(arg))
		}
		return math.Log10(arg[0].(float64)), nil
	},
	"pow10": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("acidbase: got %d arguments for function 'pow10', but needs 1", len(arg))
		}
		return math.Pow(10, arg[0].(float64)), nil
	},
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("acidbase: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
}

// AddVariables appends one column per entry in vars, where the key is the
// new column name and the value is an expression in terms of existing
// columns, other entries in vars, and the functions log10(x), pow10(x),
// and exp(x). For example, {"pOH": "14 - pH"}.
func (t *Table) AddVariables(vars map[string]string) error {
	names := make([]string, 0, len(vars))
	exprs := make(map[string]*govaluate.EvaluableExpression, len(vars))
	for name, v := range vars {
		if t.columnIndex(name) >= 0 {
			return fmt.Errorf("acidbase: output variable '%s' has the same name as an existing column", name)
		}
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(v, outputFunctions)
		if err != nil {
			return fmt.Errorf("acidbase: output variable '%s': %v", name, err)
		}
		names = append(names, name)
		exprs[name] = expr
	}
	sort.Strings(names)

	// Order the variables so each is evaluated after the ones it uses.
	var order []string
	known := make(map[string]bool)
	for _, c := range t.Columns {
		known[c] = true
	}
	for len(order) < len(names) {
		progress := false
		for _, name := range names {
			if known[name] {
				continue
			}
			ready := true
			for _, v := range exprs[name].Vars() {
				if !known[v] {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, name)
				known[name] = true
				progress = true
			}
		}
		if !progress {
			var missing []string
			for _, name := range names {
				if !known[name] {
					missing = append(missing, name)
				}
			}
			return fmt.Errorf("acidbase: output variables %s refer to undefined variables or to each other in a cycle",
				strings.Join(missing, ", "))
		}
	}

	params := make(map[string]interface{}, len(t.Columns)+len(order))
	for i, r := range t.Rows {
		for j, c := range t.Columns {
			params[c] = r[j]
		}
		for _, name := range order {
			v, err := exprs[name].Evaluate(params)
			if err != nil {
				return fmt.Errorf("acidbase: evaluating output variable '%s' for row %d: %v", name, i, err)
			}
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("acidbase: output variable '%s' evaluates to %v, which is not a number", name, v)
			}
			params[name] = f
		}
		for _, name := range order {
			t.Rows[i] = append(t.Rows[i], params[name].(float64))
		}
	}
	t.Columns = append(t.Columns, order...)
	return nil
}

// header returns the column headings, including the row names if present.
func (t *Table) header() []string {
	if t.Names == nil {
		return t.Columns
	}
	return append([]string{"Name"}, t.Columns...)
}

// Write saves the table to fileName. The file format is chosen from the
// extension: ".csv" for comma-separated text or ".xlsx" for Microsoft Excel.
func (t *Table) Write(fileName string) error {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv":
		f, err := os.Create(fileName)
		if err != nil {
			return fmt.Errorf("acidbase: creating output file: %v", err)
		}
		if err := t.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return t.writeXLSX(fileName)
	default:
		return fmt.Errorf("acidbase: unsupported output file extension '%s'; valid options are .csv and .xlsx", ext)
	}
}

// WriteCSV writes the table to w in comma-separated format.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return fmt.Errorf("acidbase: writing csv: %v", err)
	}
	for i, r := range t.Rows {
		rec := make([]string, 0, len(r)+1)
		if t.Names != nil {
			rec = append(rec, t.Names[i])
		}
		for _, v := range r {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("acidbase: writing csv: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("acidbase: writing csv: %v", err)
	}
	return nil
}

func (t *Table) writeXLSX(fileName string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Results")
	if err != nil {
		return fmt.Errorf("acidbase: creating xlsx sheet: %v", err)
	}
	row := sheet.AddRow()
	for _, h := range t.header() {
		row.AddCell().SetString(h)
	}
	for i, r := range t.Rows {
		row := sheet.AddRow()
		if t.Names != nil {
			row.AddCell().SetString(t.Names[i])
		}
		for _, v := range r {
			row.AddCell().SetFloat(v)
		}
	}
	if err := f.Save(fileName); err != nil {
		return fmt.Errorf("acidbase: saving xlsx file: %v", err)
	}
	return nil
}
