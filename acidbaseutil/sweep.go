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
	"fmt"

	"github.com/spatialmodel/acidbase"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Sweep calculates the pH and degree of dissociation of a weak acid
// with dissociation constant ka at n initial concentrations
// logarithmically spaced between minConc and maxConc [mol/L], inclusive.
// The resulting table has the columns "C", "pH", and "alpha".
func Sweep(ka, minConc, maxConc float64, n int) (*Table, error) {
	if n < 2 {
		return nil, fmt.Errorf("acidbase: sweep needs at least 2 points but got %d", n)
	}
	if !(minConc > 0) || !(maxConc > minConc) {
		return nil, fmt.Errorf("acidbase: sweep concentrations must satisfy 0 < min < max but min = %g and max = %g",
			minConc, maxConc)
	}
	t := &Table{
		Columns: []string{"C", "pH", "alpha"},
		Rows:    make([][]float64, n),
	}
	for i, c := range floats.LogSpan(make([]float64, n), minConc, maxConc) {
		pH, err := acidbase.PHFromKa(ka, c)
		if err != nil {
			return nil, err
		}
		α, err := acidbase.DegreeOfDissociation(ka, c)
		if err != nil {
			return nil, err
		}
		t.Rows[i] = []float64{c, pH, α}
	}
	return t, nil
}

// Plot saves a line plot of column y against column x to fileName, where
// the image format is determined by the file extension. If logX is true,
// the x axis is logarithmic.
func (t *Table) Plot(fileName, title, x, y string, logX bool) error {
	xv, err := t.Column(x)
	if err != nil {
		return err
	}
	yv, err := t.Column(y)
	if err != nil {
		return err
	}
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("acidbase: creating plot: %v", err)
	}
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	if logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}
	xy := make(plotter.XYs, len(xv))
	for i := range xv {
		xy[i].X = xv[i]
		xy[i].Y = yv[i]
	}
	if err = plotutil.AddLinePoints(p, xy); err != nil {
		return fmt.Errorf("acidbase: creating plot: %v", err)
	}
	if err = p.Save(4*vg.Inch, 3*vg.Inch, fileName); err != nil {
		return fmt.Errorf("acidbase: saving plot: %v", err)
	}
	return nil
}
