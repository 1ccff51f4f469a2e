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
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/acidbase"
)

// Calculation kinds.
const (
	KindKa        = "ka"
	KindPH        = "ph"
	KindPKa       = "pka"
	KindKaFromPKa = "kafrompka"
	KindAlpha     = "alpha"
	KindBuffer    = "buffer"
)

// BatchColumns are the columns of the table returned by RunBatch.
var BatchColumns = []string{"pH", "Ka", "pKa", "C", "alpha", "acid", "salt"}

// Calculation is a single entry in a batch file.
type Calculation struct {
	Name string

	// Kind is one of "ka", "ph", "pka", "kafrompka", "alpha", or "buffer".
	Kind string

	PH   float64 `toml:"pH"`
	Ka   float64
	PKa  float64 `toml:"pKa"`
	Conc float64
	Acid float64
	Salt float64

	// Approx specifies whether the five percent rule approximation
	// may be used by "ka" calculations. The default is true.
	Approx *bool
}

// Batch holds a set of calculations.
type Batch struct {
	Calculation []Calculation
}

// ReadBatch reads a batch of calculations in TOML format.
func ReadBatch(r io.Reader) (*Batch, error) {
	var b Batch
	md, err := toml.DecodeReader(r, &b)
	if err != nil {
		return nil, fmt.Errorf("acidbase: reading batch file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("acidbase: unknown keys in batch file: %s", strings.Join(keys, ", "))
	}
	if len(b.Calculation) == 0 {
		return nil, fmt.Errorf("acidbase: batch file contains no [[Calculation]] entries")
	}
	return &b, nil
}

// Evaluate performs the calculation and returns the values of
// BatchColumns. Quantities that are neither inputs to nor results of
// the calculation are zero.
func (c *Calculation) Evaluate() ([]float64, error) {
	var pH, ka, pKa, conc, α, acid, salt float64
	var err error
	switch strings.ToLower(c.Kind) {
	case KindKa:
		approx := acidbase.DefaultApproximation
		if c.Approx != nil {
			approx = *c.Approx
		}
		pH, conc = c.PH, c.Conc
		if ka, err = acidbase.KaFromPH(pH, conc, approx); err != nil {
			return nil, err
		}
		if pKa, err = acidbase.PKaFromKa(ka); err != nil {
			return nil, err
		}
		α = math.Pow(10, -pH) / conc
		Log.WithFields(logrus.Fields{
			"name":        c.Name,
			"approximate": approx && acidbase.FivePercentRule(math.Pow(10, -pH), conc),
		}).Debug("calculated Ka from pH")
	case KindPH, KindAlpha:
		ka, conc = c.Ka, c.Conc
		if pH, err = acidbase.PHFromKa(ka, conc); err != nil {
			return nil, err
		}
		if α, err = acidbase.DegreeOfDissociation(ka, conc); err != nil {
			return nil, err
		}
		if pKa, err = acidbase.PKaFromKa(ka); err != nil {
			return nil, err
		}
	case KindPKa:
		ka = c.Ka
		if pKa, err = acidbase.PKaFromKa(ka); err != nil {
			return nil, err
		}
	case KindKaFromPKa:
		pKa = c.PKa
		ka = acidbase.KaFromPKa(pKa)
	case KindBuffer:
		pKa, acid, salt = c.PKa, c.Acid, c.Salt
		if pH, err = acidbase.BufferPH(pKa, acid, salt); err != nil {
			return nil, err
		}
		ka = acidbase.KaFromPKa(pKa)
	default:
		return nil, fmt.Errorf("acidbase: invalid calculation kind '%s'; valid options are %s, %s, %s, %s, %s, and %s",
			c.Kind, KindKa, KindPH, KindPKa, KindKaFromPKa, KindAlpha, KindBuffer)
	}
	return []float64{pH, ka, pKa, conc, α, acid, salt}, nil
}

// RunBatch evaluates every calculation in b. If any calculation fails,
// no results are returned.
func RunBatch(b *Batch) (*Table, error) {
	t := &Table{
		Names:   make([]string, len(b.Calculation)),
		Columns: append([]string{}, BatchColumns...),
		Rows:    make([][]float64, len(b.Calculation)),
	}
	for i := range b.Calculation {
		c := &b.Calculation[i]
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("calculation %d", i+1)
		}
		row, err := c.Evaluate()
		if err != nil {
			return nil, fmt.Errorf("acidbase: %s: %w", name, err)
		}
		t.Names[i] = name
		t.Rows[i] = row
		Log.WithFields(logrus.Fields{
			"name": name,
			"kind": c.Kind,
		}).Info("calculation complete")
	}
	return t, nil
}
