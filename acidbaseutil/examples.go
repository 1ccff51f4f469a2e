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

	"github.com/spatialmodel/acidbase"
)

// Examples writes three worked examples to w: the dissociation
// constant of an acid from the pH of a 0.100 M solution, the pH of
// 0.10 M acetic acid, and the pH of an acetic acid/acetate buffer.
func Examples(w io.Writer) error {
	ka, err := acidbase.KaFromPH(2.89, 0.100, acidbase.DefaultApproximation)
	if err != nil {
		return err
	}
	pKa, err := acidbase.PKaFromKa(ka)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Ka from pH: %.2e\n", ka)
	fmt.Fprintf(w, "pKa: %.2f\n", pKa)

	pH, err := acidbase.PHFromKa(1.8e-5, 0.10)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pH from Ka: %.2f\n", pH)

	bufferPH, err := acidbase.BufferPH(4.76, 0.10, 0.10)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Buffer pH: %.2f\n", bufferPH)
	return err
}
