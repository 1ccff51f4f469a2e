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

// Package acidbase calculates equilibrium properties of monoprotic weak
// acids: dissociation constants, pH, degree of dissociation, and buffer pH.
//
// All concentrations are in mol/L. The functions are closed-form and
// stateless, so they may be called concurrently.
package acidbase

import "math"

// Version gives the version number.
const Version = "1.0.0"

// FivePercentThreshold is the largest ratio of hydrogen ion concentration
// to initial acid concentration ([H⁺]/C) for which depletion of the
// undissociated acid is neglected.
const FivePercentThreshold = 0.05

// DefaultApproximation is the recommended value of the approximate
// argument to KaFromPH.
const DefaultApproximation = true

// FivePercentRule reports whether hydrogen ion concentration h [mol/L]
// is small enough relative to initial acid concentration c [mol/L]
// for the approximation Ka = h²/c to be used. The comparison is strict:
// h/c equal to FivePercentThreshold does not qualify.
func FivePercentRule(h, c float64) bool {
	return h/c < FivePercentThreshold
}

// KaFromPH calculates the acid dissociation constant from the pH of a
// solution with initial acid concentration c [mol/L].
// If approximate is true and the five percent rule holds, the weak-acid
// approximation Ka = [H⁺]²/c is used; otherwise the exact form
// Ka = [H⁺]²/(c - [H⁺]) is used, which requires [H⁺] < c.
func KaFromPH(pH, c float64, approximate bool) (float64, error) {
	const op = "KaFromPH"
	if !finite(pH) {
		return 0, domainErr(op, "pH", pH, "must be finite")
	}
	if !(c > 0) || math.IsInf(c, 1) {
		return 0, domainErr(op, "C", c, "concentration must be positive and finite")
	}
	return kaFromH(math.Pow(10, -pH), c, approximate)
}

// kaFromH is KaFromPH in terms of hydrogen ion concentration h.
func kaFromH(h, c float64, approximate bool) (float64, error) {
	const op = "KaFromPH"
	if !(h > 0) || math.IsInf(h, 1) {
		return 0, domainErr(op, "[H+]", h, "hydrogen ion concentration must be positive and finite")
	}
	var ka float64
	switch {
	case approximate && FivePercentRule(h, c):
		ka = h * h / c
	case h >= c:
		return 0, domainErr(op, "[H+]", h, "hydrogen ion concentration must be less than the initial acid concentration")
	default:
		ka = h * h / (c - h)
	}
	if !(ka > 0) || math.IsInf(ka, 1) {
		return 0, domainErr(op, "Ka", ka, "is not representable")
	}
	return ka, nil
}

// PHFromKa calculates the pH of a solution of a weak acid with
// dissociation constant ka and initial concentration c [mol/L].
// [H⁺] is the positive root of x² + Ka·x - Ka·c = 0.
func PHFromKa(ka, c float64) (float64, error) {
	const op = "PHFromKa"
	if !(ka > 0) || math.IsInf(ka, 1) {
		return 0, domainErr(op, "Ka", ka, "must be positive and finite")
	}
	if !(c > 0) || math.IsInf(c, 1) {
		return 0, domainErr(op, "C", c, "concentration must be positive and finite")
	}
	h := hFromKa(ka, c)
	if !(h > 0) || math.IsInf(h, 1) {
		return 0, domainErr(op, "[H+]", h, "hydrogen ion concentration is not representable")
	}
	return -math.Log10(h), nil
}

// hFromKa returns (-Ka + sqrt(Ka² + 4·Ka·c)) / 2, rearranged as
// 2c / (1 + sqrt(1 + 4c/Ka)) to avoid cancellation when Ka ≫ c
// and overflow of Ka². When 4c/Ka overflows, Ka ≪ c and
// [H⁺] = sqrt(Ka·c) to within rounding.
func hFromKa(ka, c float64) float64 {
	q := 4 * c / ka
	if math.IsInf(q, 1) {
		return math.Sqrt(ka) * math.Sqrt(c)
	}
	return 2 * c / (1 + math.Sqrt(1+q))
}

// alphaFromKa returns [H⁺]/c = 2 / (1 + sqrt(1 + 4c/Ka)), which is
// below 1 for any finite Ka.
func alphaFromKa(ka, c float64) float64 {
	q := 4 * c / ka
	if math.IsInf(q, 1) {
		return math.Sqrt(ka) / math.Sqrt(c)
	}
	return math.Min(2/(1+math.Sqrt(1+q)), math.Nextafter(1, 0))
}

// PKaFromKa returns -log10(ka).
func PKaFromKa(ka float64) (float64, error) {
	if !(ka > 0) || math.IsInf(ka, 1) {
		return 0, domainErr("PKaFromKa", "Ka", ka, "must be positive and finite")
	}
	return -math.Log10(ka), nil
}

// KaFromPKa returns 10^(-pKa).
func KaFromPKa(pKa float64) float64 {
	return math.Pow(10, -pKa)
}

// DegreeOfDissociation calculates the fraction of acid molecules that
// have ionized (α = [H⁺]/c) for a weak acid with dissociation constant
// ka and initial concentration c [mol/L]. The result is in (0, 1)
// even when ka ≫ c.
func DegreeOfDissociation(ka, c float64) (float64, error) {
	if _, err := PHFromKa(ka, c); err != nil {
		return 0, err
	}
	α := alphaFromKa(ka, c)
	if !(α > 0) {
		return 0, domainErr("DegreeOfDissociation", "alpha", α, "is not representable")
	}
	return α, nil
}

// BufferPH calculates the pH of a buffer solution using the
// Henderson–Hasselbalch equation pH = pKa + log10([A⁻]/[HA]), where
// acid is the concentration of the weak acid and salt is the
// concentration of its conjugate base [mol/L].
func BufferPH(pKa, acid, salt float64) (float64, error) {
	const op = "BufferPH"
	if !finite(pKa) {
		return 0, domainErr(op, "pKa", pKa, "must be finite")
	}
	if !(acid > 0) || math.IsInf(acid, 1) {
		return 0, domainErr(op, "acid", acid, "concentration must be positive and finite")
	}
	if !(salt > 0) || math.IsInf(salt, 1) {
		return 0, domainErr(op, "salt", salt, "concentration must be positive and finite")
	}
	return pKa + (math.Log10(salt) - math.Log10(acid)), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
