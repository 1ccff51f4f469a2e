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

package acidbase

import (
	"errors"
	"fmt"
)

// ErrDomain is matched (using errors.Is) by every error returned when
// an input violates the mathematical precondition of a calculation.
var ErrDomain = errors.New("acidbase: domain error")

// DomainError describes an input that is outside the domain of a
// calculation.
type DomainError struct {
	// Op is the name of the calculation, e.g. "PHFromKa".
	Op string

	// Param is the name of the offending argument.
	Param string

	// Value is the offending argument value.
	Value float64

	// Reason states the violated precondition.
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("acidbase: %s: %s = %g: %s", e.Op, e.Param, e.Value, e.Reason)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainErr(op, param string, value float64, reason string) error {
	return &DomainError{Op: op, Param: param, Value: value, Reason: reason}
}
