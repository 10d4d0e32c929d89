// This file is part of cosim.
//
// cosim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// cosim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with cosim.  If not, see <https://www.gnu.org/licenses/>.

package trace

import (
	"fmt"
	"math/big"
	"strings"
)

// Value is a single entry in a trace. It is either a known non-negative
// integer or Unknown. The zero value is Unknown.
type Value struct {
	n *big.Int
}

// Unknown is the value for positions where no register write happened. It is
// written as X in trace files.
var Unknown = Value{}

// Known creates a Value from an integer. The integer is copied.
func Known(n *big.Int) Value {
	return Value{n: new(big.Int).Set(n)}
}

// KnownUint64 creates a Value from a uint64.
func KnownUint64(n uint64) Value {
	return Value{n: new(big.Int).SetUint64(n)}
}

// IsUnknown returns true if value is the Unknown marker.
func (v Value) IsUnknown() bool {
	return v.n == nil
}

// Int returns a copy of the integer value. Returns nil if the value is
// Unknown.
func (v Value) Int() *big.Int {
	if v.n == nil {
		return nil
	}
	return new(big.Int).Set(v.n)
}

// Equal returns true if both values are Unknown or if both are known and
// numerically equal.
func (v Value) Equal(w Value) bool {
	if v.IsUnknown() || w.IsUnknown() {
		return v.IsUnknown() && w.IsUnknown()
	}
	return v.n.Cmp(w.n) == 0
}

func (v Value) String() string {
	if v.IsUnknown() {
		return "X"
	}
	return fmt.Sprintf("0x%X", v.n)
}

// ParseValue parses a single line of a trace file. The second return value is
// false if the line is blank or cannot be parsed, in which case the line
// should be skipped.
//
// Decimal is tried before hexadecimal. This means that "10" is ten and not
// sixteen. Decimal can have a leading plus sign. Hexadecimal can be written
// with or without the 0x prefix.
func ParseValue(line string) (Value, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Value{}, false
	}

	if strings.EqualFold(s, "x") {
		return Unknown, true
	}

	if d := strings.TrimPrefix(s, "+"); isDigits(d, 10) {
		n, ok := new(big.Int).SetString(d, 10)
		if ok {
			return Value{n: n}, true
		}
	}

	h := s
	if len(h) > 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if isDigits(h, 16) {
		n, ok := new(big.Int).SetString(h, 16)
		if ok {
			return Value{n: n}, true
		}
	}

	return Value{}, false
}

// isDigits returns true if s is not empty and contains only digits of the
// given base (10 or 16).
func isDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case base == 16 && c >= 'a' && c <= 'f':
		case base == 16 && c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
