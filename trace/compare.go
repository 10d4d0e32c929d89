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
	"github.com/rvcosim/cosim/curated"
)

// Sentinel patterns for a failing comparison. Returned by Result.Err().
const (
	OneSidedEmpty = "one trace has no values to compare (%d vs %d)"
	Mismatched    = "traces do not match: %d mismatches"
)

// Mismatch is a single position at which the two traces differ.
type Mismatch struct {
	// index of the entry in both sequences. counting from zero
	Entry int

	A Value
	B Value
}

// Result of comparing two sequences.
type Result struct {
	// number of values in each sequence
	LenA int
	LenB int

	// number of positions compared. the length of the shorter sequence
	Compared int

	// every position that did not match, in order
	Mismatches []Mismatch

	// exactly one of the sequences was empty. nothing was compared
	OneSided bool
}

// Match returns true if the traces are considered equal. A difference in
// length alone does not prevent a match.
func (r Result) Match() bool {
	return !r.OneSided && len(r.Mismatches) == 0
}

// Empty returns true if both sequences were empty. Two empty sequences match.
func (r Result) Empty() bool {
	return r.LenA == 0 && r.LenB == 0
}

// LengthMismatch returns true if the sequences had different lengths. Values
// beyond the length of the shorter sequence were not compared.
func (r Result) LengthMismatch() bool {
	return r.LenA != r.LenB
}

// Err returns an error describing why the traces did not match. Returns nil
// if Match() is true.
func (r Result) Err() error {
	if r.OneSided {
		return curated.Errorf(OneSidedEmpty, r.LenA, r.LenB)
	}
	if len(r.Mismatches) > 0 {
		return curated.Errorf(Mismatched, len(r.Mismatches))
	}
	return nil
}

// Compare sequence a with sequence b. Positions are compared up to the length
// of the shorter sequence.
func Compare(a, b Sequence) Result {
	r := Result{
		LenA: len(a),
		LenB: len(b),
	}

	if (len(a) == 0) != (len(b) == 0) {
		r.OneSided = true
		return r
	}

	r.Compared = min(len(a), len(b))
	for i := 0; i < r.Compared; i++ {
		if !a[i].Equal(b[i]) {
			r.Mismatches = append(r.Mismatches, Mismatch{Entry: i, A: a[i], B: b[i]})
		}
	}

	return r
}

// CompareFiles reads the two named trace files and compares them. Both files
// are read completely before anything is compared.
func CompareFiles(pathA, pathB string) (Result, error) {
	a, err := ReadFile(pathA)
	if err != nil {
		return Result{}, err
	}

	b, err := ReadFile(pathB)
	if err != nil {
		return Result{}, err
	}

	return Compare(a, b), nil
}
