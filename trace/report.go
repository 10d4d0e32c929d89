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
	"io"
	"strings"

	"github.com/rvcosim/cosim/terminal/ansi"
)

// ReportOptions control the output of Result.Report().
type ReportOptions struct {
	// names of the two trace files
	NameA string
	NameB string

	// use ANSI colours for mismatches and the final verdict
	Color bool
}

func (o ReportOptions) pen(colour string) string {
	if !o.Color {
		return ""
	}
	return ansi.Pens[colour]
}

func (o ReportOptions) normal() string {
	if !o.Color {
		return ""
	}
	return ansi.NormalPen
}

// Report writes a human readable description of the comparison to w.
func (r Result) Report(w io.Writer, opts ReportOptions) error {
	s := &strings.Builder{}

	fmt.Fprintf(s, "Parsed %d numeric/X values from %s\n", r.LenA, opts.NameA)
	fmt.Fprintf(s, "Parsed %d numeric/X values from %s\n", r.LenB, opts.NameB)

	switch {
	case r.OneSided:
		fmt.Fprintf(s, "%sError: one of the files contains no valid numeric/X data to compare after parsing%s\n",
			opts.pen("red"), opts.normal())
		_, err := io.WriteString(w, s.String())
		return err
	case r.Empty():
		fmt.Fprintf(s, "%sBoth files are effectively empty (no numeric/X data). Considered a match%s\n",
			opts.pen("green"), opts.normal())
		_, err := io.WriteString(w, s.String())
		return err
	}

	fmt.Fprintf(s, "Comparing up to %d entries...\n", r.Compared)

	for _, m := range r.Mismatches {
		fmt.Fprintf(s, "%sMismatch at entry %d:%s\n", opts.pen("red"), m.Entry+1, opts.normal())
		s.WriteString(operand("File1", m.A))
		s.WriteString(operand("File2", m.B))
	}

	if r.LengthMismatch() {
		fmt.Fprintf(s, "%sWarning: files have different number of valid entries after parsing (%d vs %d). Compared up to %d entries%s\n",
			opts.pen("yellow"), r.LenA, r.LenB, r.Compared, opts.normal())
	}

	if len(r.Mismatches) > 0 {
		fmt.Fprintf(s, "%sFound %d mismatches%s\n", opts.pen("red"), len(r.Mismatches), opts.normal())
	} else {
		fmt.Fprintf(s, "%sFiles match numerically up to the shortest length of valid entries%s\n",
			opts.pen("green"), opts.normal())
	}

	_, err := io.WriteString(w, s.String())
	return err
}

// operand formats one side of a mismatch in hex and decimal.
func operand(label string, v Value) string {
	if v.IsUnknown() {
		return fmt.Sprintf("  %s: expected NO WRITE (X)\n", label)
	}
	n := v.Int()
	return fmt.Sprintf("  %s: 0x%-16X (%-20d)\n", label, n, n)
}
