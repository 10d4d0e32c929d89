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

// Package logtrim removes header and footer lines from the text output of a
// simulator. What remains is usually the register trace, ready for
// comparison with the trace package.
//
// Lines are passed through unchanged. Line terminators are kept so that the
// output is byte-for-byte the same as the middle of the input.
package logtrim

import (
	"bytes"
	"os"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/logger"
)

// Sentinel patterns for errors returned by the package.
const (
	ReadError    = "reading log: %v"
	WriteError   = "writing trimmed log: %v"
	InvalidCount = "invalid %s count (%d)"
)

// Default number of lines to remove. These suit the output of the Verilator
// testbench.
const (
	DefaultHeader = 4
	DefaultFooter = 3
)

// Summary of a call to TrimFile().
type Summary struct {
	Read    int
	Written int
}

// SplitLines splits data into lines. Each line includes its terminating
// newline. The last line will not have a newline if the data does not end with
// one.
func SplitLines(data []byte) [][]byte {
	lines := bytes.SplitAfter(data, []byte("\n"))

	// SplitAfter() leaves an empty slice after a final newline
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Trim returns lines with the first header lines and the last footer lines
// removed. If there are not enough lines the result is empty and a warning is
// logged. Counts must not be negative.
func Trim(lines [][]byte, header int, footer int) ([][]byte, error) {
	if header < 0 {
		return nil, curated.Errorf(InvalidCount, "header", header)
	}
	if footer < 0 {
		return nil, curated.Errorf(InvalidCount, "footer", footer)
	}

	if header >= len(lines) {
		if header > 0 {
			logger.Logf(logger.Allow, "logtrim", "skip header (%d) is not less than the total number of lines (%d). output will be empty", header, len(lines))
		}
		return [][]byte{}, nil
	}

	body := lines[header:]

	if footer >= len(body) {
		if footer > 0 {
			logger.Logf(logger.Allow, "logtrim", "skip footer (%d) is not less than the number of lines remaining after the header (%d). output will be empty", footer, len(body))
		}
		return [][]byte{}, nil
	}

	return body[:len(body)-footer], nil
}

// TrimFile reads the input file, trims it and writes the result to the output
// file. Nothing is written if the input file cannot be read.
func TrimFile(inPath string, outPath string, header int, footer int) (Summary, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return Summary{}, curated.Errorf(ReadError, err)
	}

	lines := SplitLines(data)

	body, err := Trim(lines, header, footer)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Read:    len(lines),
		Written: len(body),
	}

	if err := os.WriteFile(outPath, bytes.Join(body, nil), 0644); err != nil {
		return s, curated.Errorf(WriteError, err)
	}

	logger.Logf(logger.Allow, "logtrim", "read %d lines from %s, wrote %d lines to %s", s.Read, inPath, s.Written, outPath)

	return s, nil
}
