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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/logger"
)

// FileError is returned when a trace file cannot be opened or read.
const FileError = "trace file: %v"

// Sequence is the ordered list of values in a trace. Order corresponds to the
// order of the register writes.
type Sequence []Value

// ReadSequence reads values from r, one per line. Blank and unparsable lines
// are skipped. The name is used only for logging.
func ReadSequence(r io.Reader, name string) (Sequence, error) {
	var seq Sequence
	var skipped int

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if v, ok := ParseValue(line); ok {
				seq = append(seq, v)
			} else if !isBlank(line) {
				skipped++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(FileError, err)
		}
	}

	if skipped > 0 {
		logger.Logf(logger.Allow, "trace", "%s: skipped %d unparsable lines", name, skipped)
	}

	return seq, nil
}

// ReadFile opens the named trace file and reads the sequence of values from
// it.
func ReadFile(path string) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer f.Close()

	return ReadSequence(f, path)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
