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

package memimage

import (
	"bytes"
	"os"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/logger"
)

// SectionSource implementations find and extract a named section of an ELF
// file.
type SectionSource interface {
	// SectionAddress returns the load address of the section in bytes.
	SectionAddress(elfPath string, section string) (uint64, error)

	// ExtractSection returns the raw bytes of the section.
	ExtractSection(elfPath string, section string) ([]byte, error)
}

// Convert the named section of an ELF file to a memory image and write it to
// outPath. The output file is only created if every step succeeds.
func Convert(src SectionSource, elfPath string, section string, outPath string, opts Options) (Stats, error) {
	if err := opts.validate(); err != nil {
		return Stats{}, err
	}

	addr, err := src.SectionAddress(elfPath, section)
	if err != nil {
		return Stats{}, err
	}
	logger.Logf(logger.Allow, "memimage", "found section '%s' starting at address %#X", section, addr)

	data, err := src.ExtractSection(elfPath, section)
	if err != nil {
		return Stats{}, err
	}

	var img bytes.Buffer
	st, err := Encode(&img, bytes.NewReader(data), addr, opts)
	if err != nil {
		return st, err
	}

	if err := os.WriteFile(outPath, img.Bytes(), 0644); err != nil {
		// a failed write can leave a partial file behind
		_ = os.Remove(outPath)
		return st, curated.Errorf(OutputError, err)
	}

	logger.Logf(logger.Allow, "memimage", "converted %s (%s) to %s: %d words", elfPath, section, outPath, st.Words)

	return st, nil
}
