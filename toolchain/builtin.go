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

package toolchain

import (
	"debug/elf"

	"github.com/rvcosim/cosim/curated"
)

// Builtin reads sections with the debug/elf package. It is useful when a
// RISC-V toolchain is not installed.
type Builtin struct{}

func (Builtin) progbits(elfPath string, section string) (*elf.Section, func() error, error) {
	f, err := elf.Open(elfPath)
	if err != nil {
		return nil, nil, curated.Errorf(ELFError, err)
	}

	s := f.Section(section)
	if s == nil || s.Type != elf.SHT_PROGBITS {
		f.Close()
		return nil, nil, curated.Errorf(SectionNotFound, section, elfPath)
	}

	return s, f.Close, nil
}

// SectionAddress implements the memimage.SectionSource interface.
func (b Builtin) SectionAddress(elfPath string, section string) (uint64, error) {
	s, done, err := b.progbits(elfPath, section)
	if err != nil {
		return 0, err
	}
	defer done()

	return s.Addr, nil
}

// ExtractSection implements the memimage.SectionSource interface.
func (b Builtin) ExtractSection(elfPath string, section string) ([]byte, error) {
	s, done, err := b.progbits(elfPath, section)
	if err != nil {
		return nil, err
	}
	defer done()

	data, err := s.Data()
	if err != nil {
		return nil, curated.Errorf(ELFError, err)
	}

	if len(data) == 0 {
		return nil, curated.Errorf(SectionEmpty, section, elfPath)
	}

	return data, nil
}
