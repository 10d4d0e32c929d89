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

package toolchain_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/memimage"
	"github.com/rvcosim/cosim/toolchain"
	"github.com/rvcosim/cosim/test"
)

// writeELF creates a minimal 32bit little endian RISC-V ELF file with a .text
// section at addr, a .bss section and the section name table
func writeELF(t *testing.T, addr uint32, text []byte) string {
	t.Helper()

	const ehsize = 52
	const shentsize = 40

	shstrtab := []byte("\x00.text\x00.shstrtab\x00.bss\x00")
	textOff := uint32(ehsize)
	strOff := textOff + uint32(len(text))
	shOff := (strOff + uint32(len(shstrtab)) + 3) &^ 3

	b := &bytes.Buffer{}
	w := func(v any) {
		test.DemandSuccess(t, binary.Write(b, binary.LittleEndian, v))
	}

	// ELF header
	b.Write([]byte{0x7f, 'E', 'L', 'F', 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	w(uint16(2))         // e_type: executable
	w(uint16(243))       // e_machine: RISC-V
	w(uint32(1))         // e_version
	w(addr)              // e_entry
	w(uint32(0))         // e_phoff
	w(shOff)             // e_shoff
	w(uint32(0))         // e_flags
	w(uint16(ehsize))    // e_ehsize
	w(uint16(0))         // e_phentsize
	w(uint16(0))         // e_phnum
	w(uint16(shentsize)) // e_shentsize
	w(uint16(4))         // e_shnum
	w(uint16(2))         // e_shstrndx

	b.Write(text)
	b.Write(shstrtab)
	for uint32(b.Len()) < shOff {
		b.WriteByte(0)
	}

	section := func(name, typ, flags, addr, off, size, align uint32) {
		w([]uint32{name, typ, flags, addr, off, size, 0, 0, align, 0})
	}
	section(0, 0, 0, 0, 0, 0, 0)
	section(1, 1, 6, addr, textOff, uint32(len(text)), 4)
	section(7, 3, 0, 0, strOff, uint32(len(shstrtab)), 1)
	section(17, 8, 3, addr+0x1000, strOff, 16, 4)

	p := filepath.Join(t.TempDir(), "prog.elf")
	test.DemandSuccess(t, os.WriteFile(p, b.Bytes(), 0644))
	return p
}

func TestBuiltin(t *testing.T) {
	text := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	p := writeELF(t, 0x1000, text)

	addr, err := toolchain.Builtin{}.SectionAddress(p, ".text")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint64(0x1000))

	data, err := toolchain.Builtin{}.ExtractSection(p, ".text")
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(text, data); diff != "" {
		t.Errorf("unexpected section data (-want +got):\n%s", diff)
	}

	// .bss is NOBITS
	_, err = toolchain.Builtin{}.SectionAddress(p, ".bss")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionNotFound))

	_, err = toolchain.Builtin{}.ExtractSection(p, ".data")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionNotFound))
}

func TestBuiltinNotELF(t *testing.T) {
	p := filepath.Join(t.TempDir(), "prog.elf")
	test.DemandSuccess(t, os.WriteFile(p, []byte("not an elf file"), 0644))

	_, err := toolchain.Builtin{}.SectionAddress(p, ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.ELFError))
}

func TestConvertWithBuiltin(t *testing.T) {
	p := writeELF(t, 0x1000, []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})
	out := filepath.Join(t.TempDir(), "prog.hex")

	_, err := memimage.Convert(toolchain.Builtin{}, p, ".text", out, memimage.DefaultOptions)
	test.DemandSuccess(t, err)

	b, err := os.ReadFile(out)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "@00000400\n00000001\n00000002\n")
}
