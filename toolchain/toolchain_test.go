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
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/memimage"
	"github.com/rvcosim/cosim/toolchain"
	"github.com/rvcosim/cosim/test"
)

// listing is the output of readelf -S for a small RISC-V program
const listing = `There are 8 section headers, starting at offset 0x1210:

Section Headers:
  [Nr] Name              Type            Addr     Off    Size   ES Flg Lk Inf Al
  [ 0]                   NULL            00000000 000000 000000 00      0   0  0
  [ 1] .text.startup     PROGBITS        00000800 000800 000010 00  AX  0   0  4
  [ 2] .text             PROGBITS        00001000 001000 000008 00  AX  0   0  4
  [ 3] .data             PROGBITS        00002002 001008 000004 00  WA  0   0  1
  [ 4] .bss              NOBITS          00003000 00100c 000010 00  WA  0   0  4
  [ 5] .symtab           SYMTAB          00000000 00101c 000100 10      6   8  4
  [ 6] .strtab           STRTAB          00000000 00111c 000050 00      0   0  1
  [ 7] .shstrtab         STRTAB          00000000 00116c 00003c 00      0   0  1
Key to Flags:
  W (write), A (alloc), X (execute), M (merge), S (strings), I (info),
`

// fakeRunner pretends to be readelf and objcopy
type fakeRunner struct {
	// the section data "extracted" by objcopy
	section []byte

	// fail the named tool with an exit error or as if it was not found
	fail     string
	notFound string

	// every command line run
	calls [][]string

	// scratch file named in the objcopy command line
	scratch string
}

func (r *fakeRunner) Run(name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))

	if name == r.notFound {
		return nil, nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	if strings.HasSuffix(name, "readelf") {
		if name == r.fail {
			return nil, []byte("readelf: Error: 'prog.elf': No such file"), errors.New("exit status 1")
		}
		return []byte(listing), nil, nil
	}

	r.scratch = args[len(args)-1]
	if name == r.fail {
		return nil, []byte("objcopy: prog.elf: file format not recognized"), errors.New("exit status 1")
	}
	return nil, nil, os.WriteFile(r.scratch, r.section, 0644)
}

func TestFindSectionAddress(t *testing.T) {
	addr, err := toolchain.FindSectionAddress([]byte(listing), ".text")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint64(0x1000))

	addr, err = toolchain.FindSectionAddress([]byte(listing), ".data")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint64(0x2002))

	addr, err = toolchain.FindSectionAddress([]byte(listing), ".text.startup")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint64(0x800))

	// not PROGBITS
	_, err = toolchain.FindSectionAddress([]byte(listing), ".bss")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionNotFound))

	_, err = toolchain.FindSectionAddress([]byte(listing), ".rodata")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionNotFound))

	_, err = toolchain.FindSectionAddress([]byte("  [ 1] .text PROGBITS zzzz 000 0\n"), ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.AddressError))
}

func TestSectionAddress(t *testing.T) {
	r := &fakeRunner{}
	tc := &toolchain.Toolchain{Runner: r}

	addr, err := tc.SectionAddress("prog.elf", ".text")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint64(0x1000))

	want := [][]string{{toolchain.DefaultReadelf, "-S", "prog.elf"}}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", diff)
	}

	_, err = tc.SectionAddress("prog.elf", ".rodata")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionNotFound))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "prog.elf"))
}

func TestExtractSection(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{section: []byte{1, 2, 3, 4}}
	tc := &toolchain.Toolchain{Objcopy: "objcopy", ScratchDir: dir, Runner: r}

	data, err := tc.ExtractSection("prog.elf", ".data")
	test.DemandSuccess(t, err)
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, data); diff != "" {
		t.Errorf("unexpected section data (-want +got):\n%s", diff)
	}

	want := [][]string{{"objcopy", "-O", "binary", "--only-section=.data", "prog.elf", r.scratch}}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", diff)
	}

	test.ExpectEquality(t, filepath.Dir(r.scratch), dir)
	test.ExpectSuccess(t, strings.HasPrefix(filepath.Base(r.scratch), "section_"))
	expectNoScratch(t, dir)
}

func TestExtractSectionFailure(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{fail: "objcopy"}
	tc := &toolchain.Toolchain{Objcopy: "objcopy", ScratchDir: dir, Runner: r}

	_, err := tc.ExtractSection("prog.elf", ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.ToolFailed))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "file format not recognized"), err)
	expectNoScratch(t, dir)
}

func TestExtractSectionEmpty(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{}
	tc := &toolchain.Toolchain{ScratchDir: dir, Runner: r}

	_, err := tc.ExtractSection("prog.elf", ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.SectionEmpty))
	expectNoScratch(t, dir)
}

func TestToolNotFound(t *testing.T) {
	r := &fakeRunner{notFound: "readelf"}
	tc := &toolchain.Toolchain{Readelf: "readelf", Runner: r}

	_, err := tc.SectionAddress("prog.elf", ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.ToolNotFound))
	test.ExpectSuccess(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunnerNotFound(t *testing.T) {
	tc := toolchain.NewToolchain("this-readelf-does-not-exist", "")

	_, err := tc.SectionAddress("prog.elf", ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.ToolNotFound), err)

	tc = toolchain.NewToolchain(filepath.Join(t.TempDir(), "readelf"), "")
	_, err = tc.SectionAddress("prog.elf", ".text")
	test.ExpectSuccess(t, curated.Is(err, toolchain.ToolNotFound), err)
}

// Convert() with the fake toolchain. the output file should only exist if
// there was no error
func TestConvertWithToolchain(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "prog.hex")

	r := &fakeRunner{section: []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}}
	tc := &toolchain.Toolchain{ScratchDir: dir, Runner: r}

	_, err := memimage.Convert(tc, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.DemandSuccess(t, err)

	b, err := os.ReadFile(out)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "@00000400\n00000001\n00000002\n")

	// failure of the second tool
	test.DemandSuccess(t, os.Remove(out))
	r.fail = toolchain.DefaultObjcopy
	_, err = memimage.Convert(tc, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.ExpectSuccess(t, curated.Is(err, toolchain.ToolFailed))
	expectNoScratch(t, dir)

	_, err = os.Stat(out)
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

// expectNoScratch checks that the scratch directory is empty
func expectNoScratch(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "section_") {
			t.Errorf("scratch file %s has not been removed", e.Name())
		}
	}
}
