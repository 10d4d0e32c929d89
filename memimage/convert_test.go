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

package memimage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/memimage"
	"github.com/rvcosim/cosim/test"
)

// fakeSource is a SectionSource that returns fixed values
type fakeSource struct {
	addr       uint64
	data       []byte
	addrErr    error
	extractErr error

	// the number of calls to ExtractSection()
	extracted int
}

func (src *fakeSource) SectionAddress(elfPath string, section string) (uint64, error) {
	return src.addr, src.addrErr
}

func (src *fakeSource) ExtractSection(elfPath string, section string) ([]byte, error) {
	src.extracted++
	return src.data, src.extractErr
}

func TestConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.hex")
	src := &fakeSource{
		addr: 0x1000,
		data: []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00},
	}

	st, err := memimage.Convert(src, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, st.Words, 2)

	b, err := os.ReadFile(out)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "@00000400\n00000001\n00000002\n")
}

func TestConvertSectionError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.hex")
	src := &fakeSource{addrErr: errors.New("section not found")}

	_, err := memimage.Convert(src, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, src.extracted, 0)

	_, err = os.Stat(out)
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

func TestConvertExtractError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.hex")
	src := &fakeSource{extractErr: errors.New("objcopy failed")}

	_, err := memimage.Convert(src, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.ExpectFailure(t, err)

	_, err = os.Stat(out)
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

func TestConvertInvalidWordSize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.hex")
	src := &fakeSource{}

	_, err := memimage.Convert(src, "prog.elf", ".text", out, memimage.Options{WordSize: -1})
	test.ExpectSuccess(t, curated.Is(err, memimage.InvalidWordSize))
	test.ExpectEquality(t, src.extracted, 0)
}

func TestConvertUnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no-such-dir", "prog.hex")
	src := &fakeSource{data: []byte{1, 2, 3, 4}}

	_, err := memimage.Convert(src, "prog.elf", ".text", out, memimage.DefaultOptions)
	test.ExpectSuccess(t, curated.Is(err, memimage.OutputError))
}
