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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/logger"
)

// Sentinel patterns for errors returned by the package.
const (
	ToolNotFound    = "%s: tool not found (%s): %v"
	ToolFailed      = "%s: %s failed: %v%s"
	SectionNotFound = "could not find section '%s' or its address in %s"
	SectionEmpty    = "section '%s' of %s is empty"
	AddressError    = "section '%s': cannot parse address (%s): %v"
	ScratchError    = "scratch file: %v"
	ELFError        = "ELF file: %v"
)

// Default programs. These are expected to be in the PATH.
const (
	DefaultReadelf = "riscv64-unknown-elf-readelf"
	DefaultObjcopy = "riscv64-unknown-elf-objcopy"
)

// Toolchain runs external programs to find and extract ELF sections.
type Toolchain struct {
	// paths to the readelf and objcopy programs. defaults are used if empty
	Readelf string
	Objcopy string

	// directory for the scratch file used by ExtractSection(). the default
	// temporary directory is used if empty
	ScratchDir string

	// runs the programs. ExecRunner is used if nil
	Runner Runner
}

// NewToolchain is the preferred method of initialisation for the Toolchain
// type.
func NewToolchain(readelf string, objcopy string) *Toolchain {
	return &Toolchain{
		Readelf: readelf,
		Objcopy: objcopy,
		Runner:  ExecRunner{},
	}
}

func (tc *Toolchain) readelf() string {
	if tc.Readelf == "" {
		return DefaultReadelf
	}
	return tc.Readelf
}

func (tc *Toolchain) objcopy() string {
	if tc.Objcopy == "" {
		return DefaultObjcopy
	}
	return tc.Objcopy
}

// run a tool and return its standard output. the step string says what the
// tool is being used for and is part of the error
func (tc *Toolchain) run(step string, tool string, args ...string) ([]byte, error) {
	r := tc.Runner
	if r == nil {
		r = ExecRunner{}
	}

	logger.Logf(logger.Allow, "toolchain", "running: %s %s", tool, strings.Join(args, " "))

	stdout, stderr, err := r.Run(tool, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(ToolNotFound, step, tool, err)
		}
		return nil, curated.Errorf(ToolFailed, step, tool, err, diagnostic(stdout, stderr))
	}

	return stdout, nil
}

// diagnostic formats the output of a failed tool. each part is on a separate
// line after the error message
func diagnostic(stdout, stderr []byte) string {
	s := strings.Builder{}
	if e := strings.TrimSpace(string(stderr)); e != "" {
		s.WriteString(fmt.Sprintf("\nstderr: %s", e))
	}
	if o := strings.TrimSpace(string(stdout)); o != "" {
		s.WriteString(fmt.Sprintf("\nstdout: %s", o))
	}
	return s.String()
}

// SectionAddress implements the memimage.SectionSource interface.
func (tc *Toolchain) SectionAddress(elfPath string, section string) (uint64, error) {
	listing, err := tc.run("reading section headers", tc.readelf(), "-S", elfPath)
	if err != nil {
		return 0, err
	}

	addr, err := FindSectionAddress(listing, section)
	if err != nil {
		if curated.Is(err, SectionNotFound) {
			return 0, curated.Errorf(SectionNotFound, section, elfPath)
		}
		return 0, err
	}

	return addr, nil
}

// FindSectionAddress scans the output of "readelf -S" for the named section.
// The section must be of type PROGBITS. The address is the second field after
// the section name.
//
//	[Nr] Name              Type            Addr     Off    Size   ES Flg Lk Inf Al
//	[ 1] .text             PROGBITS        80000000 001000 000124 00  AX  0   0  4
func FindSectionAddress(listing []byte, section string) (uint64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, section) || !strings.Contains(line, "PROGBITS") {
			continue
		}

		fields := strings.Fields(line)
		for i, f := range fields {
			if f != section {
				continue
			}
			if i+2 >= len(fields) {
				break
			}

			addr, err := strconv.ParseUint(fields[i+2], 16, 64)
			if err != nil {
				return 0, curated.Errorf(AddressError, section, fields[i+2], err)
			}
			return addr, nil
		}
	}

	return 0, curated.Errorf(SectionNotFound, section, "section header listing")
}

// ExtractSection implements the memimage.SectionSource interface.
//
// The objcopy program writes the section to a scratch file. The scratch file
// is removed before the function returns, whether or not there was an error.
func (tc *Toolchain) ExtractSection(elfPath string, section string) ([]byte, error) {
	f, err := os.CreateTemp(tc.ScratchDir, "section_*.bin")
	if err != nil {
		return nil, curated.Errorf(ScratchError, err)
	}
	scratch := f.Name()

	defer func() {
		err := os.Remove(scratch)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Logf(logger.Allow, "toolchain", "removing scratch file: %v", err)
		}
	}()

	// objcopy opens the file by name
	if err := f.Close(); err != nil {
		return nil, curated.Errorf(ScratchError, err)
	}

	_, err = tc.run("extracting section", tc.objcopy(), "-O", "binary", fmt.Sprintf("--only-section=%s", section), elfPath, scratch)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(scratch)
	if err != nil {
		return nil, curated.Errorf(ScratchError, err)
	}

	if len(data) == 0 {
		return nil, curated.Errorf(SectionEmpty, section, elfPath)
	}

	return data, nil
}
