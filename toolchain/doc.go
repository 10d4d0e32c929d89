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

// Package toolchain finds and extracts sections of ELF files.
//
// The Toolchain type uses the readelf and objcopy programs of a GNU RISC-V
// toolchain. The programs are run by a Runner, which can be replaced for
// testing or to run the tools in some other way. The section address is read
// from the section header listing produced by "readelf -S" and the section is
// extracted with "objcopy -O binary --only-section".
//
// The Builtin type does the same thing with the debug/elf package and does not
// need a toolchain to be installed.
//
// Both types implement the memimage.SectionSource interface.
package toolchain
