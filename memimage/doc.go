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

// Package memimage creates memory images for loading into a hardware
// simulation with the Verilog $readmemh system task.
//
// The image is a text file. The first line is an address directive, @
// followed by eight hex digits, giving the word address of the first word.
// Every following line is one word, written as 2*WordSize upper case hex
// digits, in increasing address order. For example, the eight bytes
//
//	01 00 00 00 02 00 00 00
//
// at byte address 0x1000 with a word size of four and little endian byte order
// become:
//
//	@00000400
//	00000001
//	00000002
//
// The Convert() function creates an image from a section of an ELF file. How
// the section is found and extracted is the job of a SectionSource. See the
// toolchain package for implementations.
package memimage
