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

// Package trace reads and compares register-trace files.
//
// A trace file contains one value per line: the value written to a register,
// in execution order. Values can be decimal, hexadecimal with a 0x prefix, or
// bare hexadecimal digits. The special value X means that no write was
// expected at that point. Lines that are blank or cannot be parsed are
// skipped; they are not considered errors.
//
// Two traces, usually one from the hardware simulation and one from the
// reference simulator, are compared position by position with Compare(). The
// Result can be written as a human readable report with Result.Report().
//
// An X in one trace and a number in the other is always a mismatch,
// whichever trace holds the X. Two Xs match.
package trace
