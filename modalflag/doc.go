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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("ELF2HEX", "TRIM", "COMPARE")
//	p, err := md.Parse()
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, in the same way that the go command has build,
// test, vet, etc. Mode comparisons are case insensitive and Mode() always
// returns the upper case version. When sub-modes have been added a mode must be
// given and Parse() returns ParseError if it is missing or unrecognised.
//
// Once we've decided on the mode we call NewMode(), add the flags for that
// mode and call Parse() again:
//
//	func trim(md *modalflag.Modes) error {
//		md.NewMode()
//		header := md.AddInt("skip_header", 4, "number of header lines to skip")
//		p, err := md.Parse()
//		if err != nil || p != modalflag.ParseContinue {
//			return err
//		}
//		if len(md.RemainingArgs()) != 2 {
//			return fmt.Errorf("input and output files required")
//		}
//		...
//	}
//
// When no sub-modes have been added, flags may be placed before, between or
// after the positional arguments. This is different to the flag package,
// which stops at the first positional argument. Positional arguments are
// available from RemainingArgs() and GetArg() in the order they were given.
// The argument "--" ends flag processing and everything after it is treated as
// a positional argument.
//
// Flags can be given with one or two leading dashes, as with the flag package.
package modalflag
