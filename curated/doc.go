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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a pattern,
// placeholder values and returns an error. The pattern is what identifies the
// error, so packages export their patterns as constants:
//
//	const SectionNotFound = "section %s not found in %s"
//
//	e := curated.Errorf(SectionNotFound, ".text", "prog.elf")
//
//	if curated.Is(e, SectionNotFound) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("elf2hex: %v", e)
//
//	if curated.Has(f, SectionNotFound) {
//		fmt.Println("true")
//	}
//
// In this example curated.Is(f, SectionNotFound) is false because f was
// created with the pattern "elf2hex: %v".
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). An uncurated error usually means something unexpected has
// happened, for example an error returned directly from the os package.
//
// The Error() function normalises the error chain. Parts are separated by the
// sub-string ": " and if the first two parts are the same then one of them is
// removed. This means that a function does not need to care whether the error
// it is wrapping has already been given the same prefix:
//
//	func A() error {
//		if err := B(); err != nil {
//			return curated.Errorf("trim: %v", err)
//		}
//		return nil
//	}
//
//	func B() error {
//		return curated.Errorf("trim: negative footer count")
//	}
//
// The message for A() is "trim: negative footer count" and not "trim: trim:
// negative footer count".
//
// Curated errors also implement Unwrap(). Any error values used as
// placeholders are returned so that the standard errors.Is() and errors.As()
// functions see through curated errors. This is useful for checking for
// os.ErrNotExist or exec.ErrNotFound underneath a curated error.
package curated
