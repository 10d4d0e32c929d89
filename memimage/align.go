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

package memimage

import "golang.org/x/exp/constraints"

// wordAddress converts a byte address to a word address. The conversion
// truncates, the second return value is false if addr is not a multiple of
// size.
func wordAddress[U constraints.Unsigned](addr U, size U) (U, bool) {
	return addr / size, addr%size == 0
}
