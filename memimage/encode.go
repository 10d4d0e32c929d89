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

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rvcosim/cosim/curated"
	"github.com/rvcosim/cosim/logger"
)

// Sentinel patterns for errors returned by the package.
const (
	InvalidWordSize = "invalid word size (%d)"
	InvalidEndian   = "unrecognised byte order (%s)"
	EncodeError     = "encoding memory image: %v"
	OutputError     = "writing memory image: %v"
)

// Endian is the byte order used when reading a word from the binary.
type Endian int

// List of valid Endian values.
const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	}
	return fmt.Sprintf("endian(%d)", int(e))
}

// ParseEndian converts "little" or "big" (case insensitive) to an Endian
// value.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	}
	return LittleEndian, curated.Errorf(InvalidEndian, s)
}

// Options for the encoding of a memory image.
type Options struct {
	// number of bytes in a word. each word is one line of the image
	WordSize int

	// byte order of each word
	Endian Endian
}

// DefaultOptions are suitable for a 32bit little endian RISC-V core.
var DefaultOptions = Options{
	WordSize: 4,
	Endian:   LittleEndian,
}

func (opts Options) validate() error {
	if opts.WordSize <= 0 {
		return curated.Errorf(InvalidWordSize, opts.WordSize)
	}
	if opts.Endian != LittleEndian && opts.Endian != BigEndian {
		return curated.Errorf(InvalidEndian, opts.Endian)
	}
	return nil
}

// Stats about an encoded memory image.
type Stats struct {
	// byte address of the first byte and the word address written in the
	// image header
	StartAddress uint64
	WordAddress  uint64

	// false if the start address is not a multiple of the word size. the
	// word address is truncated in this case
	Aligned bool

	// number of bytes read from the binary and the number of words written.
	// the last word might have been padded
	Bytes int
	Words int
}

// Encode reads all bytes from r and writes them to w as a memory image. The
// start address is the byte address of the first byte in r.
//
// A start address that is not a multiple of the word size is not an error. A
// warning is logged and the Aligned field of the returned Stats is false.
func Encode(w io.Writer, r io.Reader, start uint64, opts Options) (Stats, error) {
	if err := opts.validate(); err != nil {
		return Stats{}, err
	}

	var st Stats
	st.StartAddress = start
	st.WordAddress, st.Aligned = wordAddress(start, uint64(opts.WordSize))

	if !st.Aligned {
		logger.Logf(logger.Allow, "memimage", "start address %#x is not word aligned for word size %d. header address will be @%08X",
			start, opts.WordSize, st.WordAddress)
	}

	bw := bufio.NewWriter(w)

	_, err := fmt.Fprintf(bw, "@%08X\n", st.WordAddress)
	if err != nil {
		return st, curated.Errorf(OutputError, err)
	}

	word := make([]byte, opts.WordSize)
	ordered := make([]byte, opts.WordSize)
	line := make([]byte, opts.WordSize*2+1)
	line[len(line)-1] = '\n'

	for {
		n, err := io.ReadFull(r, word)
		if n == 0 {
			if err == io.EOF {
				break
			}
			if err != nil {
				return st, curated.Errorf(EncodeError, err)
			}
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return st, curated.Errorf(EncodeError, err)
		}

		st.Bytes += n

		// zero pad a short final word at the high address end
		clear(word[n:])

		switch opts.Endian {
		case LittleEndian:
			for i := range word {
				ordered[i] = word[len(word)-1-i]
			}
		case BigEndian:
			copy(ordered, word)
		}

		hex.Encode(line, ordered)
		for i := range line[:len(line)-1] {
			// encoding/hex always produces lower case
			if line[i] >= 'a' && line[i] <= 'f' {
				line[i] -= 'a' - 'A'
			}
		}

		if _, err := bw.Write(line); err != nil {
			return st, curated.Errorf(OutputError, err)
		}
		st.Words++

		if n < len(word) {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		return st, curated.Errorf(OutputError, err)
	}

	return st, nil
}
