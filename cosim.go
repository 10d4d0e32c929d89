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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/rvcosim/cosim/logger"
	"github.com/rvcosim/cosim/logtrim"
	"github.com/rvcosim/cosim/memimage"
	"github.com/rvcosim/cosim/modalflag"
	"github.com/rvcosim/cosim/terminal"
	"github.com/rvcosim/cosim/toolchain"
	"github.com/rvcosim/cosim/trace"
	"github.com/rvcosim/cosim/version"
)

// exit values returned by launch()
const (
	exitSuccess = 0
	exitFailure = 1
)

// number of log entries shown with an error when the log is not being echoed
const tailOnError = 10

const launchHelp = `Examples:
  cosim elf2hex prog.elf prog.hex
  cosim elf2hex -section .data -wordsize 8 prog.elf data.hex
  cosim trim -skip_header 4 -skip_footer 3 sim.log sim.trace
  cosim compare iss.trace rtl.trace

Use "cosim <mode> -help" for the flags of each mode.`

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal is true if w is a file connected to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && terminal.IsTerminal(f)
}

// launch the mode selected by args. returns the exit value for the process.
func launch(args []string, stdout io.Writer, stderr io.Writer) int {
	// decide on colour before anything has been written to either stream
	colorOut := isTerminal(stdout)
	var errOut io.Writer = stderr
	if isTerminal(stderr) {
		errOut = logger.NewColorizer(stderr)
	}

	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("ELF2HEX", "TRIM", "COMPARE", "VERSION")
	md.AdditionalHelp(launchHelp)

	quiet := md.AddBool("quiet", false, "do not echo log messages to stderr")
	logfile := md.AddString("logfile", "", "write the log to file when finished")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitSuccess

	case modalflag.ParseError:
		fmt.Fprintf(errOut, "* error: %v\n", err)
		return exitFailure
	}

	// every invocation starts with an empty log
	logger.Clear()

	if *quiet {
		logger.SetEcho(nil)
	} else {
		logger.SetEcho(stderr)
	}

	switch md.Mode() {
	case "ELF2HEX":
		err = elf2hex(md)

	case "TRIM":
		err = trim(md)

	case "COMPARE":
		err = compare(md, colorOut)

	case "VERSION":
		err = showVersion(md)
	}

	if *logfile != "" {
		if lerr := writeLog(*logfile); lerr != nil && err == nil {
			err = lerr
		}
	}

	if err != nil {
		s := &strings.Builder{}
		fmt.Fprintf(s, "* error in %s mode: %s\n", md, err)

		// the log was not echoed as it was created so show the end of it
		if *quiet {
			logger.Tail(s, tailOnError)
		}

		io.WriteString(errOut, s.String())
		return exitFailure
	}

	return exitSuccess
}

// writeLog writes the entire central log to the named file.
func writeLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("logfile: %w", err)
	}

	logger.Write(f)

	if err := f.Close(); err != nil {
		return fmt.Errorf("logfile: %w", err)
	}

	return nil
}

const elf2hexHelp = `Converts one section of a RISC-V ELF file to a memory image suitable for
the Verilog $readmemh task. The image starts with an @ line giving the word
address of the section and is followed by one word per line.

The section is found with readelf and extracted with objcopy. Use -builtin
to read the ELF file directly if no RISC-V toolchain is installed.

Usage: cosim elf2hex [flags] elf_file output_hex_file`

func elf2hex(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(elf2hexHelp)

	objcopy := md.AddString("objcopy", toolchain.DefaultObjcopy, "objcopy program")
	readelf := md.AddString("readelf", toolchain.DefaultReadelf, "readelf program")
	section := md.AddString("section", ".text", "section to convert")
	wordsize := md.AddInt("wordsize", memimage.DefaultOptions.WordSize, "number of bytes in each word of the image")
	endian := md.AddString("endian", memimage.DefaultOptions.Endian.String(), "byte order of each word: little, big")
	builtin := md.AddBool("builtin", false, "read the ELF file directly rather than with readelf and objcopy")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("ELF file and output file required for %s mode", md)
	case 2:
		e, err := memimage.ParseEndian(*endian)
		if err != nil {
			return err
		}

		opts := memimage.Options{
			WordSize: *wordsize,
			Endian:   e,
		}

		var src memimage.SectionSource
		if *builtin {
			src = toolchain.Builtin{}
		} else {
			src = toolchain.NewToolchain(*readelf, *objcopy)
		}

		_, err = memimage.Convert(src, md.GetArg(0), *section, md.GetArg(1), opts)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func trim(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Removes the header and footer lines from simulator output.\n\nUsage: cosim trim [flags] input_file output_file")

	header := md.AddInt("skip_header", logtrim.DefaultHeader, "number of lines to remove from the start of the file")
	footer := md.AddInt("skip_footer", logtrim.DefaultFooter, "number of lines to remove from the end of the file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("input file and output file required for %s mode", md)
	case 2:
		_, err := logtrim.TrimFile(md.GetArg(0), md.GetArg(1), *header, *footer)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

const compareHelp = `Compares two register traces value by value. Each line of a trace is a
decimal or hexadecimal number, or X for a cycle with no register write.
Lines that are neither are ignored.

X only matches X. The comparison fails if any position differs or if exactly
one of the traces is empty. A difference in length alone is a warning.

Usage: cosim compare [flags] file1 file2`

func compare(md *modalflag.Modes, colorOut bool) error {
	md.NewMode()
	md.AdditionalHelp(compareHelp)

	color := md.AddBool("color", colorOut, "colour mismatches and the verdict")
	memvizPath := md.AddString("memviz", "", "write a graphviz description of the comparison result to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("two trace files required for %s mode", md)
	case 2:
		result, err := trace.CompareFiles(md.GetArg(0), md.GetArg(1))
		if err != nil {
			return err
		}

		err = result.Report(md.Output, trace.ReportOptions{
			NameA: md.GetArg(0),
			NameB: md.GetArg(1),
			Color: *color,
		})
		if err != nil {
			return err
		}

		if *memvizPath != "" {
			if err := dumpResult(*memvizPath, &result); err != nil {
				return err
			}
		}

		return result.Err()
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

// dumpResult writes a graphviz description of the comparison result.
func dumpResult(path string, result *trace.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}

	memviz.Map(f, result)

	if err := f.Close(); err != nil {
		return fmt.Errorf("memviz: %w", err)
	}

	logger.Logf(logger.Allow, "compare", "comparison result written to %s", path)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	v, rev, release := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	if !release {
		fmt.Fprintf(md.Output, "revision: %s\n", rev)
	}

	return nil
}
