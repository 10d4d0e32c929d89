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
	"bytes"
	"os/exec"
)

// Runner implementations run an external program and return its captured
// output. A non-nil error is returned if the program could not be started or
// if it exited with a non-zero status.
type Runner interface {
	Run(name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// ExecRunner runs programs with the os/exec package. It waits for the program
// to finish, there is no timeout.
type ExecRunner struct{}

// Run implements the Runner interface.
func (ExecRunner) Run(name string, args ...string) ([]byte, []byte, error) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
