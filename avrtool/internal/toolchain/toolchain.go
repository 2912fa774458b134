// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toolchain drives the AVR GNU toolchain and avrdude. Every method
// builds a fixed argument vector and hands it to a Runner which blocks until
// the tool exits. A tool that exits with a non-zero status makes the method
// return a *CmdError.
package toolchain

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/embeddedgo/avrtools/avrtool/internal/target"
)

// Tool binary names.
const (
	GCC     = "avr-gcc"
	GXX     = "avr-g++"
	AR      = "avr-ar"
	Objcopy = "avr-objcopy"
	Avrdude = "avrdude"
)

type Toolchain struct {
	Root    string         // directory of the tool binaries, "" means PATH
	Target  target.Profile // MCU, clock, environment version, programmer
	Verbose bool           // pass -v to the tools
	Runner  Runner
	Notice  io.Writer // classifier notices, os.Stdout if nil
}

// Bin returns the name used to invoke the tool.
func (tc *Toolchain) Bin(name string) string {
	if tc.Root == "" {
		return name
	}
	return filepath.Join(tc.Root, name)
}

func (tc *Toolchain) command(tool string, args ...string) []string {
	cmd := make([]string, 0, len(args)+2)
	cmd = append(cmd, tc.Bin(tool))
	if tc.Verbose {
		cmd = append(cmd, "-v")
	}
	return append(cmd, args...)
}

func (tc *Toolchain) run(cmd []string) error {
	return tc.Runner.Run(cmd).Check()
}

func (tc *Toolchain) notice(f string, args ...any) {
	w := tc.Notice
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, f+"\n", args...)
}
