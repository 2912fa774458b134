// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Result describes one finished (or simulated) tool invocation.
type Result struct {
	Cmd      []string
	ExitCode int   // -1 if the process could not be started
	Err      error // reason the process could not be started
}

func (r Result) OK() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// Check returns nil for a successful invocation and a *CmdError otherwise.
func (r Result) Check() error {
	if r.OK() {
		return nil
	}
	return &CmdError{Cmd: r.Cmd, ExitCode: r.ExitCode, Err: r.Err}
}

// CmdError is returned for every tool invocation that did not exit with 0.
type CmdError struct {
	Cmd      []string
	ExitCode int
	Err      error
}

func (e *CmdError) Unwrap() error {
	return e.Err
}

func (e *CmdError) Error() string {
	name := "?"
	if len(e.Cmd) != 0 {
		name = e.Cmd[0]
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v\n  %s", name, e.Err, shellquote.Join(e.Cmd...))
	}
	return fmt.Sprintf(
		"%s: exit code %d\n  %s", name, e.ExitCode, shellquote.Join(e.Cmd...),
	)
}

// A Runner runs one external command and waits for it to exit.
type Runner interface {
	Run(cmd []string) Result
}

// Exec runs commands as child processes. In the Simulate mode the commands
// are only printed and always succeed.
type Exec struct {
	Echo     io.Writer // where the commands are printed, os.Stdout if nil
	Stdout   io.Writer // os.Stdout if nil
	Stderr   io.Writer // os.Stderr if nil
	Verbose  bool      // print every command before running it
	Simulate bool
}

func (x *Exec) Run(cmd []string) Result {
	res := Result{Cmd: cmd}
	if x.Verbose || x.Simulate {
		echo := x.Echo
		if echo == nil {
			echo = os.Stdout
		}
		fmt.Fprintln(echo, shellquote.Join(cmd...))
	}
	if x.Simulate {
		return res
	}
	if len(cmd) == 0 {
		res.ExitCode, res.Err = -1, errors.New("empty command")
		return res
	}
	path, err := exec.LookPath(cmd[0])
	if err != nil {
		res.ExitCode, res.Err = -1, err
		return res
	}
	c := &exec.Cmd{
		Path:   path,
		Args:   cmd,
		Stdout: orDefault(x.Stdout, os.Stdout),
		Stderr: orDefault(x.Stderr, os.Stderr),
	}
	err = c.Run()
	if err == nil {
		return res
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		res.ExitCode = ee.ProcessState.ExitCode()
		return res
	}
	res.ExitCode, res.Err = -1, err
	return res
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
