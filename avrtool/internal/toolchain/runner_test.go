// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecSimulate(t *testing.T) {
	echo := new(bytes.Buffer)
	x := &Exec{Echo: echo, Simulate: true}

	res := x.Run([]string{"/nonexistent/avr-gcc", "-o/tmp/a b.o"})
	require.True(t, res.OK())
	require.NoError(t, res.Check())
	require.Equal(t, "/nonexistent/avr-gcc '-o/tmp/a b.o'\n", echo.String())
}

func TestExecExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh in PATH")
	}
	echo := new(bytes.Buffer)
	x := &Exec{Echo: echo, Stdout: new(bytes.Buffer), Stderr: new(bytes.Buffer)}

	res := x.Run([]string{"sh", "-c", "exit 3"})
	require.False(t, res.OK())
	require.Equal(t, 3, res.ExitCode)
	require.Empty(t, echo.String(), "commands are echoed only in verbose or simulate mode")

	var ce *CmdError
	require.ErrorAs(t, res.Check(), &ce)
	require.Equal(t, []string{"sh", "-c", "exit 3"}, ce.Cmd)

	require.True(t, x.Run([]string{"sh", "-c", "exit 0"}).OK())
}

func TestExecNotFound(t *testing.T) {
	x := &Exec{}
	res := x.Run([]string{"/nonexistent/avrdude"})
	require.Equal(t, -1, res.ExitCode)
	require.Error(t, res.Err)
	require.Error(t, res.Check())
}
