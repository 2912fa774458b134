// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInOutFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blink")

	in, out := InOutFiles(dir, ".build", "", ".elf", "", ".hex")
	require.Equal(t, filepath.Join(dir, ".build", "blink.elf"), in)
	require.Equal(t, filepath.Join(dir, ".build", "blink.hex"), out)

	in, out = InOutFiles(dir, ".build", "x/a.elf", ".elf", "b.ihex", ".hex")
	require.Equal(t, "x/a.elf", in)
	require.Equal(t, "b.ihex", out)
}

func TestStage(t *testing.T) {
	buf := new(bytes.Buffer)
	Stage(buf, "Linking")
	require.Contains(t, buf.String(), "==== Linking")
}

func TestFatal(t *testing.T) {
	if os.Getenv("AVRTOOL_TEST_FATAL") == "1" {
		Fatal("%s: too many arguments", "upload")
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "AVRTOOL_TEST_FATAL=1")
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	err := cmd.Run()
	var ee *exec.ExitError
	require.True(t, errors.As(err, &ee))
	require.Equal(t, 1, ee.ExitCode())
	require.Contains(t, stderr.String(), "upload: too many arguments\n")
}
