// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	dir := t.TempDir()
	src := "#include <Arduino.h>\nvoid setup() {}\nvoid loop() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blink.ino"), []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.pde"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.c"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.ino"), 0o755))

	set, err := Translate(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "blink.cpp"),
		filepath.Join(dir, "old.cpp"),
	}, set.Files)

	got, err := os.ReadFile(filepath.Join(dir, "blink.cpp"))
	require.NoError(t, err)
	require.Equal(t, src, string(got), "the copy must not be transformed")

	require.NoError(t, set.Remove())
	require.NoFileExists(t, filepath.Join(dir, "blink.cpp"))
	require.NoFileExists(t, filepath.Join(dir, "old.cpp"))
	require.FileExists(t, filepath.Join(dir, "blink.ino"))
	require.Empty(t, set.Files)
}

func TestTranslateNoSketch(t *testing.T) {
	set, err := Translate(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, set.Files)
	require.NoError(t, set.Remove())
}

func TestTranslateConflict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ino"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ino"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.cpp"), []byte("mine"), 0o644))

	set, err := Translate(dir)
	require.ErrorIs(t, err, ErrExists)
	require.Equal(t, []string{filepath.Join(dir, "a.cpp")}, set.Files)

	require.NoError(t, set.Remove())
	got, err := os.ReadFile(filepath.Join(dir, "b.cpp"))
	require.NoError(t, err)
	require.Equal(t, "mine", string(got), "existing files are never overwritten")
}
