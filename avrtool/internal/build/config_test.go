// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/embeddedgo/avrtools/avrtool/internal/target"
	"github.com/stretchr/testify/require"
)

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	got, err := CheckDir(dir, ExitInvalidLib, "library does not exist [$path]", true)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	got, err = CheckDir("", ExitNoToolchain, "x", false)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = CheckDir("", ExitNoCore, "core not specified [$path]", true)
	code, msg := Code(err)
	require.Equal(t, ExitNoCore, code)
	require.Equal(t, "core not specified []", msg)

	missing := filepath.Join(dir, "missing")
	_, err = CheckDir(missing, ExitInvalidInclude, "include does not exist [$path] $other", true)
	code, msg = Code(err)
	require.Equal(t, ExitInvalidInclude, code)
	require.Equal(t, "include does not exist ["+missing+"] $other", msg)

	_, err = CheckDir(file, ExitInvalidLib, "$path", true)
	code, _ = Code(err)
	require.Equal(t, ExitInvalidLib, code)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, &Project{}, p)

	toml := `board = "mega"
mcu = "atmega2560"
clock = 8000000
programmer = "wiring"
baud = 57600
port = "/dev/ttyUSB1"
core_dir = "hw/cores/arduino"
variants_dir = "/opt/arduino/variants"
libraries = ["lib/Servo", "lib/Wire"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(toml), 0o644))
	p, err = LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, "mega", p.Board)
	require.Equal(t, uint64(8000000), p.Clock)
	require.Equal(t, 57600, p.Baud)
	require.Equal(t, filepath.Join(dir, "hw/cores/arduino"), p.CoreDir)
	require.Equal(t, "/opt/arduino/variants", p.VariantsDir)
	require.Equal(t, []string{filepath.Join(dir, "lib/Servo"), filepath.Join(dir, "lib/Wire")}, p.Libraries)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte("board = \n"), 0o644))
	_, err = LoadProject(dir)
	code, _ := Code(err)
	require.Equal(t, ExitProjectFile, code)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	for _, d := range []string{"proj", "core", "variants", "lib", "inc"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	toml := `board = "leonardo"
baud = 57600
core_dir = "../core"
libraries = ["../lib"]
`
	require.NoError(t, os.WriteFile(filepath.Join(proj, ProjectFileName), []byte(toml), 0o644))
	t.Setenv("AVRTOOL_BOARD", "")
	t.Setenv("AVRTOOL_BAUD", "")
	t.Setenv("AVRTOOL_CORE", "")
	t.Setenv("AVRTOOL_ROOT", "")
	t.Setenv("AVRTOOL_PORT", "/dev/ttyS3")
	t.Setenv("AVRTOOL_DUDECONF", "")
	t.Setenv("AVRTOOL_VARIANTS", filepath.Join(root, "variants"))

	cfg, err := Resolve(&Options{
		ProjectDir: proj,
		Board:      "nano",
		Includes:   []string{filepath.Join(root, "inc")},
		Libraries:  []string{filepath.Join(root, "lib")},
		OnlyBuild:  true,
	})
	require.NoError(t, err)
	require.Equal(t, "nano", cfg.Target.Board, "flags override the project file")
	require.Equal(t, 57600, cfg.Target.Baud)
	require.Equal(t, uint64(target.DefaultClock), cfg.Target.Clock)
	require.Equal(t, "/dev/ttyS3", cfg.Port)
	require.Equal(t, filepath.Join(root, "core"), cfg.CoreDir)
	require.Equal(t, filepath.Join(root, "variants", "micro"), cfg.VariantDir())
	require.Equal(t, []string{filepath.Join(root, "lib")}, cfg.Libraries, "duplicates removed")
	require.Equal(t, []string{filepath.Join(root, "inc")}, cfg.Includes)
	require.Empty(t, cfg.Toolchain)
	require.True(t, cfg.OnlyBuild)

	_, err = Resolve(&Options{ProjectDir: proj, Toolchain: filepath.Join(root, "nope")})
	code, _ := Code(err)
	require.Equal(t, ExitNoToolchain, code)

	_, err = Resolve(&Options{ProjectDir: proj, Libraries: []string{filepath.Join(root, "nolib")}})
	code, _ = Code(err)
	require.Equal(t, ExitInvalidLib, code)

	require.NoError(t, os.Remove(filepath.Join(proj, ProjectFileName)))
	_, err = Resolve(&Options{ProjectDir: proj})
	code, _ = Code(err)
	require.Equal(t, ExitNoCore, code)
}
