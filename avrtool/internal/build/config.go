// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/embeddedgo/avrtools/avrtool/internal/target"
	"github.com/embeddedgo/avrtools/avrtool/internal/toolchain"
	"github.com/naoina/toml"
	"github.com/xyproto/env/v2"
)

// BuildDirName is the name of the build directory in the project directory.
const BuildDirName = ".build"

// ProjectFileName is the name of the optional project file.
const ProjectFileName = "avrtool.toml"

// Config is the fully resolved configuration of one build.
type Config struct {
	ProjectDir  string
	Toolchain   string // directory of the tool binaries, "" means PATH
	Target      target.Profile
	Includes    []string // extra include directories
	Libraries   []string // library directories, compiled and searched for headers
	CoreDir     string   // core runtime sources (Arduino.h, main.cpp, ...)
	VariantsDir string   // contains one subdirectory per board variant

	Verbose   bool
	Simulate  bool // print the commands, don't run them
	Refresh   bool // remove the build directory before building
	OnlyBuild bool // don't upload

	Port     string // serial device of the programmer
	DudeConf string // avrdude configuration file

	Out    io.Writer        // progress output, os.Stdout if nil
	Runner toolchain.Runner // nil means *toolchain.Exec
}

// VariantDir returns the directory of the board variant.
func (cfg *Config) VariantDir() string {
	return filepath.Join(cfg.VariantsDir, cfg.Target.Variant())
}

// Project describes the content of the project file. Relative paths are
// relative to the project directory.
type Project struct {
	Board       string   `toml:"board"`
	MCU         string   `toml:"mcu"`
	Clock       uint64   `toml:"clock"`
	Programmer  string   `toml:"programmer"`
	Baud        int      `toml:"baud"`
	Port        string   `toml:"port"`
	Toolchain   string   `toml:"toolchain"`
	CoreDir     string   `toml:"core_dir"`
	VariantsDir string   `toml:"variants_dir"`
	DudeConf    string   `toml:"dude_conf"`
	Libraries   []string `toml:"libraries"`
	Includes    []string `toml:"includes"`
}

// LoadProject reads the project file from dir. A missing file is not an
// error, an empty Project is returned instead.
func LoadProject(dir string) (*Project, error) {
	p := new(Project)
	name := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, &Error{ExitProjectFile, err.Error(), err}
	}
	if err := toml.Unmarshal(data, p); err != nil {
		return nil, &Error{ExitProjectFile, name + ": " + err.Error(), err}
	}
	rel := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	p.Toolchain = rel(p.Toolchain)
	p.CoreDir = rel(p.CoreDir)
	p.VariantsDir = rel(p.VariantsDir)
	p.DudeConf = rel(p.DudeConf)
	for i, l := range p.Libraries {
		p.Libraries[i] = rel(l)
	}
	for i, inc := range p.Includes {
		p.Includes[i] = rel(inc)
	}
	return p, nil
}

// Options are the values given on the command line. Empty (zero) values
// are taken from the environment, then from the project file, then from
// target.Default.
type Options struct {
	ProjectDir  string
	Toolchain   string
	Board       string
	MCU         string
	Programmer  string
	Clock       uint64
	Baud        int
	Includes    []string
	Libraries   []string
	CoreDir     string
	VariantsDir string
	Port        string
	DudeConf    string

	Verbose   bool
	Simulate  bool
	Refresh   bool
	OnlyBuild bool
}

// Resolve merges o with the environment and the project file and checks
// the directories.
func Resolve(o *Options) (*Config, error) {
	dir := o.ProjectDir
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &Error{ExitFS, err.Error(), err}
	}
	proj, err := LoadProject(dir)
	if err != nil {
		return nil, err
	}
	t := target.Default()
	t.Board = first(o.Board, env.Str("AVRTOOL_BOARD"), proj.Board, t.Board)
	t.MCU = first(o.MCU, proj.MCU, t.MCU)
	t.Programmer = first(o.Programmer, proj.Programmer, t.Programmer)
	t.Baud = firstInt(o.Baud, env.Int("AVRTOOL_BAUD", 0), proj.Baud, t.Baud)
	if o.Clock != 0 {
		t.Clock = o.Clock
	} else if proj.Clock != 0 {
		t.Clock = proj.Clock
	}
	cfg := &Config{
		ProjectDir: dir,
		Target:     t,
		Port:       first(o.Port, env.Str("AVRTOOL_PORT"), proj.Port),
		DudeConf:   first(o.DudeConf, env.Str("AVRTOOL_DUDECONF"), proj.DudeConf),
		Verbose:    o.Verbose,
		Simulate:   o.Simulate,
		Refresh:    o.Refresh,
		OnlyBuild:  o.OnlyBuild,
	}

	cfg.CoreDir, err = CheckDir(
		first(o.CoreDir, env.Str("AVRTOOL_CORE"), proj.CoreDir),
		ExitNoCore,
		"core directory was not specified or does not exist [$path]",
		true,
	)
	if err != nil {
		return nil, err
	}
	cfg.VariantsDir, err = CheckDir(
		first(o.VariantsDir, env.Str("AVRTOOL_VARIANTS"), proj.VariantsDir),
		ExitNoCore,
		"variants directory was not specified or does not exist [$path]",
		true,
	)
	if err != nil {
		return nil, err
	}
	cfg.Toolchain, err = CheckDir(
		first(o.Toolchain, env.Str("AVRTOOL_ROOT"), proj.Toolchain),
		ExitNoToolchain,
		"toolchain directory does not exist [$path]",
		false,
	)
	if err != nil {
		return nil, err
	}
	for _, l := range uniq(slices.Concat(o.Libraries, proj.Libraries)) {
		l, err = CheckDir(l, ExitInvalidLib, "library does not exist [$path]", true)
		if err != nil {
			return nil, err
		}
		cfg.Libraries = append(cfg.Libraries, l)
	}
	for _, inc := range uniq(slices.Concat(o.Includes, proj.Includes)) {
		inc, err = CheckDir(inc, ExitInvalidInclude, "include does not exist [$path]", true)
		if err != nil {
			return nil, err
		}
		cfg.Includes = append(cfg.Includes, inc)
	}
	return cfg, nil
}

func first(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

func firstInt(is ...int) int {
	for _, i := range is {
		if i != 0 {
			return i
		}
	}
	return 0
}

func uniq(ss []string) []string {
	var u []string
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if c := filepath.Clean(s); !seen[c] {
			seen[c] = true
			u = append(u, s)
		}
	}
	return u
}
