// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build runs the whole pipeline: it compiles the core runtime, the
// libraries and the project, links them into one ELF image, extracts the
// flash and EEPROM images and optionally uploads the flash image.
//
// Everything runs sequentially and every tool failure stops the build. The
// build directory is reused between runs (unless refreshed) and every file
// is recompiled every time.
package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/embeddedgo/avrtools/avrtool/internal/image"
	"github.com/embeddedgo/avrtools/avrtool/internal/sketch"
	"github.com/embeddedgo/avrtools/avrtool/internal/toolchain"
	"github.com/embeddedgo/avrtools/avrtool/internal/util"
)

// Result lists the artifacts of a build.
type Result struct {
	BuildDir   string
	Objects    []string // in the link order: project, libraries, core
	Translated []string // translated sketch copies (removed at the end)
	ELF        string
	Hex        string // flash image
	EEPROM     string // EEPROM image
	Uploaded   bool
}

// Run builds the project described by cfg. It returns an *Error on failure.
func Run(cfg *Config) (*Result, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if !cfg.OnlyBuild && cfg.Port == "" {
		return nil, &Error{ExitNoUploadDevice, toolchain.ErrNoPort.Error(), toolchain.ErrNoPort}
	}
	projDir, err := filepath.Abs(cfg.ProjectDir)
	if err != nil {
		return nil, fail("project", err)
	}
	res := &Result{BuildDir: filepath.Join(projDir, BuildDirName)}
	fmt.Fprintf(out, "Building in %s...\n", res.BuildDir)
	if err := prepare(out, res.BuildDir, cfg.Refresh); err != nil {
		return res, fail("build directory", err)
	}

	runner := cfg.Runner
	if runner == nil {
		runner = &toolchain.Exec{
			Echo:     out,
			Verbose:  cfg.Verbose,
			Simulate: cfg.Simulate,
		}
	}
	tc := &toolchain.Toolchain{
		Root:    cfg.Toolchain,
		Target:  cfg.Target,
		Verbose: cfg.Verbose,
		Runner:  runner,
		Notice:  out,
	}
	core := []string{cfg.CoreDir, cfg.VariantDir()}

	util.Stage(out, "Compiling core")
	coreObjs, err := tc.CompileDir(cfg.CoreDir, res.BuildDir, core)
	if err != nil {
		return res, fail("core", err)
	}

	util.Stage(out, "Compiling libraries")
	var libObjs []string
	libIncludes := slices.Concat(cfg.Libraries, core)
	for _, lib := range cfg.Libraries {
		objs, err := tc.CompileDir(lib, res.BuildDir, libIncludes)
		if err != nil {
			return res, fail("library "+lib, err)
		}
		libObjs = append(libObjs, objs...)
	}

	projIncludes := slices.Concat(cfg.Includes, cfg.Libraries, core)
	err = buildImages(out, tc, res, projDir, projIncludes, libObjs, coreObjs)
	if err != nil {
		return res, err
	}
	if !cfg.Simulate {
		report(out, res)
	}
	if cfg.OnlyBuild {
		return res, nil
	}

	util.Stage(out, "Uploading")
	if err := tc.Upload(res.Hex, cfg.Port, cfg.DudeConf); err != nil {
		if errors.Is(err, toolchain.ErrNoPort) {
			return res, &Error{ExitNoUploadDevice, err.Error(), err}
		}
		return res, fail("upload", err)
	}
	res.Uploaded = true
	return res, nil
}

// buildImages translates the sketches, compiles the project, links all
// objects and extracts the images. The translated copies are removed on
// return, also on failure.
func buildImages(out io.Writer, tc *toolchain.Toolchain, res *Result, projDir string, includes, libObjs, coreObjs []string) (err error) {
	util.Stage(out, "Translating sketches")
	set, err := sketch.Translate(projDir)
	if set != nil {
		res.Translated = slices.Clone(set.Files)
		for _, f := range set.Files {
			fmt.Fprintf(out, "Translated %s\n", f)
		}
		defer func() {
			for _, f := range set.Files {
				fmt.Fprintf(out, "Deleting %s\n", f)
			}
			if rerr := set.Remove(); rerr != nil && err == nil {
				err = fail("remove translated sketch", rerr)
			}
		}()
	}
	if err != nil {
		if errors.Is(err, sketch.ErrExists) {
			return &Error{ExitTranslate, "translate: " + err.Error(), err}
		}
		return fail("translate", err)
	}

	util.Stage(out, "Compiling sketch")
	projObjs, err := tc.CompileDir(projDir, res.BuildDir, includes)
	if err != nil {
		return fail("sketch", err)
	}
	res.Objects = slices.Concat(projObjs, libObjs, coreObjs)

	util.Stage(out, "Linking")
	res.ELF = filepath.Join(res.BuildDir, filepath.Base(projDir)+".elf")
	if err = tc.Link(res.ELF, res.Objects); err != nil {
		return fail("link", err)
	}

	util.Stage(out, "Extracting images")
	res.Hex, res.EEPROM, err = tc.Extract(res.ELF)
	return fail("extract", err)
}

// prepare creates the build directory. If refresh is set an existing
// directory is removed first.
func prepare(out io.Writer, dir string, refresh bool) error {
	fi, err := os.Stat(dir)
	switch {
	case err == nil && !fi.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	case err == nil && refresh:
		fmt.Fprintln(out, "Deleting then creating build folder")
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		return os.Mkdir(dir, 0o755)
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return os.Mkdir(dir, 0o755)
	}
	return err
}

// report prints the sizes of the produced images. It only warns if they
// cannot be read.
func report(out io.Writer, res *Result) {
	flash, err := image.Usage(res.Hex)
	if err != nil {
		util.Warn("flash image: %v", err)
		return
	}
	eeprom, err := image.Usage(res.EEPROM)
	if err != nil {
		util.Warn("EEPROM image: %v", err)
		return
	}
	fmt.Fprintf(out, "Flash image: %d bytes, EEPROM image: %d bytes\n", flash, eeprom)
}
