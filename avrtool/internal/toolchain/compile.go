// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// NoObject is returned by Compile for files that produce no object.
const NoObject = ""

// IncludePath returns srcDir followed by dirs, without duplicates. The order
// of the first occurrences is preserved because the compiler uses the first
// directory that contains a requested header.
func IncludePath(srcDir string, dirs []string) []string {
	path := make([]string, 0, len(dirs)+1)
	seen := make(map[string]bool, len(dirs)+1)
	for _, d := range append([]string{srcDir}, dirs...) {
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		path = append(path, d)
	}
	return path
}

// Compile compiles one source file into outDir/NAME.o where NAME is the full
// name of the source file. If outDir is empty the object is placed next to
// the source. Headers, sketches and files of unknown type are skipped and
// NoObject is returned for them.
func (tc *Toolchain) Compile(src, outDir string, includes []string) (string, error) {
	var tool string
	switch Classify(src) {
	case C:
		tool = GCC
	case CXX:
		tool = GXX
	case Header:
		tc.notice("%s is a header", src)
		return NoObject, nil
	case Sketch:
		tc.notice("%s is a sketch (translated copy compiled instead)", src)
		return NoObject, nil
	default:
		tc.notice("%s has no known compiler, skipping", src)
		return NoObject, nil
	}
	if outDir == "" {
		outDir = filepath.Dir(src)
	}
	obj := filepath.Join(outDir, filepath.Base(src)+".o")
	args := []string{
		"-c", "-g", "-Os", "-w", "-ffunction-sections", "-fdata-sections",
		"-mmcu=" + tc.Target.MCU,
		"-DF_CPU=" + strconv.FormatUint(tc.Target.Clock, 10) + "L",
		"-DARDUINO=" + strconv.Itoa(tc.Target.EnvVersion),
	}
	for _, d := range IncludePath(filepath.Dir(src), includes) {
		args = append(args, "-I"+d)
	}
	args = append(args, "-o"+obj, src)
	if err := tc.run(tc.command(tool, args...)); err != nil {
		return NoObject, err
	}
	return obj, nil
}

// CompileDir compiles every regular file directly contained in dir (no
// recursion) in the directory order and returns the produced objects.
// Dangling symlinks are skipped. The first failure stops the whole directory.
func (tc *Toolchain) CompileDir(dir, outDir string, includes []string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var objs []string
	for _, e := range ents {
		src := filepath.Join(dir, e.Name())
		fi, err := os.Stat(src) // follow symlinks
		if errors.Is(err, fs.ErrNotExist) {
			tc.notice("%s is a dangling symlink, skipping", src)
			continue
		}
		if err != nil {
			return objs, err
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		obj, err := tc.Compile(src, outDir, includes)
		if err != nil {
			return objs, err
		}
		if obj != NoObject {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}
