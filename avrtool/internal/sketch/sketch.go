// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sketch turns the Arduino sketch files of a project into ordinary
// C++ translation units.
//
// The translation is a plain copy to a sibling file with the .cpp extension.
// No prototypes are generated and no headers are added, so a sketch must
// include Arduino.h itself and declare functions before use.
package sketch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/cp"
	"github.com/embeddedgo/avrtools/avrtool/internal/toolchain"
)

// ErrExists is returned by Translate if a file with the name of the
// translated copy already exists.
var ErrExists = errors.New("translated file already exists")

// Set is a set of translated copies.
type Set struct {
	Files []string
}

// Translate copies every sketch file directly contained in dir to a .cpp
// sibling. On error the copies created so far are recorded in the returned
// set and should be removed by calling Remove.
func Translate(dir string) (*Set, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	set := new(Set)
	for _, e := range ents {
		if e.IsDir() || toolchain.Classify(e.Name()) != toolchain.Sketch {
			continue
		}
		src := filepath.Join(dir, e.Name())
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".cpp"
		if _, err := os.Lstat(dst); err == nil {
			return set, fmt.Errorf("%s: %w", dst, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return set, err
		}
		if err := cp.CopyFile(dst, src); err != nil {
			return set, err
		}
		set.Files = append(set.Files, dst)
	}
	return set, nil
}

// Remove deletes all translated copies. It tries every file and returns the
// first error.
func (s *Set) Remove() error {
	if s == nil {
		return nil
	}
	var first error
	for _, f := range s.Files {
		if err := os.Remove(f); err != nil && first == nil {
			first = err
		}
	}
	s.Files = nil
	return first
}
