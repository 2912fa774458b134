// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/embeddedgo/avrtools/avrtool/internal/toolchain"
)

// Exit codes.
const (
	ExitOK             = 0
	ExitNoUploadDevice = 1
	ExitNoCore         = 2
	ExitNoToolchain    = 3
	ExitInvalidLib     = 4
	ExitInvalidInclude = 5
	ExitToolFailed     = 6
	ExitTranslate      = 7
	ExitFS             = 8
	ExitProjectFile    = 9
)

// Error is a fatal build error with the exit code of the program.
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return e.Msg
}

// Code returns the exit code and the message for err.
func Code(err error) (int, string) {
	if err == nil {
		return ExitOK, ""
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Code, be.Msg
	}
	var ce *toolchain.CmdError
	if errors.As(err, &ce) {
		return ExitToolFailed, err.Error()
	}
	return ExitFS, err.Error()
}

// fail wraps an error returned by the stage.
func fail(stage string, err error) error {
	if err == nil {
		return nil
	}
	code := ExitFS
	var ce *toolchain.CmdError
	if errors.As(err, &ce) {
		code = ExitToolFailed
	}
	return &Error{code, stage + ": " + err.Error(), err}
}

// CheckDir returns the absolute form of dir if it is an existing directory.
// Otherwise it returns an *Error with the code and the message made from
// tmpl by replacing $path with dir. An empty dir is accepted only if
// mustExist is false.
func CheckDir(dir string, code int, tmpl string, mustExist bool) (string, error) {
	if dir == "" && !mustExist {
		return "", nil
	}
	bad := func(path string, err error) error {
		msg := os.Expand(tmpl, func(k string) string {
			if k == "path" {
				return path
			}
			return "$" + k
		})
		return &Error{code, msg, err}
	}
	if dir == "" {
		return "", bad("", nil)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", bad(dir, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", bad(abs, err)
	}
	if !fi.IsDir() {
		return "", bad(abs, fmt.Errorf("%s is not a directory", abs))
	}
	return abs, nil
}
