// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalError prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// Exit prints the message and exits the program with the code.
func Exit(code int, msg string) {
	os.Stderr.WriteString(strings.TrimRight(msg, "\n") + "\n")
	os.Exit(code)
}

var stage = color.New(color.Bold)

// Stage prints the title of the next pipeline stage.
func Stage(w io.Writer, title string) {
	stage.Fprintf(w, "==== %s\n", title)
}

// DirName returns the last element of the absolute form of dir.
func DirName(dir string) string {
	dir, err := filepath.Abs(dir)
	FatalErr("", err)
	dir = filepath.Base(dir)
	if dir == "/" || dir == "." {
		dir = ""
	}
	return dir
}

// InOutFiles infers the name of the input file from the name of the
// project directory if the inName is an empty string. The inferred file is
// looked for in the sub directory sub of the project directory. The output
// name is the input name with inSuffix replaced by outSuffix.
func InOutFiles(dir, sub, inName, inSuffix, outName, outSuffix string) (string, string) {
	if inName == "" {
		inName = filepath.Join(dir, sub, DirName(dir)+inSuffix)
	}
	if outName == "" {
		outName = strings.TrimSuffix(inName, inSuffix) + outSuffix
	}
	return inName, outName
}
