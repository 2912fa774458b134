// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import "path/filepath"

// Kind tells what the toolchain does with a source file.
type Kind uint8

const (
	Unknown Kind = iota // skipped with a diagnostic
	C                   // compiled with the C compiler (C and assembly)
	CXX                 // compiled with the C++ compiler
	Header              // skipped silently
	Sketch              // skipped, must be translated to C++ first
)

var kindNames = [...]string{
	Unknown: "unknown",
	C:       "C",
	CXX:     "C++",
	Header:  "header",
	Sketch:  "sketch",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var extKinds = map[string]Kind{
	".c":   C,
	".S":   C,
	".cpp": CXX,
	".h":   Header,
	".ino": Sketch,
	".pde": Sketch,
}

// Classify returns the kind of the file based on its extension. The
// extension is case sensitive (.S is assembly, .s is unknown).
func Classify(name string) Kind {
	return extKinds[filepath.Ext(name)]
}
