// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package target describes the microcontroller a project is built for.
package target

import "sort"

// Defaults of the Arduino Uno.
const (
	DefaultBoard      = "uno"
	DefaultMCU        = "atmega328p"
	DefaultClock      = 16000000
	DefaultEnvVersion = 18
	DefaultProgrammer = "arduino"
	DefaultBaud       = 115200
)

// BoardTable maps board names to the names of the variant subdirectories
// of the core runtime.
type BoardTable map[string]string

// Boards returns a fresh copy of the known board table.
func Boards() BoardTable {
	return BoardTable{
		"uno":      "standard",
		"leonardo": "leonardo",
		"mega":     "mega",
		"micro":    "micro",
		"nano":     "micro",
		"pro":      "micro",
	}
}

// Names returns the sorted board names.
func (bt BoardTable) Names() []string {
	names := make([]string, 0, len(bt))
	for k := range bt {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Profile is the target the toolchain compiles, links and uploads for.
type Profile struct {
	Board      string
	MCU        string // -mmcu and the programmer part (eg. atmega328p)
	Clock      uint64 // CPU clock in Hz
	EnvVersion int    // value of the ARDUINO macro
	Programmer string // programmer protocol (eg. arduino, stk500v1)
	Baud       int
	Boards     BoardTable
}

// Default returns the profile of the default board.
func Default() Profile {
	return Profile{
		Board:      DefaultBoard,
		MCU:        DefaultMCU,
		Clock:      DefaultClock,
		EnvVersion: DefaultEnvVersion,
		Programmer: DefaultProgrammer,
		Baud:       DefaultBaud,
		Boards:     Boards(),
	}
}

// Variant returns the variant subdirectory name for p.Board. Unknown boards
// fall back to the variant of the default board.
func (p Profile) Variant() string {
	bt := p.Boards
	if bt == nil {
		bt = Boards()
	}
	if v, ok := bt[p.Board]; ok {
		return v
	}
	return bt[DefaultBoard]
}
