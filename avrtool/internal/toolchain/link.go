// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"path/filepath"
	"strings"
)

// Archive appends obj to the static archive (created if absent).
func (tc *Toolchain) Archive(archive, obj string) error {
	mod := "rcs"
	if tc.Verbose {
		mod += "v"
	}
	return tc.run([]string{tc.Bin(AR), mod, archive, obj})
}

// Link links objs into the ELF image. The order of objs is kept.
func (tc *Toolchain) Link(elf string, objs []string) error {
	args := []string{
		"-Os", "-Wl,--gc-sections",
		"-mmcu=" + tc.Target.MCU,
		"-o" + elf,
	}
	args = append(args, objs...)
	args = append(args, "-L"+filepath.Dir(elf), "-lm")
	return tc.run(tc.command(GCC, args...))
}

// Images returns the names of the flash and EEPROM images derived from elf.
func Images(elf string) (hex, eep string) {
	stem := strings.TrimSuffix(elf, filepath.Ext(elf))
	return stem + ".hex", stem + ".epp"
}

// Extract splits the ELF image into the flash image (every section except
// .eeprom) and the EEPROM image (only .eeprom, relocated to 0), both in the
// Intel HEX format.
func (tc *Toolchain) Extract(elf string) (hex, eep string, err error) {
	hex, eep = Images(elf)
	err = tc.run(tc.command(
		Objcopy,
		"-O", "ihex",
		"-j", ".eeprom",
		"--set-section-flags=.eeprom=alloc,load",
		"--no-change-warnings",
		"--change-section-lma", ".eeprom=0",
		elf, eep,
	))
	if err != nil {
		return
	}
	err = tc.run(tc.command(
		Objcopy,
		"-O", "ihex",
		"-R", ".eeprom",
		elf, hex,
	))
	return
}
