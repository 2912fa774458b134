// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image reads the sections of linked AVR programs and reads and
// writes their Intel HEX images.
package image

import (
	"debug/elf"
	"os"
	"sort"
)

// EEPROM is the name of the section that holds the EEPROM content.
const EEPROM = ".eeprom"

type Section struct {
	Name   string
	Vaddr  uint64 // address in the memory during execution
	Paddr  uint64 // load address (LMA)
	Offset uint64 // offset in the ELF file to the beggining of the section data
	Data   []byte // section data
}

type Sections []*Section

// ReadELF reads the loadable sections of the program and the .eeprom section
// and returns them in the ELF order.
func ReadELF(name string) (Sections, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss := make(Sections, 0, 16)
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS {
			continue
		}
		if s.Flags&elf.SHF_ALLOC == 0 && s.Name != EEPROM {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := s.Addr
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		ss = append(ss, &Section{s.Name, s.Addr, paddr, s.Offset, data})
	}
	return ss, nil
}

// Split divides ss into the flash part (every section except .eeprom) and
// the EEPROM part (only .eeprom, with the load address changed to 0). The
// sections of ss are not modified.
func (ss Sections) Split() (flash, eeprom Sections) {
	for _, s := range ss {
		if s.Name != EEPROM {
			flash = append(flash, s)
			continue
		}
		e := *s
		e.Paddr = 0
		eeprom = append(eeprom, &e)
	}
	return
}

// SortByPaddr sorts sections according to the Paddr field.
func (ss Sections) SortByPaddr() {
	sort.SliceStable(
		ss,
		func(i, j int) bool {
			return ss[i].Paddr < ss[j].Paddr
		},
	)
}

// Size returns the summary size of the section data.
func (ss Sections) Size() int {
	n := 0
	for _, s := range ss {
		n += len(s.Data)
	}
	return n
}
