// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/marcinbor85/gohex"
)

// WriteHex writes the sections at their load addresses in the Intel HEX
// format. The order of ss is left unchanged.
func WriteHex(w io.Writer, ss Sections) error {
	ss = slices.Clone(ss)
	ss.SortByPaddr()
	mem := gohex.NewMemory()
	for _, s := range ss {
		if s.Paddr > 0xffff_ffff {
			return fmt.Errorf("section %s: address %#x out of range", s.Name, s.Paddr)
		}
		if err := mem.AddBinary(uint32(s.Paddr), s.Data); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	return mem.DumpIntelHex(w, 16)
}

// WriteHexFile is like WriteHex but creates the named file.
func WriteHexFile(name string, ss Sections) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = WriteHex(f, ss); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadHex reads the Intel HEX file and returns its data segments as
// sections.
func ReadHex(name string) (Sections, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var ss Sections
	for _, seg := range mem.GetDataSegments() {
		ss = append(ss, &Section{Paddr: uint64(seg.Address), Data: seg.Data})
	}
	return ss, nil
}

// Usage returns the number of data bytes stored in the Intel HEX file.
func Usage(name string) (int, error) {
	ss, err := ReadHex(name)
	if err != nil {
		return 0, err
	}
	return ss.Size(), nil
}
