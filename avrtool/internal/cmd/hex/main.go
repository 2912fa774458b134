// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/avrtools/avrtool/internal/build"
	"github.com/embeddedgo/avrtools/avrtool/internal/image"
	"github.com/embeddedgo/avrtools/avrtool/internal/util"
)

const Descr = "split an ELF file into the flash and EEPROM Intel HEX images"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	eepName := fs.String(
		"eep", "",
		"EEPROM image `file` (default ELF with the .epp extension)",
	)
	list := fs.Bool("l", false, "list the sections")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		util.Fatal("%s: too many arguments", cmd)
	}
	elf, out := util.InOutFiles(".", build.BuildDirName, fs.Arg(0), ".elf", fs.Arg(1), ".hex")
	if *eepName == "" {
		*eepName = strings.TrimSuffix(elf, ".elf") + ".epp"
	}
	sections, err := image.ReadELF(elf)
	util.FatalErr("readelf", err)
	if *list {
		sections.SortByPaddr()
		for i, s := range sections {
			fmt.Printf(
				"%d: %-10s Vaddr: %#x Paddr: %#x Offset: %#x DataLen: %d\n",
				i, s.Name, s.Vaddr, s.Paddr, s.Offset, len(s.Data),
			)
		}
	}
	flash, eeprom := sections.Split()
	util.FatalErr("flash", image.WriteHexFile(out, flash))
	util.FatalErr("eeprom", image.WriteHexFile(*eepName, eeprom))
}
