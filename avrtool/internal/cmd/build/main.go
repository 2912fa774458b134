// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/avrtools/avrtool/internal/build"
	"github.com/embeddedgo/avrtools/avrtool/internal/target"
	"github.com/embeddedgo/avrtools/avrtool/internal/util"
)

const Descr = "build the sketch in the project directory and upload it"

// dirList is a repeatable directory option.
type dirList []string

func (d *dirList) String() string     { return strings.Join(*d, ",") }
func (d *dirList) Set(s string) error { *d = append(*d, s); return nil }

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	var o build.Options
	fs.StringVar(&o.ProjectDir, "d", ".", "project `directory`")
	fs.BoolVar(&o.Verbose, "v", false, "be verbose")
	fs.BoolVar(&o.Refresh, "r", false, "delete the build directory first")
	fs.BoolVar(&o.OnlyBuild, "only-build", false, "only build, don't upload")
	fs.BoolVar(&o.Simulate, "simulate", false, "only print the commands")
	fs.StringVar(&o.Port, "u", "", "serial `port` used to upload the code")
	fs.StringVar(
		&o.Board, "b", "",
		"board `name` (default "+target.DefaultBoard+"), one of:\n"+
			strings.Join(target.Boards().Names(), " "),
	)
	fs.Var((*dirList)(&o.Includes), "i", "append `directory` to the include list")
	fs.Var((*dirList)(&o.Libraries), "l", "append library `directory` to the build")
	fs.StringVar(&o.CoreDir, "W", "", "core `directory` (.../hardware/arduino/avr/cores/arduino)")
	fs.StringVar(&o.VariantsDir, "V", "", "variants `directory` (.../hardware/arduino/avr/variants)")
	fs.StringVar(&o.Toolchain, "avr-path", "", "`directory` of the avr-* programs (default PATH)")
	fs.StringVar(&o.DudeConf, "dude-conf", "", "avrdude configuration `file`")
	fs.StringVar(&o.Programmer, "core", "", "programmer `protocol` (default "+target.DefaultProgrammer+")")
	fs.StringVar(&o.MCU, "arch", "", "device `name` (default "+target.DefaultMCU+")")
	fs.IntVar(&o.Baud, "baud", 0, fmt.Sprintf("upload baud `rate` (default %d)", target.DefaultBaud))
	fs.Uint64Var(&o.Clock, "cpu-clock", 0, fmt.Sprintf("CPU clock in `Hz` (default %d)", target.DefaultClock))
	fs.Parse(args)
	if fs.NArg() != 0 {
		fs.Usage()
		util.Fatal("%s: unexpected arguments: %s", cmd, strings.Join(fs.Args(), " "))
	}
	cfg, err := build.Resolve(&o)
	if err == nil {
		_, err = build.Run(cfg)
	}
	if err != nil {
		util.Exit(build.Code(err))
	}
}
