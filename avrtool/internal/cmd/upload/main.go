// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/avrtools/avrtool/internal/build"
	"github.com/embeddedgo/avrtools/avrtool/internal/target"
	"github.com/embeddedgo/avrtools/avrtool/internal/toolchain"
	"github.com/embeddedgo/avrtools/avrtool/internal/util"
	"github.com/xyproto/env/v2"
)

const Descr = "upload the flash image onto the device using avrdude"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] [HEX]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	t := target.Default()
	port := fs.String("u", env.Str("AVRTOOL_PORT"), "serial `port` of the programmer")
	root := fs.String("avr-path", env.Str("AVRTOOL_ROOT"), "`directory` of avrdude (default PATH)")
	dudeConf := fs.String("dude-conf", env.Str("AVRTOOL_DUDECONF"), "avrdude configuration `file`")
	fs.StringVar(&t.MCU, "arch", t.MCU, "device `name`")
	fs.StringVar(&t.Programmer, "core", t.Programmer, "programmer `protocol`")
	fs.IntVar(&t.Baud, "baud", env.Int("AVRTOOL_BAUD", t.Baud), "upload baud `rate`")
	verbose := fs.Bool("v", false, "be verbose")
	simulate := fs.Bool("simulate", false, "only print the command")
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		util.Fatal("%s: too many arguments", cmd)
	}
	hex, _ := util.InOutFiles(".", build.BuildDirName, fs.Arg(0), ".hex", "", "")
	tc := &toolchain.Toolchain{
		Root:    *root,
		Target:  t,
		Verbose: *verbose,
		Runner:  &toolchain.Exec{Verbose: *verbose, Simulate: *simulate},
	}
	err := tc.Upload(hex, *port, *dudeConf)
	if errors.Is(err, toolchain.ErrNoPort) {
		util.Exit(build.ExitNoUploadDevice, err.Error())
	}
	util.FatalErr("upload", err)
}
