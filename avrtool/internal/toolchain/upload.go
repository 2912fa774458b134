// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"errors"
	"strconv"
)

// ErrNoPort is returned by Upload if no serial device was specified.
var ErrNoPort = errors.New("no upload device selected")

// Upload writes the flash image to the device connected to the serial port
// using avrdude. The chip is not erased before writing. The dudeConf
// avrdude configuration file is optional.
func (tc *Toolchain) Upload(hex, port, dudeConf string) error {
	if port == "" {
		return ErrNoPort
	}
	var args []string
	if dudeConf != "" {
		args = append(args, "-C"+dudeConf)
	}
	args = append(args,
		"-p"+tc.Target.MCU,
		"-c"+tc.Target.Programmer,
		"-P"+port,
		"-b"+strconv.Itoa(tc.Target.Baud),
		"-D",
		"-Uflash:w:"+hex+":i",
	)
	return tc.run(tc.command(Avrdude, args...))
}
