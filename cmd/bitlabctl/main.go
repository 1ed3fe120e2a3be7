// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// bitlabctl builds, signs, and inspects transactions and derives keys and
// addresses from the command line.  Every command prints a JSON envelope to
// standard output and exits with a non-zero status when it fails.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	os.Exit(realMain(newConfig(), os.Args[1:]))
}

// realMain parses args, runs the selected command, and returns the exit
// status.
func realMain(cfg *config, args []string) int {
	parser, err := newParser(cfg)
	if err != nil {
		fmt.Fprintln(cfg.stderr, err)
		return 1
	}

	_, err = parser.ParseArgs(args)
	var flagsErr *flags.Error
	switch {
	case err == nil:
		return 0

	case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
		fmt.Fprintln(cfg.stdout, err)
		return 0

	case errors.Is(err, errCommandFailed):
		return 1

	default:
		fmt.Fprintln(cfg.stderr, err)
		return 1
	}
}
