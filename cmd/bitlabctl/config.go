// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitlab/txengine/internal/cfgutil"
	"github.com/bitlab/txengine/netparams"
	"github.com/jessevdk/go-flags"
)

const (
	defaultDebugLevel  = "warn"
	defaultLogFilename = "bitlabctl.log"
	defaultNetwork     = "mainnet"
)

// config defines the options shared by every command.
type config struct {
	Network    *cfgutil.ExplicitString `long:"network" description:"Network to use by name (mainnet, testnet3, testnet4, regtest, signet, simnet)"`
	TestNet3   bool                    `long:"testnet" description:"Use the test network (version 3)"`
	TestNet4   bool                    `long:"testnet4" description:"Use the test network (version 4)"`
	RegTest    bool                    `long:"regtest" description:"Use the regression test network"`
	SigNet     bool                    `long:"signet" description:"Use the default signet network"`
	SimNet     bool                    `long:"simnet" description:"Use the simulation test network"`
	DebugLevel string                  `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir     string                  `long:"logdir" description:"Directory to additionally log output to"`

	// Streams commands read from and write to.
	stdin   io.Reader
	stdinFd int
	stdout  io.Writer
	stderr  io.Writer
}

// newConfig returns a config with default values reading from and writing to
// the process streams.
func newConfig() *config {
	return &config{
		Network:    cfgutil.NewExplicitString(defaultNetwork),
		DebugLevel: defaultDebugLevel,
		stdin:      os.Stdin,
		stdinFd:    int(os.Stdin.Fd()),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// activeNet returns the parameters of the selected network.  At most one
// network may be selected, either by name or by one of the network flags.
func (cfg *config) activeNet() (*netparams.Params, error) {
	name := cfg.Network.Value

	numNets := 0
	for _, net := range []struct {
		set  bool
		name string
	}{
		{cfg.TestNet3, "testnet3"},
		{cfg.TestNet4, "testnet4"},
		{cfg.RegTest, "regtest"},
		{cfg.SigNet, "signet"},
		{cfg.SimNet, "simnet"},
	} {
		if net.set {
			numNets++
			name = net.name
		}
	}
	if cfg.Network.ExplicitlySet() && numNets > 0 {
		numNets++
	}
	if numNets > 1 {
		return nil, errors.New("the network flags may not be used " +
			"together -- choose one network")
	}

	return netparams.ParamsForName(name)
}

// setupLogging applies the debug level and starts file logging when a log
// directory is configured.  The returned function stops file logging.
func (cfg *config) setupLogging() (func(), error) {
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, err
	}

	if cfg.LogDir == "" {
		return func() {}, nil
	}

	logDir := cleanAndExpandPath(cfg.LogDir)
	if err := initLogRotator(filepath.Join(logDir, defaultLogFilename)); err != nil {
		return nil, err
	}
	return closeLogRotator, nil
}

// cleanAndExpandPath expands environment variables and a leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", homeDir, 1)
		}
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// newParser creates the command line parser for cfg with every command
// registered.
func newParser(cfg *config) (*flags.Parser, error) {
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "bitlabctl"

	for _, c := range commands(cfg) {
		_, err := parser.AddCommand(c.name, c.short, c.long, c.data)
		if err != nil {
			return nil, fmt.Errorf("unable to add command %s: %w",
				c.name, err)
		}
	}

	return parser, nil
}
