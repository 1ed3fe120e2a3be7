// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package netparams groups the chain parameters every key, address, and
// transaction operation is evaluated against.  There is no package-level
// "active" network: callers pass a *Params explicitly.
package netparams

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Params is used to group parameters for various networks such as the main
// network and test networks.
type Params struct {
	*chaincfg.Params
}

// MainNetParams contains parameters specific to the main network
// (wire.MainNet).
var MainNetParams = Params{
	Params: &chaincfg.MainNetParams,
}

// TestNet3Params contains parameters specific to the test network (version
// 3) (wire.TestNet3).
var TestNet3Params = Params{
	Params: &chaincfg.TestNet3Params,
}

// TestNet4Params contains parameters specific to the test network (version
// 4).
var TestNet4Params = Params{
	Params: &TestNet4ChainParams,
}

// RegressionNetParams contains parameters specific to the regression test
// network (wire.TestNet).
var RegressionNetParams = Params{
	Params: &chaincfg.RegressionNetParams,
}

// SigNetParams contains parameters specific to the default signet.
var SigNetParams = Params{
	Params: &chaincfg.SigNetParams,
}

// SimNetParams contains parameters specific to the simulation test network
// (wire.SimNet).
var SimNetParams = Params{
	Params: &chaincfg.SimNetParams,
}

// byName maps the accepted network names to their parameters.  Aliases
// resolve to the same *Params.
var byName = map[string]*Params{
	"mainnet":  &MainNetParams,
	"testnet":  &TestNet3Params,
	"testnet3": &TestNet3Params,
	"testnet4": &TestNet4Params,
	"regtest":  &RegressionNetParams,
	"signet":   &SigNetParams,
	"simnet":   &SimNetParams,
}

// ParamsForName returns the parameters for the named network.  Names are
// matched case-insensitively.
func ParamsForName(name string) (*Params, error) {
	p, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown network %q (valid: %s)", name,
			strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns a sorted slice of the accepted network names.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
