// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bitlab/txengine/api"
	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/internal/cfgutil"
	"github.com/bitlab/txengine/internal/prompt"
	"github.com/bitlab/txengine/netparams"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// errCommandFailed is returned by commands whose failure has already been
// reported in the result envelope.
var errCommandFailed = errors.New("command failed")

// command describes a registered subcommand.
type command struct {
	name  string
	short string
	long  string
	data  interface{}
}

func commands(cfg *config) []command {
	return []command{
		{
			name:  "genkey",
			short: "Generate a private key",
			long: "Generate a random private key.  With --derive the " +
				"public key, WIF, and addresses are included.",
			data: &genKeyCmd{cfg: cfg},
		},
		{
			name:  "derive",
			short: "Derive the public key and addresses of private keys",
			long: "Derive the public key, WIF, and legacy, segwit, and " +
				"taproot addresses of each --key.  The key is " +
				"prompted for when none is given.",
			data: &deriveCmd{cfg: cfg},
		},
		{
			name:  "build",
			short: "Build an unsigned transaction",
			long: "Build an unsigned transaction spending every input " +
				"to every output, in order.  Inputs and outputs are " +
				"JSON arrays given inline, as @file, or - for stdin.",
			data: &buildCmd{
				cfg:       cfg,
				BuildArgs: BuildArgs{Fee: cfgutil.NewAmountFlag(0)},
			},
		},
		{
			name:  "psbt",
			short: "Build an unsigned transaction as a PSBT",
			long: "Build the same transaction as build and print it " +
				"as a base64 encoded BIP-174 packet.",
			data: &psbtCmd{
				cfg:       cfg,
				BuildArgs: BuildArgs{Fee: cfgutil.NewAmountFlag(0)},
			},
		},
		{
			name:  "sign",
			short: "Sign one input of a transaction",
			long: "Sign input --index of --tx.  The spent output is given " +
				"with --script and --amount, or the outputs spent by " +
				"every input with --prevouts, which taproot inputs of " +
				"multi-input transactions require.",
			data: &signCmd{cfg: cfg, Amount: cfgutil.NewAmountFlag(0)},
		},
		{
			name:  "verify",
			short: "Verify one input of a signed transaction",
			data:  &verifyCmd{cfg: cfg},
		},
		{
			name:  "txid",
			short: "Print the id of a transaction",
			data:  &txidCmd{cfg: cfg},
		},
		{
			name:  "decode",
			short: "Decode a transaction",
			data:  &decodeCmd{cfg: cfg},
		},
		{
			name:  "convert",
			short: "Convert between satoshis and bitcoin",
			data:  &convertCmd{cfg: cfg},
		},
	}
}

// errorBody is the error member of a result envelope.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// envelope is the JSON document every command prints.
type envelope struct {
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  *errorBody  `json:"error,omitempty"`
}

// newEnvelope converts a command result to its envelope.
func newEnvelope(result fn.Result[any]) envelope {
	return fn.MapOk(func(value any) envelope {
		return envelope{OK: true, Result: value}
	})(result).UnwrapOrElse(errorEnvelope)
}

// errorEnvelope reports err with its error kind.  Errors without a kind of
// their own are reported as invalid arguments.
func errorEnvelope(err error) envelope {
	kind := "InvalidArgument"
	if code, ok := coreerr.Code(err); ok {
		kind = code.Kind()
	}
	return envelope{
		Error: &errorBody{Kind: kind, Message: err.Error()},
	}
}

// lift converts the value and error returned by an api call to a command
// result.
func lift[T any](value T, err error) fn.Result[any] {
	return fn.MapOk(func(v T) any { return v })(fn.NewResult(value, err))
}

// run executes f on the selected network and prints its result envelope.
func (cfg *config) run(f func(*netparams.Params) fn.Result[any]) error {
	stopLogging, err := cfg.setupLogging()
	if err != nil {
		return err
	}
	defer stopLogging()

	params, err := cfg.activeNet()
	if err != nil {
		return err
	}

	result := f(params)
	result.WhenErr(func(err error) {
		log.Debugf("Command failed: %v", err)
	})

	out, err := json.MarshalIndent(newEnvelope(result), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(cfg.stdout, "%s\n", out)

	if result.IsErr() {
		return errCommandFailed
	}
	return nil
}

// readJSON decodes the JSON named by a flag value into v.
func (cfg *config) readJSON(value, what string, v interface{}) error {
	b, err := cfgutil.ReadArg(value, cfg.stdin)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid %s JSON: %w", what, err)
	}
	return nil
}

// readText returns the trimmed text named by a flag value.
func (cfg *config) readText(value string) fn.Result[string] {
	b, err := cfgutil.ReadArg(value, cfg.stdin)
	if err != nil {
		return fn.Err[string](err)
	}
	return fn.Ok(strings.TrimSpace(string(b)))
}

// privateKey returns privKeyHex, or prompts for a key when it is empty.
func (cfg *config) privateKey(privKeyHex string) fn.Result[string] {
	if privKeyHex != "" {
		return fn.Ok(privKeyHex)
	}
	return fn.NewResult(prompt.ProvidePrivateKey(
		bufio.NewReader(cfg.stdin), cfg.stdinFd, cfg.stderr,
	))
}

type genKeyCmd struct {
	cfg *config

	Derive bool `long:"derive" description:"Include the public key, WIF, and addresses"`
}

func (c *genKeyCmd) Execute(_ []string) error {
	return c.cfg.run(func(params *netparams.Params) fn.Result[any] {
		privKeyHex := fn.NewResult(api.GeneratePrivateKey())
		if !c.Derive {
			return fn.MapOk(func(k string) any {
				return map[string]string{"private_key": k}
			})(privKeyHex)
		}
		return fn.AndThen(privKeyHex, func(k string) fn.Result[any] {
			return lift(api.DeriveAddressesFromKey(k, params))
		})
	})
}

type deriveCmd struct {
	cfg *config

	Keys []string `short:"k" long:"key" description:"Hex private key; may be repeated"`
}

func (c *deriveCmd) Execute(_ []string) error {
	return c.cfg.run(func(params *netparams.Params) fn.Result[any] {
		derive := func(k string) fn.Result[any] {
			return lift(api.DeriveAddressesFromKey(k, params))
		}

		switch len(c.Keys) {
		case 0:
			return fn.AndThen(c.cfg.privateKey(""), derive)

		case 1:
			return derive(c.Keys[0])

		default:
			log.Debugf("Deriving %d keys on %s", len(c.Keys),
				params.Name)
			return lift(api.DeriveKeyPairs(
				context.Background(), c.Keys, params,
			))
		}
	})
}

// BuildArgs are the options shared by build and psbt.
type BuildArgs struct {
	Inputs  string              `short:"i" long:"inputs" description:"JSON array of {txid, vout, amount, script_pubkey}" required:"true"`
	Outputs string              `short:"o" long:"outputs" description:"JSON array of {address, amount}" required:"true"`
	Fee     *cfgutil.AmountFlag `long:"fee" description:"Fee the inputs must leave over, in BTC or with a sat suffix"`
}

// buildRecords holds the decoded build inputs and outputs.
type buildRecords struct {
	inputs  []api.InputRecord
	outputs []api.OutputRecord
}

func (a *BuildArgs) records(cfg *config) fn.Result[buildRecords] {
	var r buildRecords
	if err := cfg.readJSON(a.Inputs, "inputs", &r.inputs); err != nil {
		return fn.Err[buildRecords](err)
	}
	if err := cfg.readJSON(a.Outputs, "outputs", &r.outputs); err != nil {
		return fn.Err[buildRecords](err)
	}
	return fn.Ok(r)
}

type buildCmd struct {
	cfg *config

	BuildArgs
	Detailed bool `long:"detailed" description:"Include the id, fee, size estimate, and dust outputs"`
}

func (c *buildCmd) Execute(_ []string) error {
	return c.cfg.run(func(params *netparams.Params) fn.Result[any] {
		fee := int64(c.Fee.Amount)
		build := func(r buildRecords) fn.Result[any] {
			if c.Detailed {
				return lift(api.BuildTransactionDetailed(
					r.inputs, r.outputs, fee, params,
				))
			}
			return lift(api.BuildTransaction(
				r.inputs, r.outputs, fee, params,
			))
		}
		return fn.AndThen(c.records(c.cfg), build)
	})
}

type psbtCmd struct {
	cfg *config

	BuildArgs
}

func (c *psbtCmd) Execute(_ []string) error {
	return c.cfg.run(func(params *netparams.Params) fn.Result[any] {
		build := func(r buildRecords) fn.Result[any] {
			return lift(api.BuildPSBT(
				r.inputs, r.outputs, int64(c.Fee.Amount), params,
			))
		}
		return fn.AndThen(c.records(c.cfg), build)
	})
}

type signCmd struct {
	cfg *config

	Tx       string              `short:"t" long:"tx" description:"Hex transaction, @file, or - for stdin" required:"true"`
	Key      string              `short:"k" long:"key" description:"Hex private key; prompted for when omitted"`
	Index    int                 `long:"index" description:"Index of the input to sign"`
	Script   string              `long:"script" description:"Hex locking script of the spent output"`
	Amount   *cfgutil.AmountFlag `long:"amount" description:"Value of the spent output, in BTC or with a sat suffix"`
	PrevOuts string              `long:"prevouts" description:"JSON array of {script_pubkey, amount} for every input"`
}

func (c *signCmd) Execute(_ []string) error {
	return c.cfg.run(func(_ *netparams.Params) fn.Result[any] {
		if (c.Script == "") == (c.PrevOuts == "") {
			return fn.Errf[any]("exactly one of --script and " +
				"--prevouts is required")
		}

		return fn.AndThen(c.cfg.readText(c.Tx), c.signWithKey)
	})
}

// signWithKey signs txHex with the given or prompted private key.
func (c *signCmd) signWithKey(txHex string) fn.Result[any] {
	sign := func(privKeyHex string) fn.Result[any] {
		return c.sign(txHex, privKeyHex)
	}
	return fn.AndThen(c.cfg.privateKey(c.Key), sign)
}

func (c *signCmd) sign(txHex, privKeyHex string) fn.Result[any] {
	if c.Script != "" {
		return lift(api.SignTransaction(
			txHex, privKeyHex, c.Index, c.Script,
			int64(c.Amount.Amount),
		))
	}

	var prevOuts []api.PrevOutRecord
	if err := c.cfg.readJSON(c.PrevOuts, "prevouts", &prevOuts); err != nil {
		return fn.Err[any](err)
	}
	return lift(api.SignTransactionWithPrevOuts(
		txHex, privKeyHex, c.Index, prevOuts,
	))
}

type verifyCmd struct {
	cfg *config

	Tx       string `short:"t" long:"tx" description:"Hex transaction, @file, or - for stdin" required:"true"`
	Index    int    `long:"index" description:"Index of the input to verify"`
	PrevOuts string `long:"prevouts" description:"JSON array of {script_pubkey, amount} for every input" required:"true"`
}

func (c *verifyCmd) Execute(_ []string) error {
	return c.cfg.run(func(_ *netparams.Params) fn.Result[any] {
		verify := func(txHex string) fn.Result[any] {
			var prevOuts []api.PrevOutRecord
			err := c.cfg.readJSON(c.PrevOuts, "prevouts", &prevOuts)
			if err != nil {
				return fn.Err[any](err)
			}

			err = api.VerifyInput(txHex, c.Index, prevOuts)
			if err != nil {
				return fn.Err[any](err)
			}
			return fn.Ok[any](map[string]bool{"valid": true})
		}
		return fn.AndThen(c.cfg.readText(c.Tx), verify)
	})
}

type txidCmd struct {
	cfg *config

	Tx      string `short:"t" long:"tx" description:"Hex transaction, @file, or - for stdin" required:"true"`
	Witness bool   `long:"witness" description:"Print the witness id instead"`
}

func (c *txidCmd) Execute(_ []string) error {
	return c.cfg.run(func(_ *netparams.Params) fn.Result[any] {
		txid := func(txHex string) fn.Result[any] {
			if c.Witness {
				return lift(api.CalculateWitnessTxID(txHex))
			}
			return lift(api.CalculateTxID(txHex))
		}
		return fn.AndThen(c.cfg.readText(c.Tx), txid)
	})
}

type decodeCmd struct {
	cfg *config

	Tx string `short:"t" long:"tx" description:"Hex transaction, @file, or - for stdin" required:"true"`
}

func (c *decodeCmd) Execute(_ []string) error {
	return c.cfg.run(func(params *netparams.Params) fn.Result[any] {
		decode := func(txHex string) fn.Result[any] {
			return lift(api.DecodeTransaction(txHex, params))
		}
		return fn.AndThen(c.cfg.readText(c.Tx), decode)
	})
}

type convertCmd struct {
	cfg *config

	Sats *int64   `long:"sats" description:"Amount in satoshis to convert to bitcoin"`
	BTC  *float64 `long:"btc" description:"Amount in bitcoin to convert to satoshis"`
}

// conversion is the result of the convert command.
type conversion struct {
	Sats int64   `json:"sats"`
	BTC  float64 `json:"btc"`
}

func (c *convertCmd) Execute(_ []string) error {
	return c.cfg.run(func(_ *netparams.Params) fn.Result[any] {
		switch {
		case (c.Sats == nil) == (c.BTC == nil):
			return fn.Errf[any]("exactly one of --sats and --btc " +
				"is required")

		case c.Sats != nil:
			return fn.Ok[any](conversion{
				Sats: *c.Sats,
				BTC:  api.SatoshiToBTC(*c.Sats),
			})

		default:
			btc := *c.BTC
			return fn.MapOk(func(sats int64) any {
				return conversion{Sats: sats, BTC: btc}
			})(fn.NewResult(api.BTCToSatoshi(btc)))
		}
	})
}
