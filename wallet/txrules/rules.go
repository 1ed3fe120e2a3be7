// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txrules provides functions that help establish whether or not a
// transaction output abides by relay policy rules such as the dust limit, as
// opposed to consensus rules.
package txrules

import (
	"errors"
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// DefaultRelayFeePerKb is the default minimum relay fee policy for a mempool.
const DefaultRelayFeePerKb btcutil.Amount = 1e3

const (
	// legacySpendSize is the serialize size of a typical input redeeming a
	// compressed P2PKH output.
	legacySpendSize = 32 + 4 + 1 + 107 + 4

	// witnessSpendSize is the serialize size of the non-witness part of an
	// input redeeming a witness program plus its discounted witness.
	witnessSpendSize = 32 + 4 + 1 + 4 + 107/blockchain.WitnessScaleFactor
)

// GetDustThreshold returns the amount below which an output with the given
// script is considered dust.  The threshold is three times the relay fee for
// creating the output and later spending it.
func GetDustThreshold(pkScript []byte, relayFeePerKb btcutil.Amount) btcutil.Amount {
	totalSize := 8 + wire.VarIntSerializeSize(uint64(len(pkScript))) +
		len(pkScript)

	if txscript.IsWitnessProgram(pkScript) {
		totalSize += witnessSpendSize
	} else {
		totalSize += legacySpendSize
	}

	return 3 * relayFeePerKb * btcutil.Amount(totalSize) / 1000
}

// IsDustAmount determines whether an output of the given amount paying to
// pkScript would be considered dust.
func IsDustAmount(amount btcutil.Amount, pkScript []byte,
	relayFeePerKb btcutil.Amount) bool {

	return amount < GetDustThreshold(pkScript, relayFeePerKb)
}

// IsDustOutput determines whether a transaction output is considered dust.
// Transactions with dust outputs are not standard and are rejected by mempools
// with default policies.
func IsDustOutput(output *wire.TxOut, relayFeePerKb btcutil.Amount) bool {
	// Unspendable outputs which solely carry data are not checked for dust.
	if txscript.GetScriptClass(output.PkScript) == txscript.NullDataTy {
		return false
	}

	// All other unspendable outputs are considered dust.
	if txscript.IsUnspendable(output.PkScript) {
		return true
	}

	return IsDustAmount(
		btcutil.Amount(output.Value), output.PkScript, relayFeePerKb,
	)
}

// ErrOutputIsDust is returned by CheckOutput for outputs below the dust
// threshold.
var ErrOutputIsDust = errors.New("transaction output is dust")

// CheckOutput performs simple consensus and policy tests on a transaction
// output.  Amount violations carry ErrInvalidAmount.  Dust is reported as a
// plain error since it is a relay policy, not a construction failure.
func CheckOutput(output *wire.TxOut, relayFeePerKb btcutil.Amount) error {
	if output.Value < 0 {
		str := fmt.Sprintf("transaction output amount %d is negative",
			output.Value)
		return coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}
	if output.Value > btcutil.MaxSatoshi {
		str := fmt.Sprintf("transaction output amount %d exceeds "+
			"maximum value %d", output.Value,
			int64(btcutil.MaxSatoshi))
		return coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}
	if IsDustOutput(output, relayFeePerKb) {
		return ErrOutputIsDust
	}
	return nil
}

// FeeForSerializeSize calculates the required fee for a transaction of some
// arbitrary size given a mempool's relay fee policy.
func FeeForSerializeSize(relayFeePerKb btcutil.Amount, txSerializeSize int) btcutil.Amount {
	fee := relayFeePerKb * btcutil.Amount(txSerializeSize) / 1000

	if fee == 0 && relayFeePerKb > 0 {
		fee = relayFeePerKb
	}

	if fee < 0 || fee > btcutil.MaxSatoshi {
		fee = btcutil.MaxSatoshi
	}

	return fee
}
