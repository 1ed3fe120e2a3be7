// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txsizes estimates the worst case size of a transaction once every
// input carries its signature.
package txsizes

import (
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Worst case script and input/output size estimates.  Input sizes cover the
// outpoint (32 + 4 bytes), the compact size of the signature script, the
// script itself, and the sequence (4 bytes).
const (
	// RedeemP2PKHSigScriptSize is the largest signature script redeeming a
	// compressed P2PKH output: a push of a 72 byte DER signature plus the
	// sighash byte, then a push of the 33 byte compressed public key.
	RedeemP2PKHSigScriptSize = 1 + 73 + 1 + 33

	// P2PKHPkScriptSize is the size of
	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
	P2PKHPkScriptSize = 1 + 1 + 1 + 20 + 1 + 1

	// RedeemP2PKHInputSize is the worst case size of an input redeeming a
	// compressed P2PKH output.
	RedeemP2PKHInputSize = 32 + 4 + 1 + RedeemP2PKHSigScriptSize + 4

	// P2PKHOutputSize is the size of an output paying to P2PKH.
	P2PKHOutputSize = 8 + 1 + P2PKHPkScriptSize

	// P2WPKHPkScriptSize is the size of OP_0 <20 bytes>.
	P2WPKHPkScriptSize = 1 + 1 + 20

	// P2WPKHOutputSize is the size of an output paying to P2WPKH.
	P2WPKHOutputSize = 8 + 1 + P2WPKHPkScriptSize

	// RedeemP2WPKHInputSize is the non-witness size of an input redeeming
	// a P2WPKH output.  Its signature script is empty.
	RedeemP2WPKHInputSize = 32 + 4 + 1 + 4

	// P2TRPkScriptSize is the size of OP_1 <32 bytes>.
	P2TRPkScriptSize = 1 + 1 + 32

	// P2TROutputSize is the size of an output paying to P2TR.
	P2TROutputSize = 8 + 1 + P2TRPkScriptSize

	// RedeemP2TRInputSize is the non-witness size of an input redeeming a
	// P2TR output by key path.  Its signature script is empty.
	RedeemP2TRInputSize = 32 + 4 + 1 + 4

	// NestedP2WPKHPkScriptSize is the size of
	// OP_HASH160 <20 bytes> OP_EQUAL.
	NestedP2WPKHPkScriptSize = 1 + 1 + 20 + 1

	// RedeemNestedP2WPKHScriptSize is the size of the signature script
	// redeeming P2SH-P2WPKH: a single push of the 22 byte witness program.
	RedeemNestedP2WPKHScriptSize = 1 + 1 + 1 + 20

	// RedeemNestedP2WPKHInputSize is the non-witness size of an input
	// redeeming a P2SH-P2WPKH output.
	RedeemNestedP2WPKHInputSize = 32 + 4 + 1 +
		RedeemNestedP2WPKHScriptSize + 4

	// RedeemP2WPKHInputWitnessWeight is the worst case witness weight
	// spending P2WPKH or P2SH-P2WPKH: item count, the signature push, and
	// the compressed public key push.
	RedeemP2WPKHInputWitnessWeight = 1 + 1 + 73 + 1 + 33

	// RedeemP2TRInputWitnessWeight is the worst case witness weight of a
	// P2TR key path spend: item count and a 64 byte BIP-340 signature with
	// an optional sighash byte.
	RedeemP2TRInputWitnessWeight = 1 + 1 + 65
)

// InputKind is the class of previous output an input redeems, as far as
// size estimation is concerned.
type InputKind uint8

const (
	// P2PKHInput redeems a compressed pay-to-pubkey-hash output.
	P2PKHInput InputKind = iota

	// NestedP2WPKHInput redeems a P2WPKH program nested in P2SH.
	NestedP2WPKHInput

	// P2WPKHInput redeems a native pay-to-witness-pubkey-hash output.
	P2WPKHInput

	// P2TRInput redeems a taproot output by key path.
	P2TRInput
)

// String returns the input kind name.
func (k InputKind) String() string {
	switch k {
	case P2PKHInput:
		return "p2pkh"
	case NestedP2WPKHInput:
		return "np2wpkh"
	case P2WPKHInput:
		return "p2wpkh"
	case P2TRInput:
		return "p2tr"
	default:
		return fmt.Sprintf("unknown input kind %d", k)
	}
}

// ClassifyInput returns the kind of input that redeems pkScript.  Every
// P2SH output is assumed to nest a P2WPKH program.  Script classes that
// cannot be sized are reported with ErrUnsupportedInputType.
func ClassifyInput(pkScript []byte) (InputKind, error) {
	switch class := txscript.GetScriptClass(pkScript); class {
	case txscript.PubKeyHashTy:
		return P2PKHInput, nil

	case txscript.ScriptHashTy:
		return NestedP2WPKHInput, nil

	case txscript.WitnessV0PubKeyHashTy:
		return P2WPKHInput, nil

	case txscript.WitnessV1TaprootTy:
		return P2TRInput, nil

	default:
		str := fmt.Sprintf("unable to size input spending %v script",
			class)
		return 0, coreerr.New(coreerr.ErrUnsupportedInputType, str, nil)
	}
}

// InputCounts tallies the inputs of a transaction by kind.
type InputCounts struct {
	P2PKH        int
	P2TR         int
	P2WPKH       int
	NestedP2WPKH int
}

// Total returns the number of inputs counted.
func (c InputCounts) Total() int {
	return c.P2PKH + c.P2TR + c.P2WPKH + c.NestedP2WPKH
}

// witnessInputs returns the number of inputs carrying witness data.
func (c InputCounts) witnessInputs() int {
	return c.P2TR + c.P2WPKH + c.NestedP2WPKH
}

// CountInputs classifies each previous output script.
func CountInputs(prevScripts [][]byte) (InputCounts, error) {
	var counts InputCounts
	for i, pkScript := range prevScripts {
		kind, err := ClassifyInput(pkScript)
		if err != nil {
			return InputCounts{}, fmt.Errorf("input %d: %w", i, err)
		}

		switch kind {
		case P2PKHInput:
			counts.P2PKH++
		case NestedP2WPKHInput:
			counts.NestedP2WPKH++
		case P2WPKHInput:
			counts.P2WPKH++
		case P2TRInput:
			counts.P2TR++
		}
	}

	return counts, nil
}

// SumOutputSerializeSizes sums up the serialized size of the supplied outputs.
func SumOutputSerializeSizes(outputs []*wire.TxOut) (serializeSize int) {
	for _, txOut := range outputs {
		serializeSize += txOut.SerializeSize()
	}
	return serializeSize
}

// EstimateVirtualSize returns a worst case virtual size estimate for a
// signed transaction spending the counted inputs and paying to each of
// txOuts.  When changeScriptSize is positive the estimate includes one more
// output with a script of that size.
func EstimateVirtualSize(counts InputCounts, txOuts []*wire.TxOut,
	changeScriptSize int) int {

	outputCount := len(txOuts)

	changeOutputSize := 0
	if changeScriptSize > 0 {
		changeOutputSize = 8 +
			wire.VarIntSerializeSize(uint64(changeScriptSize)) +
			changeScriptSize
		outputCount++
	}

	// Version and lock time are 4 bytes each.
	baseSize := 8 +
		wire.VarIntSerializeSize(uint64(counts.Total())) +
		wire.VarIntSerializeSize(uint64(outputCount)) +
		counts.P2PKH*RedeemP2PKHInputSize +
		counts.P2WPKH*RedeemP2WPKHInputSize +
		counts.P2TR*RedeemP2TRInputSize +
		counts.NestedP2WPKH*RedeemNestedP2WPKHInputSize +
		SumOutputSerializeSizes(txOuts) +
		changeOutputSize

	// Witness data is only serialized when at least one input has some.
	// Legacy inputs of such a transaction still encode an empty stack.
	witnessWeight := 0
	if counts.witnessInputs() > 0 {
		// 2 weight units for the segwit marker and flag.
		witnessWeight = 2 +
			counts.P2PKH +
			(counts.P2WPKH+counts.NestedP2WPKH)*
				RedeemP2WPKHInputWitnessWeight +
			counts.P2TR*RedeemP2TRInputWitnessWeight
	}

	// Round the witness part up to a whole virtual byte.
	return baseSize + (witnessWeight+blockchain.WitnessScaleFactor-1)/
		blockchain.WitnessScaleFactor
}

// EstimateSignedVirtualSize estimates the virtual size of a transaction
// spending outputs locked by prevScripts and paying to txOuts once every
// input is signed.
func EstimateSignedVirtualSize(prevScripts [][]byte,
	txOuts []*wire.TxOut) (btcunit.VByte, error) {

	counts, err := CountInputs(prevScripts)
	if err != nil {
		return 0, err
	}

	return btcunit.VByte(EstimateVirtualSize(counts, txOuts, 0)), nil
}

// InputVirtualSize returns the worst case number of vbytes an input of the
// given kind adds to a transaction, ignoring the segwit marker and flag.
func InputVirtualSize(kind InputKind) int {
	var baseSize, witnessWeight int
	switch kind {
	case NestedP2WPKHInput:
		baseSize = RedeemNestedP2WPKHInputSize
		witnessWeight = RedeemP2WPKHInputWitnessWeight

	case P2WPKHInput:
		baseSize = RedeemP2WPKHInputSize
		witnessWeight = RedeemP2WPKHInputWitnessWeight

	case P2TRInput:
		baseSize = RedeemP2TRInputSize
		witnessWeight = RedeemP2TRInputWitnessWeight

	default:
		baseSize = RedeemP2PKHInputSize
	}

	return baseSize +
		(witnessWeight+blockchain.WitnessScaleFactor-1)/
			blockchain.WitnessScaleFactor
}
