// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txauthor provides transaction creation code: it assembles an
// unsigned transaction from caller supplied unspent outputs and payment
// destinations, and moves transactions to and from their consensus encoding.
package txauthor

import (
	"errors"
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/keys"
	"github.com/bitlab/txengine/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// TxVersion is the version of every authored transaction.  Version 2 enables
// BIP-68 relative lock times, although authored inputs do not opt in.
const TxVersion = 2

// UnspentInput describes a previous output the caller wants to spend.
type UnspentInput struct {
	// TxID is the id of the transaction holding the output, in its
	// conventional byte-reversed hex display form.
	TxID string

	// Vout is the index of the output within that transaction.
	Vout uint32

	// Amount is the value of the output.
	Amount btcutil.Amount

	// PkScript is the locking script of the output.
	PkScript []byte
}

// SpendOutput describes a payment of Amount to Address.
type SpendOutput struct {
	Address string
	Amount  btcutil.Amount
}

// SumOutputValues sums up the list of TxOuts and returns an Amount.
func SumOutputValues(outputs []*wire.TxOut) (totalOutput btcutil.Amount) {
	for _, txOut := range outputs {
		totalOutput += btcutil.Amount(txOut.Value)
	}
	return totalOutput
}

// AuthoredTx holds the state of a newly-created transaction together with
// the previous outputs its inputs spend, in input order.
type AuthoredTx struct {
	Tx              *wire.MsgTx
	PrevScripts     [][]byte
	PrevInputValues []btcutil.Amount
	TotalInput      btcutil.Amount
}

// NewUnsignedTransaction creates an unsigned transaction spending every
// input, in order, to every output, in order.
//
// The transaction has version 2 and lock time 0.  Each input has the maximal
// sequence number, an empty witness, and its signature script set to the
// locking script it spends as a placeholder until it is signed.  Each output
// pays its amount to the script of its address, which must belong to the
// network described by params.
//
// No fee policy is applied: the fee is whatever the inputs leave over after
// the outputs.  Outputs exceeding the inputs and dust outputs are logged but
// allowed; keeping the fee non-negative is left to the caller.
func NewUnsignedTransaction(inputs []UnspentInput, outputs []SpendOutput,
	params *netparams.Params) (*AuthoredTx, error) {

	if len(inputs) == 0 {
		return nil, coreerr.New(coreerr.ErrMissingInputs,
			"transaction must spend at least one input", nil)
	}

	numInputs := len(inputs)
	txIn := make([]*wire.TxIn, 0, numInputs)
	inputValues := make([]btcutil.Amount, 0, numInputs)
	scripts := make([][]byte, 0, numInputs)

	var totalInput btcutil.Amount
	for i, input := range inputs {
		outPoint, err := parseOutPoint(input.TxID, input.Vout)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := checkScript(input.PkScript); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := btcunit.CheckAmount(input.Amount); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}

		totalInput += input.Amount
		if err := btcunit.CheckAmount(totalInput); err != nil {
			return nil, fmt.Errorf("total input: %w", err)
		}

		// The locking script stands in for the signature script until
		// the input is signed.
		sigScript := make([]byte, len(input.PkScript))
		copy(sigScript, input.PkScript)

		txIn = append(txIn, wire.NewTxIn(outPoint, sigScript, nil))
		inputValues = append(inputValues, input.Amount)
		scripts = append(scripts, input.PkScript)
	}

	var totalOutput btcutil.Amount
	txOut := make([]*wire.TxOut, 0, len(outputs))
	for i, output := range outputs {
		pkScript, err := keys.ScriptForAddress(output.Address, params)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}

		out := wire.NewTxOut(int64(output.Amount), pkScript)
		err = txrules.CheckOutput(out, txrules.DefaultRelayFeePerKb)
		switch {
		case errors.Is(err, txrules.ErrOutputIsDust):
			log.Warnf("Output %d paying %v to %s is below the dust "+
				"threshold of %v", i, output.Amount, output.Address,
				txrules.GetDustThreshold(
					pkScript, txrules.DefaultRelayFeePerKb,
				))

		case err != nil:
			return nil, fmt.Errorf("output %d: %w", i, err)
		}

		totalOutput += output.Amount
		if err := btcunit.CheckAmount(totalOutput); err != nil {
			return nil, fmt.Errorf("total output: %w", err)
		}

		txOut = append(txOut, out)
	}

	if totalOutput > totalInput {
		log.Warnf("Outputs total %v exceeds inputs total %v",
			totalOutput, totalInput)
	}

	unsignedTransaction := &wire.MsgTx{
		Version:  TxVersion,
		TxIn:     txIn,
		TxOut:    txOut,
		LockTime: 0,
	}

	log.Debugf("Authored transaction %v spending %d %s to %d %s, fee %v",
		unsignedTransaction.TxHash(), len(txIn),
		pickNoun(len(txIn), "input", "inputs"), len(txOut),
		pickNoun(len(txOut), "output", "outputs"),
		totalInput-totalOutput)
	log.Tracef("Unsigned transaction: %v", spewTx(unsignedTransaction))

	return &AuthoredTx{
		Tx:              unsignedTransaction,
		PrevScripts:     scripts,
		PrevInputValues: inputValues,
		TotalInput:      totalInput,
	}, nil
}

// Fee returns the implicit fee of the transaction: the total input value
// minus the total output value.
func (tx *AuthoredTx) Fee() btcutil.Amount {
	return tx.TotalInput - SumOutputValues(tx.Tx.TxOut)
}

// PrevOutFetcher returns a fetcher over the previous outputs spent by the
// transaction, as needed by segwit and taproot signature hashes.
func (tx *AuthoredTx) PrevOutFetcher() (*txscript.MultiPrevOutFetcher, error) {
	return TXPrevOutFetcher(tx.Tx, tx.PrevScripts, tx.PrevInputValues)
}

// parseOutPoint parses a display form transaction id and output index into
// an outpoint.  The id must be exactly 64 hex digits.
func parseOutPoint(txid string, vout uint32) (*wire.OutPoint, error) {
	if len(txid) != chainhash.MaxHashStringSize {
		str := fmt.Sprintf("transaction id %q must be %d hex "+
			"characters, got %d", txid, chainhash.MaxHashStringSize,
			len(txid))
		return nil, coreerr.New(coreerr.ErrInvalidOutpoint, str, nil)
	}

	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		str := fmt.Sprintf("invalid transaction id %q", txid)
		return nil, coreerr.New(coreerr.ErrInvalidOutpoint, str, err)
	}

	outPoint := wire.NewOutPoint(hash, vout)

	// The null outpoint is only ever referenced by coinbase inputs.
	if outPoint.Hash == (chainhash.Hash{}) && vout == wire.MaxPrevOutIndex {
		return nil, coreerr.New(coreerr.ErrInvalidOutpoint,
			"null outpoint cannot be spent", nil)
	}

	return outPoint, nil
}

// checkScript returns ErrInvalidScript if pkScript does not parse into a
// sequence of opcodes and data pushes.
func checkScript(pkScript []byte) error {
	const scriptVersion = 0
	tokenizer := txscript.MakeScriptTokenizer(scriptVersion, pkScript)
	for tokenizer.Next() {
	}
	if err := tokenizer.Err(); err != nil {
		str := fmt.Sprintf("malformed locking script %x", pkScript)
		return coreerr.New(coreerr.ErrInvalidScript, str, err)
	}

	return nil
}

// TXPrevOutFetcher creates a txscript.PrevOutFetcher from a given slice of
// previous pk scripts and input values.
func TXPrevOutFetcher(tx *wire.MsgTx, prevPkScripts [][]byte,
	inputValues []btcutil.Amount) (*txscript.MultiPrevOutFetcher, error) {

	if len(tx.TxIn) != len(prevPkScripts) {
		return nil, errors.New("tx.TxIn and prevPkScripts slices " +
			"must have equal length")
	}
	if len(tx.TxIn) != len(inputValues) {
		return nil, errors.New("tx.TxIn and inputValues slices " +
			"must have equal length")
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for idx, txin := range tx.TxIn {
		fetcher.AddPrevOut(txin.PreviousOutPoint, &wire.TxOut{
			Value:    int64(inputValues[idx]),
			PkScript: prevPkScripts[idx],
		})
	}

	return fetcher, nil
}

// pickNoun returns the singular or plural form of a noun depending
// on the count n.
func pickNoun(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
