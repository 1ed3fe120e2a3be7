// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api exposes the key, build, and signing engines through hex and
// JSON friendly operations.  Every byte string crossing this boundary is
// hex encoded and every amount is an integer number of satoshis.
//
// Each operation is a pure function of its arguments and the network it is
// given, so operations may be called concurrently.
package api

import (
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/hexcodec"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/txauthor"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// InputRecord describes an unspent output to spend.
type InputRecord struct {
	TxID         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	Amount       int64  `json:"amount"`
	ScriptPubKey string `json:"script_pubkey"`
}

// OutputRecord describes a payment.
type OutputRecord struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

// PrevOutRecord describes the output spent by one input of a transaction
// being signed or verified.
type PrevOutRecord struct {
	ScriptPubKey string `json:"script_pubkey"`
	Amount       int64  `json:"amount"`
}

// AddressRecord holds the three addresses controlled by a key.
type AddressRecord struct {
	Legacy  string `json:"legacy"`
	Segwit  string `json:"segwit"`
	Taproot string `json:"taproot"`
}

// KeyPair is a private key with the data derived from it.
type KeyPair struct {
	PrivateKey string        `json:"private_key"`
	PublicKey  string        `json:"public_key"`
	WIF        string        `json:"wif"`
	Addresses  AddressRecord `json:"addresses"`
}

// decodeScript decodes a hex locking script.  Decoding failures are reported
// as ErrInvalidScript since the text is a script, not an opaque blob.
func decodeScript(scriptHex string) ([]byte, error) {
	script, err := hexcodec.Decode(scriptHex)
	if err != nil {
		return nil, coreerr.New(coreerr.ErrInvalidScript,
			"locking script is not valid hex", err)
	}
	return script, nil
}

// decodeTx decodes a hex encoded transaction.
func decodeTx(txHex string) (*wire.MsgTx, error) {
	serialized, err := hexcodec.Decode(txHex)
	if err != nil {
		return nil, err
	}
	return txauthor.DeserializeTx(serialized)
}

// encodeTx returns the hex consensus encoding of tx.
func encodeTx(tx *wire.MsgTx) (string, error) {
	serialized, err := txauthor.SerializeTx(tx)
	if err != nil {
		return "", err
	}
	return hexcodec.Encode(serialized), nil
}

// unspentInputs converts input records into authoring inputs.
func unspentInputs(records []InputRecord) ([]txauthor.UnspentInput, error) {
	inputs := make([]txauthor.UnspentInput, 0, len(records))
	for i, record := range records {
		pkScript, err := decodeScript(record.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}

		inputs = append(inputs, txauthor.UnspentInput{
			TxID:     record.TxID,
			Vout:     record.Vout,
			Amount:   btcutil.Amount(record.Amount),
			PkScript: pkScript,
		})
	}
	return inputs, nil
}

// spendOutputs converts output records into authoring outputs.
func spendOutputs(records []OutputRecord) []txauthor.SpendOutput {
	outputs := make([]txauthor.SpendOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, txauthor.SpendOutput{
			Address: record.Address,
			Amount:  btcutil.Amount(record.Amount),
		})
	}
	return outputs
}

// prevOutFetcher maps the records, given in input order, to the outpoints
// of tx.  Only a fetcher that reports unknown outpoints as nil is usable for
// signing, so a canned fetcher is never used here.
func prevOutFetcher(tx *wire.MsgTx,
	records []PrevOutRecord) (*txscript.MultiPrevOutFetcher, error) {

	if len(records) != len(tx.TxIn) {
		str := fmt.Sprintf("%d previous outputs given for a transaction "+
			"with %d inputs", len(records), len(tx.TxIn))
		return nil, coreerr.New(coreerr.ErrIndexOutOfRange, str, nil)
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, record := range records {
		pkScript, err := decodeScript(record.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("previous output %d: %w", i, err)
		}
		amount := btcutil.Amount(record.Amount)
		if err := btcunit.CheckAmount(amount); err != nil {
			return nil, fmt.Errorf("previous output %d: %w", i, err)
		}

		fetcher.AddPrevOut(tx.TxIn[i].PreviousOutPoint, &wire.TxOut{
			Value:    record.Amount,
			PkScript: pkScript,
		})
	}
	return fetcher, nil
}
