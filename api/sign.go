// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/hexcodec"
	"github.com/bitlab/txengine/internal/zero"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/txsigner"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// SignTransaction signs input idx of the hex encoded transaction with the
// hex encoded private key and returns the signed transaction.  The input
// spends an output locked by scriptPubKeyHex holding value satoshis; both go
// into the signature hash of segwit inputs.
//
// Only the spent output of input idx is known, so taproot inputs can only
// be signed this way when the transaction has a single input.  Use
// SignTransactionWithPrevOuts otherwise.
func SignTransaction(txHex, privKeyHex string, idx int,
	scriptPubKeyHex string, value int64) (string, error) {

	tx, err := decodeTx(txHex)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("input index %d out of range for "+
			"transaction with %d inputs", idx, len(tx.TxIn))
		return "", coreerr.New(coreerr.ErrIndexOutOfRange, str, nil)
	}

	pkScript, err := decodeScript(scriptPubKeyHex)
	if err != nil {
		return "", err
	}
	if err := btcunit.CheckAmount(btcutil.Amount(value)); err != nil {
		return "", err
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	fetcher.AddPrevOut(tx.TxIn[idx].PreviousOutPoint, &wire.TxOut{
		Value:    value,
		PkScript: pkScript,
	})

	return signInput(tx, privKeyHex, idx, fetcher)
}

// SignTransactionWithPrevOuts signs input idx like SignTransaction, given
// the output spent by every input of the transaction in input order.
func SignTransactionWithPrevOuts(txHex, privKeyHex string, idx int,
	prevOuts []PrevOutRecord) (string, error) {

	tx, err := decodeTx(txHex)
	if err != nil {
		return "", err
	}

	fetcher, err := prevOutFetcher(tx, prevOuts)
	if err != nil {
		return "", err
	}

	return signInput(tx, privKeyHex, idx, fetcher)
}

// VerifyInput checks that input idx of the hex encoded transaction is
// authorized to spend its previous output, given the output spent by every
// input in input order.
func VerifyInput(txHex string, idx int, prevOuts []PrevOutRecord) error {
	tx, err := decodeTx(txHex)
	if err != nil {
		return err
	}

	fetcher, err := prevOutFetcher(tx, prevOuts)
	if err != nil {
		return err
	}

	return txsigner.VerifyInput(tx, idx, fetcher)
}

func signInput(tx *wire.MsgTx, privKeyHex string, idx int,
	fetcher txscript.PrevOutputFetcher) (string, error) {

	privKey, err := decodePrivateKey(privKeyHex)
	if err != nil {
		return "", err
	}
	defer zero.Bytes(privKey)

	signed, err := txsigner.SignInput(tx, idx, privKey, fetcher)
	if err != nil {
		return "", err
	}

	return encodeTx(signed)
}

// decodePrivateKey decodes a hex private key.  Only the encoding is checked
// here; the key engine validates the scalar.
func decodePrivateKey(privKeyHex string) ([]byte, error) {
	privKey, err := hexcodec.Decode(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	return privKey, nil
}
