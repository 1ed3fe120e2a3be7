// Copyright (c) 2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// PSBT returns a BIP-174 packet for the transaction so it can be signed by
// an external signer.  The signature script placeholders are dropped since a
// PSBT's unsigned transaction must not carry any.
//
// Inputs spending witness programs, and P2SH outputs which are assumed to
// nest one, get their previous output as the witness UTXO along with the
// sighash type they are signed with.  Legacy inputs only get the sighash
// type: their full previous transaction is not known here.
func (tx *AuthoredTx) PSBT() (*psbt.Packet, error) {
	if len(tx.PrevScripts) != len(tx.Tx.TxIn) ||
		len(tx.PrevInputValues) != len(tx.Tx.TxIn) {

		return nil, fmt.Errorf("authored transaction has %d inputs "+
			"but %d previous scripts and %d values",
			len(tx.Tx.TxIn), len(tx.PrevScripts),
			len(tx.PrevInputValues))
	}

	unsignedTx := tx.Tx.Copy()
	for _, txIn := range unsignedTx.TxIn {
		txIn.SignatureScript = nil
		txIn.Witness = nil
	}

	packet, err := psbt.NewFromUnsignedTx(unsignedTx)
	if err != nil {
		return nil, err
	}

	for idx := range packet.Inputs {
		in := &packet.Inputs[idx]
		addInputInfo(in, tx.PrevScripts[idx], tx.PrevInputValues[idx])
	}

	log.Debugf("Created PSBT for transaction %v with %d %s",
		unsignedTx.TxHash(), len(packet.Inputs),
		pickNoun(len(packet.Inputs), "input", "inputs"))

	return packet, nil
}

// addInputInfo fills in the previous output and sighash type of a single
// PSBT input.
func addInputInfo(in *psbt.PInput, pkScript []byte, value btcutil.Amount) {
	utxo := &wire.TxOut{
		Value:    int64(value),
		PkScript: pkScript,
	}

	switch txscript.GetScriptClass(pkScript) {
	case txscript.WitnessV1TaprootTy:
		in.WitnessUtxo = utxo
		in.SighashType = txscript.SigHashDefault

	case txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy,
		txscript.ScriptHashTy:

		in.WitnessUtxo = utxo
		in.SighashType = txscript.SigHashAll

	default:
		in.SighashType = txscript.SigHashAll
	}
}

// PSBTBase64 returns the base64 encoding of the transaction's PSBT.
func (tx *AuthoredTx) PSBTBase64() (string, error) {
	packet, err := tx.PSBT()
	if err != nil {
		return "", err
	}
	return packet.B64Encode()
}
