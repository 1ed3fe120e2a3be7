// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"github.com/bitlab/txengine/hexcodec"
	"github.com/bitlab/txengine/netparams"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/txauthor"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// CalculateTxID returns the id of the hex encoded transaction in its
// byte-reversed display form.  The id excludes witness data.
func CalculateTxID(txHex string) (string, error) {
	tx, err := decodeTx(txHex)
	if err != nil {
		return "", err
	}
	return txauthor.TxID(tx), nil
}

// CalculateWitnessTxID returns the witness id of the hex encoded
// transaction in its byte-reversed display form.
func CalculateWitnessTxID(txHex string) (string, error) {
	tx, err := decodeTx(txHex)
	if err != nil {
		return "", err
	}
	return txauthor.WitnessTxID(tx), nil
}

// TxSummary is the decoded form of a transaction.
type TxSummary struct {
	TxID     string          `json:"txid"`
	Hash     string          `json:"hash"`
	Version  int32           `json:"version"`
	Size     int             `json:"size"`
	VSize    uint64          `json:"vsize"`
	Weight   uint64          `json:"weight"`
	LockTime uint32          `json:"locktime"`
	Inputs   []InputSummary  `json:"vin"`
	Outputs  []OutputSummary `json:"vout"`
}

// InputSummary is the decoded form of a transaction input.
type InputSummary struct {
	TxID      string   `json:"txid"`
	Vout      uint32   `json:"vout"`
	ScriptSig string   `json:"script_sig"`
	Sequence  uint32   `json:"sequence"`
	Witness   []string `json:"witness,omitempty"`
}

// OutputSummary is the decoded form of a transaction output.  Address is
// empty when the script does not pay to a single standard address on the
// network the transaction was decoded for.
type OutputSummary struct {
	N            int    `json:"n"`
	Amount       int64  `json:"amount"`
	ScriptPubKey string `json:"script_pubkey"`
	Asm          string `json:"asm"`
	Type         string `json:"type"`
	Address      string `json:"address,omitempty"`
}

// DecodeTransaction decodes a hex encoded transaction into a summary.
func DecodeTransaction(txHex string,
	params *netparams.Params) (*TxSummary, error) {

	tx, err := decodeTx(txHex)
	if err != nil {
		return nil, err
	}

	weight := btcunit.TxWeight(tx)
	summary := &TxSummary{
		TxID:     txauthor.TxID(tx),
		Hash:     txauthor.WitnessTxID(tx),
		Version:  tx.Version,
		Size:     tx.SerializeSize(),
		VSize:    uint64(weight.ToVB()),
		Weight:   uint64(weight),
		LockTime: tx.LockTime,
		Inputs:   make([]InputSummary, 0, len(tx.TxIn)),
		Outputs:  make([]OutputSummary, 0, len(tx.TxOut)),
	}

	for _, txIn := range tx.TxIn {
		summary.Inputs = append(summary.Inputs, inputSummary(txIn))
	}
	for i, txOut := range tx.TxOut {
		summary.Outputs = append(
			summary.Outputs, outputSummary(i, txOut, params),
		)
	}

	return summary, nil
}

func inputSummary(txIn *wire.TxIn) InputSummary {
	in := InputSummary{
		TxID:      txIn.PreviousOutPoint.Hash.String(),
		Vout:      txIn.PreviousOutPoint.Index,
		ScriptSig: hexcodec.Encode(txIn.SignatureScript),
		Sequence:  txIn.Sequence,
	}
	for _, item := range txIn.Witness {
		in.Witness = append(in.Witness, hexcodec.Encode(item))
	}
	return in
}

func outputSummary(n int, txOut *wire.TxOut,
	params *netparams.Params) OutputSummary {

	// Disassembly of a script that does not parse ends with an error
	// marker, which is the most useful thing to show for it.
	asm, _ := txscript.DisasmString(txOut.PkScript)

	out := OutputSummary{
		N:            n,
		Amount:       txOut.Value,
		ScriptPubKey: hexcodec.Encode(txOut.PkScript),
		Asm:          asm,
	}

	class, addrs, _, err := txscript.ExtractPkScriptAddrs(
		txOut.PkScript, params.Params,
	)
	out.Type = class.String()
	if err == nil && len(addrs) == 1 && class != txscript.PubKeyTy {
		out.Address = addrs[0].EncodeAddress()
	}

	return out
}
