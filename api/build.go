// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/txauthor"
	"github.com/bitlab/txengine/wallet/txrules"
	"github.com/bitlab/txengine/wallet/txsizes"
	"github.com/btcsuite/btcd/btcutil"
)

// BuildResult describes a freshly built unsigned transaction.
type BuildResult struct {
	// Hex is the consensus encoding of the unsigned transaction.
	Hex string `json:"hex"`

	// TxID is the id of the unsigned transaction.  Signing replaces the
	// signature script placeholders, so the id of the final transaction
	// differs unless every input spends a P2WPKH or taproot output and the
	// placeholders were cleared first, as in the PSBT form.
	TxID string `json:"txid"`

	// Fee is the implicit fee in satoshis.
	Fee int64 `json:"fee"`

	// VSize is the estimated virtual size once every input is signed.  It
	// is zero when an input spends an output that cannot be sized.
	VSize uint64 `json:"estimated_vsize,omitempty"`

	// FeeRate is Fee over VSize, e.g. "12.50 sat/vb".
	FeeRate string `json:"fee_rate,omitempty"`

	// DustOutputs lists the indexes of outputs below the dust threshold
	// at the default relay fee.
	DustOutputs []int `json:"dust_outputs,omitempty"`
}

// BuildTransaction builds an unsigned transaction spending every input to
// every output, in order, and returns its hex encoding.
//
// The fee is implicit: the inputs minus the outputs.  A positive declared fee
// is checked against it and ErrInvalidAmount is returned if the inputs do not
// leave at least that much.
func BuildTransaction(inputs []InputRecord, outputs []OutputRecord,
	fee int64, params *netparams.Params) (string, error) {

	authored, err := buildAuthoredTx(inputs, outputs, fee, params)
	if err != nil {
		return "", err
	}
	return encodeTx(authored.Tx)
}

// BuildTransactionDetailed is BuildTransaction returning the transaction id,
// fee, size estimate, and dust outputs alongside the encoding.
func BuildTransactionDetailed(inputs []InputRecord, outputs []OutputRecord,
	fee int64, params *netparams.Params) (*BuildResult, error) {

	authored, err := buildAuthoredTx(inputs, outputs, fee, params)
	if err != nil {
		return nil, err
	}

	txHex, err := encodeTx(authored.Tx)
	if err != nil {
		return nil, err
	}

	actualFee := authored.Fee()
	result := &BuildResult{
		Hex:  txHex,
		TxID: txauthor.TxID(authored.Tx),
		Fee:  int64(actualFee),
	}

	vsize, err := txsizes.EstimateSignedVirtualSize(
		authored.PrevScripts, authored.Tx.TxOut,
	)
	switch {
	case coreerr.IsError(err, coreerr.ErrUnsupportedInputType):
		log.Debugf("Not estimating size of transaction %v: %v",
			result.TxID, err)

	case err != nil:
		return nil, err

	default:
		result.VSize = uint64(vsize)
		if actualFee >= 0 {
			result.FeeRate = btcunit.NewSatPerVByte(
				actualFee, vsize,
			).String()
		}
	}

	for i, txOut := range authored.Tx.TxOut {
		if txrules.IsDustOutput(txOut, txrules.DefaultRelayFeePerKb) {
			result.DustOutputs = append(result.DustOutputs, i)
		}
	}

	return result, nil
}

// BuildPSBT builds the same transaction as BuildTransaction and returns it
// as a base64 encoded BIP-174 packet carrying the spent outputs.
func BuildPSBT(inputs []InputRecord, outputs []OutputRecord, fee int64,
	params *netparams.Params) (string, error) {

	authored, err := buildAuthoredTx(inputs, outputs, fee, params)
	if err != nil {
		return "", err
	}
	return authored.PSBTBase64()
}

func buildAuthoredTx(inputs []InputRecord, outputs []OutputRecord,
	fee int64, params *netparams.Params) (*txauthor.AuthoredTx, error) {

	unspent, err := unspentInputs(inputs)
	if err != nil {
		return nil, err
	}

	authored, err := txauthor.NewUnsignedTransaction(
		unspent, spendOutputs(outputs), params,
	)
	if err != nil {
		return nil, err
	}

	if err := checkDeclaredFee(btcutil.Amount(fee), authored.Fee()); err != nil {
		return nil, err
	}

	return authored, nil
}

// checkDeclaredFee ensures a declared fee is covered by the implicit fee.
// Zero declares no fee and accepts any implicit fee, negative included.
func checkDeclaredFee(declared, actual btcutil.Amount) error {
	if err := btcunit.CheckAmount(declared); err != nil {
		return fmt.Errorf("declared fee: %w", err)
	}

	if declared != 0 && declared > actual {
		str := fmt.Sprintf("declared fee %v exceeds the %v left over "+
			"by the inputs", declared, actual)
		return coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}

	if declared != 0 && declared != actual {
		log.Debugf("Declared fee %v is below the implicit fee %v",
			declared, actual)
	}

	return nil
}
