// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/stretchr/testify/require"
)

func TestCalculateTxID(t *testing.T) {
	t.Parallel()

	txid, err := CalculateTxID(scenarioTx)
	require.NoError(t, err)
	require.Equal(t, scenarioTxID, txid)

	// Without witness data both ids agree.
	wtxid, err := CalculateWitnessTxID(scenarioTx)
	require.NoError(t, err)
	require.Equal(t, scenarioTxID, wtxid)

	_, err = CalculateTxID("abc")
	require.True(t, coreerr.IsError(err, coreerr.ErrMalformedHex))

	_, err = CalculateTxID("")
	require.True(t, coreerr.IsError(err, coreerr.ErrMalformedTransaction))

	_, err = CalculateWitnessTxID(scenarioTx + "ff")
	require.True(t, coreerr.IsError(err, coreerr.ErrMalformedTransaction))
}

func TestDecodeTransaction(t *testing.T) {
	t.Parallel()

	summary, err := DecodeTransaction(scenarioTx, &netparams.MainNetParams)
	require.NoError(t, err)

	require.Equal(t, &TxSummary{
		TxID:     scenarioTxID,
		Hash:     scenarioTxID,
		Version:  2,
		Size:     107,
		VSize:    107,
		Weight:   428,
		LockTime: 0,
		Inputs: []InputSummary{{
			TxID:      prevTxID,
			Vout:      0,
			ScriptSig: keyOneP2PKH,
			Sequence:  0xffffffff,
		}},
		Outputs: []OutputSummary{{
			N:            0,
			Amount:       90_000,
			ScriptPubKey: "001406afd46bcdfd22ef94ac122aa11f241244a37ecc",
			Asm:          "0 06afd46bcdfd22ef94ac122aa11f241244a37ecc",
			Type:         "witness_v0_keyhash",
			Address:      keyTwoSegwit,
		}},
	}, summary)

	_, err = DecodeTransaction("0g", &netparams.MainNetParams)
	require.True(t, coreerr.IsError(err, coreerr.ErrMalformedHex))
}

func TestDecodeSignedTransaction(t *testing.T) {
	t.Parallel()

	txHex, _ := buildSpend(t, keyOneP2WPKH)
	signed, err := SignTransaction(
		txHex, keyOneHex, 0, keyOneP2WPKH, 100_000,
	)
	require.NoError(t, err)

	summary, err := DecodeTransaction(signed, &netparams.MainNetParams)
	require.NoError(t, err)

	require.NotEqual(t, summary.TxID, summary.Hash)
	require.Less(t, summary.VSize, uint64(summary.Size))
	require.Empty(t, summary.Inputs[0].ScriptSig)
	require.Len(t, summary.Inputs[0].Witness, 2)
	require.Equal(t, keyOnePair.PublicKey, summary.Inputs[0].Witness[1])

	// Addresses are rendered for the network asked for.
	summary, err = DecodeTransaction(signed, &netparams.TestNet3Params)
	require.NoError(t, err)
	require.Equal(t, "tb1qq6hag67dl53wl99vzg42z8eyzfz2xlkvvlryfj",
		summary.Outputs[0].Address)
}
