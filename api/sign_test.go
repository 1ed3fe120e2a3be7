// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"strings"
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/stretchr/testify/require"
)

// buildSpend builds a transaction spending one output of key one per script,
// each holding 100,000 satoshis, and returns it with its previous outputs.
func buildSpend(t *testing.T, scripts ...string) (string, []PrevOutRecord) {
	t.Helper()

	inputs := make([]InputRecord, 0, len(scripts))
	prevOuts := make([]PrevOutRecord, 0, len(scripts))
	for i, script := range scripts {
		inputs = append(inputs, InputRecord{
			TxID:         prevTxID,
			Vout:         uint32(i),
			Amount:       100_000,
			ScriptPubKey: script,
		})
		prevOuts = append(prevOuts, PrevOutRecord{
			ScriptPubKey: script,
			Amount:       100_000,
		})
	}

	txHex, err := BuildTransaction(
		inputs, scenarioOutputs(), 0, &netparams.MainNetParams,
	)
	require.NoError(t, err)

	return txHex, prevOuts
}

func TestSignTransaction(t *testing.T) {
	t.Parallel()

	for _, script := range []string{keyOneP2PKH, keyOneP2WPKH, keyOneP2TR} {
		txHex, prevOuts := buildSpend(t, script)

		signed, err := SignTransaction(
			txHex, keyOneHex, 0, script, 100_000,
		)
		require.NoError(t, err, script)
		require.NotEqual(t, txHex, signed)
		require.NoError(t, VerifyInput(signed, 0, prevOuts), script)

		// The unsigned transaction does not verify.
		err = VerifyInput(txHex, 0, prevOuts)
		require.True(t, coreerr.IsError(
			err, coreerr.ErrSignatureVerification,
		), "unexpected error %v", err)
	}
}

// TestSignTransactionUsesValue shows that the value passed in is committed
// to by segwit signatures: a signature made for the wrong value does not
// verify against the real one.
func TestSignTransactionUsesValue(t *testing.T) {
	t.Parallel()

	for _, script := range []string{keyOneP2WPKH, keyOneP2TR} {
		txHex, prevOuts := buildSpend(t, script)

		signed, err := SignTransaction(
			txHex, keyOneHex, 0, script, 99_999,
		)
		require.NoError(t, err)

		err = VerifyInput(signed, 0, prevOuts)
		require.True(t, coreerr.IsError(
			err, coreerr.ErrSignatureVerification,
		), "unexpected error %v", err)
	}
}

func TestSignTransactionAllInputs(t *testing.T) {
	t.Parallel()

	txHex, prevOuts := buildSpend(
		t, keyOneP2PKH, keyOneP2WPKH, keyOneP2TR,
	)

	// Taproot signature hashes need every previous output.
	_, err := SignTransaction(txHex, keyOneHex, 2, keyOneP2TR, 100_000)
	require.True(t, coreerr.IsError(err, coreerr.ErrUnsupportedInputType))

	signed := txHex
	for i := range prevOuts {
		signed, err = SignTransactionWithPrevOuts(
			signed, keyOneHex, i, prevOuts,
		)
		require.NoError(t, err, "input %d", i)
	}

	for i := range prevOuts {
		require.NoError(t, VerifyInput(signed, i, prevOuts))
	}

	// The legacy input replaced its placeholder, and the witness inputs
	// cleared theirs, so the id changed once.  It is final now.
	unsignedID, err := CalculateTxID(txHex)
	require.NoError(t, err)
	signedID, err := CalculateTxID(signed)
	require.NoError(t, err)
	require.NotEqual(t, unsignedID, signedID)

	witnessID, err := CalculateWitnessTxID(signed)
	require.NoError(t, err)
	require.NotEqual(t, signedID, witnessID)
}

func TestSignTransactionErrors(t *testing.T) {
	t.Parallel()

	txHex, prevOuts := buildSpend(t, keyOneP2WPKH, keyOneP2WPKH)

	tests := []struct {
		name   string
		txHex  string
		key    string
		idx    int
		script string
		value  int64
		code   coreerr.ErrorCode
	}{
		{
			name:  "odd tx hex",
			txHex: "abc",
			code:  coreerr.ErrMalformedHex,
		},
		{
			name:  "truncated tx",
			txHex: txHex[:len(txHex)-2],
			code:  coreerr.ErrMalformedTransaction,
		},
		{
			name:  "trailing bytes",
			txHex: txHex + "00",
			code:  coreerr.ErrMalformedTransaction,
		},
		{
			name: "index out of range",
			idx:  5,
			code: coreerr.ErrIndexOutOfRange,
		},
		{
			name: "negative index",
			idx:  -1,
			code: coreerr.ErrIndexOutOfRange,
		},
		{
			name: "short key",
			key:  keyOneHex[:62],
			code: coreerr.ErrInvalidKeyMaterial,
		},
		{
			name: "non hex key",
			key:  strings.Repeat("zz", 32),
			code: coreerr.ErrMalformedHex,
		},
		{
			name: "zero key",
			key:  strings.Repeat("00", 32),
			code: coreerr.ErrInvalidKeyMaterial,
		},
		{
			name: "foreign key",
			key:  keyTwoHex,
			code: coreerr.ErrInvalidKeyMaterial,
		},
		{
			name:   "bad script",
			script: "xyz",
			code:   coreerr.ErrInvalidScript,
		},
		{
			name:   "unsupported script",
			script: "51",
			code:   coreerr.ErrUnsupportedInputType,
		},
		{
			name:  "negative value",
			value: -1,
			code:  coreerr.ErrInvalidAmount,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if test.txHex == "" {
				test.txHex = txHex
			}
			if test.key == "" {
				test.key = keyOneHex
			}
			if test.script == "" {
				test.script = keyOneP2WPKH
			}
			if test.value == 0 {
				test.value = 100_000
			}

			signed, err := SignTransaction(
				test.txHex, test.key, test.idx, test.script,
				test.value,
			)
			require.True(t, coreerr.IsError(err, test.code),
				"unexpected error %v", err)
			require.Empty(t, signed)
		})
	}

	// Previous outputs must match the input count.
	_, err := SignTransactionWithPrevOuts(txHex, keyOneHex, 0, prevOuts[:1])
	require.True(t, coreerr.IsError(err, coreerr.ErrIndexOutOfRange))

	err = VerifyInput(txHex, 0, prevOuts[:1])
	require.True(t, coreerr.IsError(err, coreerr.ErrIndexOutOfRange))
}
