// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"encoding/hex"
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// bip143P2WPKH is the signed native P2WPKH example transaction of BIP-143.
const bip143P2WPKH = "01000000000102fff7f7881a8099afa6940d42d1e7f6362bec38" +
	"171ea3edf433541db4e4ad969f00000000494830450221008b9d1dc26ba6a9cb62" +
	"127b02742fa9d754cd3bebf337f7a55d114c8e5cdd30be022040529b194ba3f9281a" +
	"99f2b1c0a19c0489bc22ede944ccf4ecbab4cc618ef3ed01eeffffffef51e1b804cc" +
	"89d182d279655c3aa89e815b1b309fe287d9b2b55d57b90ec68a0100000000ffffff" +
	"ff02202cb206000000001976a9148280b37df378db99f66f85c95a783a76ac7a6d59" +
	"88ac9093510d000000001976a9143bde42dbee7e4dbe6a21b2d50ce2f0167faa8159" +
	"88ac000247304402203609e17b84f6a7d30c80bfa610b5b4542f32a8a0d5447a12fb" +
	"1366d7f01cc44a0220573a954c4518331561406f90300e8f3358f51928d43c212a8c" +
	"aed02de67eebee0121025476c2e83188368da1ff3e292e7acafcdb3566bb0ad253f6" +
	"2fc70f07aeee635711000000"

// TestSerializeRoundTrip checks that every encoding decodes back to an equal
// transaction which encodes to the same bytes.
func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	authored, err := NewUnsignedTransaction(
		scenarioInputs(), scenarioOutputs(), &netparams.MainNetParams,
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		tx   *wire.MsgTx
	}{
		{name: "authored", tx: authored.Tx},
		{name: "witness", tx: decodeHexTx(t, bip143P2WPKH)},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			serialized, err := SerializeTx(test.tx)
			require.NoError(t, err)

			decoded, err := DeserializeTx(serialized)
			require.NoError(t, err)
			require.Equal(t, test.tx, decoded)

			again, err := SerializeTx(decoded)
			require.NoError(t, err)
			require.Equal(t, serialized, again)
		})
	}
}

func decodeHexTx(t *testing.T, txHex string) *wire.MsgTx {
	t.Helper()

	b, err := hex.DecodeString(txHex)
	require.NoError(t, err)

	tx, err := DeserializeTx(b)
	require.NoError(t, err)

	return tx
}

func TestDeserializeTxMalformed(t *testing.T) {
	t.Parallel()

	valid := mustDecodeHex(scenarioTx)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "truncated", data: valid[:len(valid)-1]},
		{name: "trailing", data: append(append([]byte{}, valid...), 0x00)},
		{
			// The input count claims 0xfd inputs but the varint is
			// cut short.
			name: "bad count",
			data: []byte{0x02, 0x00, 0x00, 0x00, 0xfd},
		},
		{
			// A zero input count is read as the segwit marker, and
			// a zero flag byte is invalid.
			name: "no inputs",
			data: mustDecodeHex("02000000000000000000"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := DeserializeTx(test.data)
			require.True(t, coreerr.IsError(
				err, coreerr.ErrMalformedTransaction,
			), "unexpected error %v", err)
		})
	}
}

func TestTxIDs(t *testing.T) {
	t.Parallel()

	tx := decodeHexTx(t, bip143P2WPKH)

	// Ids from BIP-143.
	wantTxID := "e8151a2af31c368a35053ddd4bdb285a8595c769a3ad83e0fa02314a602d4609"
	require.Equal(t, wantTxID, TxID(tx))
	require.NotEqual(t, TxID(tx), WitnessTxID(tx))

	// Without witness data both ids match, and the txid is unchanged.
	stripped := tx.Copy()
	for _, txIn := range stripped.TxIn {
		txIn.Witness = nil
	}
	require.Equal(t, wantTxID, TxID(stripped))
	require.Equal(t, TxID(stripped), WitnessTxID(stripped))
}
