// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

// keyOne is the private key with scalar value one.  Its public key is the
// curve generator, which makes every derived value a well known constant.
var keyOne = mustDecodeHex(
	"0000000000000000000000000000000000000000000000000000000000000001",
)

// curveOrder is the secp256k1 group order n.
var curveOrder = mustDecodeHex(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestParsePrivateKey(t *testing.T) {
	t.Parallel()

	nMinusOne := mustDecodeHex(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
	)

	tests := []struct {
		name  string
		key   []byte
		valid bool
	}{
		{name: "one", key: keyOne, valid: true},
		{name: "n-1", key: nMinusOne, valid: true},
		{name: "zero", key: make([]byte, 32)},
		{name: "order", key: curveOrder},
		{name: "all ones", key: bytes.Repeat([]byte{0xff}, 32)},
		{name: "31 bytes", key: keyOne[1:]},
		{name: "33 bytes", key: append([]byte{0}, keyOne...)},
		{name: "empty", key: nil},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			key, err := ParsePrivateKey(test.key)
			if !test.valid {
				require.True(t, coreerr.IsError(
					err, coreerr.ErrInvalidKeyMaterial,
				), "unexpected error %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.key, key.Serialize())
		})
	}
}

func TestDerivePublicKey(t *testing.T) {
	t.Parallel()

	pub, err := DerivePublicKey(keyOne)
	require.NoError(t, err)
	require.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959"+
		"f2815b16f81798", hex.EncodeToString(pub))

	// Derivation is deterministic.
	again, err := DerivePublicKey(keyOne)
	require.NoError(t, err)
	require.Equal(t, pub, again)

	// A 31 byte key is rejected.
	_, err = DerivePublicKey(keyOne[:31])
	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidKeyMaterial))
}

// TestGeneratePrivateKey checks that generated keys are valid scalars whose
// public keys parse, and that consecutive draws differ.
func TestGeneratePrivateKey(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 16; i++ {
		key, err := GeneratePrivateKey()
		require.NoError(t, err)
		require.Len(t, key, PrivKeyBytesLen)

		pub, err := DerivePublicKey(key)
		require.NoError(t, err)
		_, err = btcec.ParsePubKey(pub)
		require.NoError(t, err)

		_, dup := seen[string(key)]
		require.False(t, dup, "duplicate key drawn")
		seen[string(key)] = struct{}{}
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestGeneratePrivateKeyFromReader(t *testing.T) {
	t.Parallel()

	// The key is copied out before the read buffer is wiped.
	key, err := GeneratePrivateKeyFromReader(bytes.NewReader(keyOne))
	require.NoError(t, err)
	require.Equal(t, keyOne, key)

	// Draws outside [1, n-1] are surfaced, not masked.
	_, err = GeneratePrivateKeyFromReader(bytes.NewReader(curveOrder))
	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidKeyMaterial))

	_, err = GeneratePrivateKeyFromReader(
		bytes.NewReader(make([]byte, 32)),
	)
	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidKeyMaterial))

	// Short reads and reader failures are reported.
	_, err = GeneratePrivateKeyFromReader(bytes.NewReader(keyOne[:16]))
	require.Error(t, err)

	_, err = GeneratePrivateKeyFromReader(errReader{})
	require.ErrorContains(t, err, "entropy unavailable")
}
