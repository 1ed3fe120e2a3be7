// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"
)

var keyTwo = mustDecodeHex(
	"0000000000000000000000000000000000000000000000000000000000000002",
)

func TestDeriveAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    []byte
		params *netparams.Params
		want   Addresses
	}{
		{
			name:   "key one mainnet",
			key:    keyOne,
			params: &netparams.MainNetParams,
			want: Addresses{
				Legacy:  "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
				Segwit:  "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
				Taproot: "bc1pmfr3p9j00pfxjh0zmgp99y8zftmd3s5pmedqhyptwy6lm87hf5sspknck9",
			},
		},
		{
			name:   "key one testnet",
			key:    keyOne,
			params: &netparams.TestNet3Params,
			want: Addresses{
				Legacy:  "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r",
				Segwit:  "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
				Taproot: "tb1pmfr3p9j00pfxjh0zmgp99y8zftmd3s5pmedqhyptwy6lm87hf5ssk79hv2",
			},
		},
		{
			name:   "key one testnet4",
			key:    keyOne,
			params: &netparams.TestNet4Params,
			want: Addresses{
				Legacy:  "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r",
				Segwit:  "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
				Taproot: "tb1pmfr3p9j00pfxjh0zmgp99y8zftmd3s5pmedqhyptwy6lm87hf5ssk79hv2",
			},
		},
		{
			name:   "key two regtest",
			key:    keyTwo,
			params: &netparams.RegressionNetParams,
			want: Addresses{
				Legacy:  "mg8Jz5776UdyiYcBb9Z873NTozEiADRW5H",
				Segwit:  "bcrt1qq6hag67dl53wl99vzg42z8eyzfz2xlkvwk6f7m",
				Taproot: "bcrt1pet7ep3czdu9k4wvdlz2fp5p8x2yp7t6ttyqg2c6cmh0lgeuu9laspse7la",
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			addrs, err := DeriveAddresses(test.key, test.params)
			require.NoError(t, err)
			require.Equal(t, test.want, *addrs)

			// Repeated derivation yields identical output.
			again, err := DeriveAddresses(test.key, test.params)
			require.NoError(t, err)
			require.Equal(t, addrs, again)
		})
	}
}

// TestAddressesDistinct checks that the three encodings never collapse to
// the same string and use the checksum variant their witness version
// requires.
func TestAddressesDistinct(t *testing.T) {
	t.Parallel()

	for i := 0; i < 8; i++ {
		key, err := GeneratePrivateKey()
		require.NoError(t, err)

		addrs, err := DeriveAddresses(key, &netparams.MainNetParams)
		require.NoError(t, err)

		require.NotEqual(t, addrs.Legacy, addrs.Segwit)
		require.NotEqual(t, addrs.Legacy, addrs.Taproot)
		require.NotEqual(t, addrs.Segwit, addrs.Taproot)

		_, _, version, err := bech32.DecodeGeneric(addrs.Segwit)
		require.NoError(t, err)
		require.Equal(t, bech32.Version0, version)

		_, _, version, err = bech32.DecodeGeneric(addrs.Taproot)
		require.NoError(t, err)
		require.Equal(t, bech32.VersionM, version)
	}
}

func TestDeriveKeyPair(t *testing.T) {
	t.Parallel()

	pair, err := DeriveKeyPair(keyOne, &netparams.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, keyOne, pair.PrivateKey)
	require.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959"+
		"f2815b16f81798", hex.EncodeToString(pair.PublicKey))
	require.Equal(t,
		"KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn", pair.WIF)

	pair, err = DeriveKeyPair(keyOne, &netparams.TestNet3Params)
	require.NoError(t, err)
	require.Equal(t,
		"cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA", pair.WIF)

	_, err = DeriveKeyPair(keyOne[:31], &netparams.MainNetParams)
	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidKeyMaterial))
}

func TestDeriveKeyPairs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pairs, err := DeriveKeyPairs(
		ctx, [][]byte{keyOne, keyTwo}, &netparams.MainNetParams,
	)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
		pairs[0].Addresses.Legacy)
	require.Equal(t, "1cMh228HTCiwS8ZsaakH8A8wze1JR5ZsP",
		pairs[1].Addresses.Legacy)

	_, err = DeriveKeyPairs(
		ctx, [][]byte{keyOne, make([]byte, 32)},
		&netparams.MainNetParams,
	)
	require.ErrorContains(t, err, "key 1")
	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidKeyMaterial))
}

func TestScriptForAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		params  *netparams.Params
		want    string
		wantErr bool
	}{
		{
			name:   "p2pkh",
			addr:   "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
			params: &netparams.MainNetParams,
			want:   "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac",
		},
		{
			name:   "p2wpkh",
			addr:   "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
			params: &netparams.MainNetParams,
			want:   "0014751e76e8199196d454941c45d1b3a323f1433bd6",
		},
		{
			name:   "p2tr",
			addr:   "tb1pmfr3p9j00pfxjh0zmgp99y8zftmd3s5pmedqhyptwy6lm87hf5ssk79hv2",
			params: &netparams.TestNet3Params,
			want: "5120da4710964f7852695de2da025290e24af6d8c281de5a0b90" +
				"2b7135fd9fd74d21",
		},
		{
			name:    "wrong network",
			addr:    "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
			params:  &netparams.TestNet3Params,
			wantErr: true,
		},
		{
			name:    "legacy wrong network",
			addr:    "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
			params:  &netparams.TestNet3Params,
			wantErr: true,
		},
		{
			name:    "bad checksum",
			addr:    "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5",
			params:  &netparams.MainNetParams,
			wantErr: true,
		},
		{
			name:    "garbage",
			addr:    "not-an-address",
			params:  &netparams.MainNetParams,
			wantErr: true,
		},
		{
			name: "pubkey",
			addr: "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959" +
				"f2815b16f81798",
			params:  &netparams.MainNetParams,
			wantErr: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			script, err := ScriptForAddress(test.addr, test.params)
			if test.wantErr {
				require.True(t, coreerr.IsError(
					err, coreerr.ErrInvalidAddress,
				), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, hex.EncodeToString(script))
		})
	}
}
