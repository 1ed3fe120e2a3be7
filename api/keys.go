// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"fmt"

	"github.com/bitlab/txengine/hexcodec"
	"github.com/bitlab/txengine/internal/zero"
	"github.com/bitlab/txengine/netparams"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/bitlab/txengine/wallet/keys"
)

// GeneratePrivateKey returns a new random private key as hex.
func GeneratePrivateKey() (string, error) {
	privKey, err := keys.GeneratePrivateKey()
	if err != nil {
		return "", err
	}
	defer zero.Bytes(privKey)

	return hexcodec.Encode(privKey), nil
}

// DeriveAddressesFromKey derives the public key, WIF, and the legacy,
// segwit, and taproot addresses for the hex encoded private key.
func DeriveAddressesFromKey(privKeyHex string,
	params *netparams.Params) (*KeyPair, error) {

	privKey, err := decodePrivateKey(privKeyHex)
	if err != nil {
		return nil, err
	}
	defer zero.Bytes(privKey)

	pair, err := keys.DeriveKeyPair(privKey, params)
	if err != nil {
		return nil, err
	}
	defer zero.Bytes(pair.PrivateKey)

	return keyPairRecord(pair), nil
}

// DeriveKeyPairs derives the key pairs of many hex encoded private keys
// concurrently.  Results are in input order.
func DeriveKeyPairs(ctx context.Context, privKeyHexes []string,
	params *netparams.Params) ([]*KeyPair, error) {

	privKeys := make([][]byte, 0, len(privKeyHexes))
	defer func() { zero.All(privKeys) }()

	for i, privKeyHex := range privKeyHexes {
		privKey, err := decodePrivateKey(privKeyHex)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		privKeys = append(privKeys, privKey)
	}

	pairs, err := keys.DeriveKeyPairs(ctx, privKeys, params)
	if err != nil {
		return nil, err
	}

	records := make([]*KeyPair, 0, len(pairs))
	for _, pair := range pairs {
		records = append(records, keyPairRecord(pair))
		zero.Bytes(pair.PrivateKey)
	}

	log.Debugf("Derived %d key pairs for %s", len(records), params.Name)

	return records, nil
}

func keyPairRecord(pair *keys.KeyPair) *KeyPair {
	return &KeyPair{
		PrivateKey: hexcodec.Encode(pair.PrivateKey),
		PublicKey:  hexcodec.Encode(pair.PublicKey),
		WIF:        pair.WIF,
		Addresses: AddressRecord{
			Legacy:  pair.Addresses.Legacy,
			Segwit:  pair.Addresses.Segwit,
			Taproot: pair.Addresses.Taproot,
		},
	}
}

// SatoshiToBTC converts satoshis to a floating point bitcoin value.  The
// result is for display only and may not be exact.
func SatoshiToBTC(sats int64) float64 {
	return btcunit.SatoshiToBTC(sats)
}

// BTCToSatoshi converts a floating point bitcoin value to satoshis,
// truncating any fractional satoshi left by the float multiplication.
func BTCToSatoshi(btc float64) (int64, error) {
	amt, err := btcunit.BTCToSatoshi(btc)
	if err != nil {
		return 0, err
	}
	return int64(amt), nil
}
