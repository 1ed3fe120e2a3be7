// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/netparams"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// AddressType identifies one of the address encodings derived from a key.
type AddressType uint8

const (
	// Legacy is a base58check pay-to-pubkey-hash address.
	Legacy AddressType = iota

	// Segwit is a bech32 witness version 0 pay-to-witness-pubkey-hash
	// address.
	Segwit

	// Taproot is a bech32m witness version 1 key-path-only taproot
	// address.
	Taproot
)

// String returns the address type name.
func (t AddressType) String() string {
	switch t {
	case Legacy:
		return "legacy"
	case Segwit:
		return "segwit"
	case Taproot:
		return "taproot"
	default:
		return fmt.Sprintf("unknown address type %d", t)
	}
}

// Addresses holds the three address encodings controlled by a single key.
type Addresses struct {
	Legacy  string
	Segwit  string
	Taproot string
}

// ForType returns the address of the given type.
func (a *Addresses) ForType(t AddressType) (string, error) {
	switch t {
	case Legacy:
		return a.Legacy, nil
	case Segwit:
		return a.Segwit, nil
	case Taproot:
		return a.Taproot, nil
	default:
		return "", fmt.Errorf("unknown address type %d", t)
	}
}

// KeyPair is a private key together with everything derived from it.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte

	// WIF is the compressed wallet import format encoding of the private
	// key for the network the pair was derived for.
	WIF string

	Addresses Addresses
}

// DeriveAddresses derives the legacy, segwit, and taproot addresses of the
// compressed public key for privKey on the given network.
func DeriveAddresses(privKey []byte, params *netparams.Params) (*Addresses, error) {
	key, err := ParsePrivateKey(privKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	return addressesForPubKey(key.PubKey(), params)
}

// DeriveKeyPair derives the public key, WIF, and addresses for privKey.
func DeriveKeyPair(privKey []byte, params *netparams.Params) (*KeyPair, error) {
	key, err := ParsePrivateKey(privKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	pubKey := key.PubKey()
	addrs, err := addressesForPubKey(pubKey, params)
	if err != nil {
		return nil, err
	}

	wif, err := btcutil.NewWIF(key, params.Params, true)
	if err != nil {
		return nil, err
	}

	privCopy := make([]byte, PrivKeyBytesLen)
	copy(privCopy, privKey)

	return &KeyPair{
		PrivateKey: privCopy,
		PublicKey:  pubKey.SerializeCompressed(),
		WIF:        wif.String(),
		Addresses:  *addrs,
	}, nil
}

// addressesForPubKey encodes the three address types for pubKey.
func addressesForPubKey(pubKey *btcec.PublicKey,
	params *netparams.Params) (*Addresses, error) {

	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())

	legacy, err := btcutil.NewAddressPubKeyHash(pubKeyHash, params.Params)
	if err != nil {
		return nil, err
	}

	segwit, err := btcutil.NewAddressWitnessPubKeyHash(
		pubKeyHash, params.Params,
	)
	if err != nil {
		return nil, err
	}

	// Key-path only outputs commit to an empty script tree as described
	// in BIP-86.
	outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
	taproot, err := btcutil.NewAddressTaproot(
		schnorr.SerializePubKey(outputKey), params.Params,
	)
	if err != nil {
		return nil, err
	}

	log.Debugf("Derived %s addresses for public key %x", params.Name,
		pubKey.SerializeCompressed())

	return &Addresses{
		Legacy:  legacy.EncodeAddress(),
		Segwit:  segwit.EncodeAddress(),
		Taproot: taproot.EncodeAddress(),
	}, nil
}

// DecodeAddress decodes addr and checks that it belongs to the network
// described by params.  Pay-to-pubkey strings are not accepted as destinations.
func DecodeAddress(addr string, params *netparams.Params) (btcutil.Address, error) {
	decoded, err := btcutil.DecodeAddress(addr, params.Params)
	if err != nil {
		str := fmt.Sprintf("unable to decode address %q", addr)
		return nil, coreerr.New(coreerr.ErrInvalidAddress, str, err)
	}

	if !decoded.IsForNet(params.Params) {
		str := fmt.Sprintf("address %q is not for network %s", addr,
			params.Name)
		return nil, coreerr.New(coreerr.ErrInvalidAddress, str, nil)
	}

	switch decoded.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash,
		*btcutil.AddressWitnessPubKeyHash,
		*btcutil.AddressWitnessScriptHash, *btcutil.AddressTaproot:

	default:
		str := fmt.Sprintf("unsupported address type %T for %q",
			decoded, addr)
		return nil, coreerr.New(coreerr.ErrInvalidAddress, str, nil)
	}

	return decoded, nil
}

// ScriptForAddress returns the locking script paying to addr.
func ScriptForAddress(addr string, params *netparams.Params) ([]byte, error) {
	decoded, err := DecodeAddress(addr, params)
	if err != nil {
		return nil, err
	}

	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		str := fmt.Sprintf("unable to create script for %q", addr)
		return nil, coreerr.New(coreerr.ErrInvalidAddress, str, err)
	}

	return script, nil
}
