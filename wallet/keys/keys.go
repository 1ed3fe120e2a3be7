// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keys generates secp256k1 private keys and derives the public key
// and the legacy, segwit, and taproot addresses that key controls.
//
// Keys are handled as raw 32-byte big-endian scalars at the package boundary.
// Nothing here retains key material between calls.
package keys

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/internal/zero"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivKeyBytesLen is the length of a serialized private key.
	PrivKeyBytesLen = 32

	// PubKeyBytesLenCompressed is the length of a compressed public key.
	PubKeyBytesLenCompressed = 33
)

// GeneratePrivateKey draws a new private key from the operating system's
// cryptographically secure random source.
func GeneratePrivateKey() ([]byte, error) {
	return GeneratePrivateKeyFromReader(rand.Reader)
}

// GeneratePrivateKeyFromReader reads exactly 32 bytes from r and returns them
// as a private key.  A draw that is zero or not below the group order is
// rejected with ErrInvalidKeyMaterial rather than reduced or redrawn, so a
// broken entropy source cannot go unnoticed.
func GeneratePrivateKeyFromReader(r io.Reader) ([]byte, error) {
	var buf [PrivKeyBytesLen]byte
	defer zero.Bytes(buf[:])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("unable to read key entropy: %w", err)
	}

	if _, err := ParsePrivateKey(buf[:]); err != nil {
		return nil, err
	}

	key := make([]byte, PrivKeyBytesLen)
	copy(key, buf[:])
	return key, nil
}

// ParsePrivateKey interprets b as a big-endian secp256k1 scalar.  The slice
// must be exactly 32 bytes and encode a value in [1, n-1].  Unlike
// btcec.PrivKeyFromBytes, out of range values are rejected instead of being
// silently reduced modulo the group order.
func ParsePrivateKey(b []byte) (*btcec.PrivateKey, error) {
	if len(b) != PrivKeyBytesLen {
		str := fmt.Sprintf("private key must be %d bytes, got %d",
			PrivKeyBytesLen, len(b))
		return nil, coreerr.New(coreerr.ErrInvalidKeyMaterial, str, nil)
	}

	var scalar secp256k1.ModNScalar
	defer scalar.Zero()

	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, coreerr.New(coreerr.ErrInvalidKeyMaterial,
			"private key is not below the secp256k1 group order", nil)
	}
	if scalar.IsZero() {
		return nil, coreerr.New(coreerr.ErrInvalidKeyMaterial,
			"private key is zero", nil)
	}

	return secp256k1.NewPrivateKey(&scalar), nil
}

// DerivePublicKey returns the 33-byte compressed public key for privKey.
func DerivePublicKey(privKey []byte) ([]byte, error) {
	key, err := ParsePrivateKey(privKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	return key.PubKey().SerializeCompressed(), nil
}
