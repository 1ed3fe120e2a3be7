// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hexcodec moves raw bytes across text boundaries.  Encoding is always
// lowercase; decoding is case-insensitive and tolerates surrounding
// whitespace.
package hexcodec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bitlab/txengine/coreerr"
)

// Encode returns the lowercase hexadecimal encoding of b.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// Decode trims surrounding whitespace from s and decodes the remainder as
// hexadecimal.  An odd number of digits or any non-hex character results in
// an error with code coreerr.ErrMalformedHex.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s)%2 != 0 {
		str := fmt.Sprintf("hex string has odd length %d", len(s))
		return nil, coreerr.New(coreerr.ErrMalformedHex, str, nil)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		var invalid hex.InvalidByteError
		if errors.As(err, &invalid) {
			str := fmt.Sprintf("invalid hex character %q at "+
				"position %d", byte(invalid),
				strings.IndexByte(s, byte(invalid)))
			return nil, coreerr.New(coreerr.ErrMalformedHex, str, nil)
		}
		return nil, coreerr.New(coreerr.ErrMalformedHex,
			"malformed hex string", err)
	}

	return b, nil
}
