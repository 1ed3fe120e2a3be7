// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coreerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bitlab/txengine/coreerr"
	"github.com/stretchr/testify/require"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   coreerr.ErrorCode
		want string
		kind string
	}{
		{coreerr.ErrMalformedHex, "ErrMalformedHex", "MalformedHex"},
		{coreerr.ErrInvalidKeyMaterial, "ErrInvalidKeyMaterial", "InvalidKeyMaterial"},
		{coreerr.ErrInvalidOutpoint, "ErrInvalidOutpoint", "InvalidOutpoint"},
		{coreerr.ErrInvalidScript, "ErrInvalidScript", "InvalidScript"},
		{coreerr.ErrInvalidAddress, "ErrInvalidAddress", "InvalidAddress"},
		{coreerr.ErrMalformedTransaction, "ErrMalformedTransaction", "MalformedTransaction"},
		{coreerr.ErrIndexOutOfRange, "ErrIndexOutOfRange", "IndexOutOfRange"},
		{coreerr.ErrUnsupportedInputType, "ErrUnsupportedInputType", "UnsupportedInputType"},
		{coreerr.ErrMissingInputs, "ErrMissingInputs", "MissingInputs"},
		{coreerr.ErrInvalidAmount, "ErrInvalidAmount", "InvalidAmount"},
		{coreerr.ErrSignatureVerification, "ErrSignatureVerification", "SignatureVerification"},
		{0xffff, "Unknown ErrorCode (65535)", "Unknown"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, test.in.String())
		require.Equal(t, test.kind, test.in.Kind())
	}
}

// TestError tests the error output and unwrapping for the Error type.
func TestError(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	tests := []struct {
		in   coreerr.Error
		want string
	}{
		{
			coreerr.New(coreerr.ErrInvalidScript, "bad script", nil),
			"bad script",
		},
		{
			coreerr.New(coreerr.ErrInvalidScript, "bad script", base),
			"bad script: boom",
		},
	}

	for _, test := range tests {
		require.Equal(t, test.want, test.in.Error())
	}

	err := coreerr.New(coreerr.ErrInvalidOutpoint, "outpoint", base)
	require.ErrorIs(t, err, base)
}

// TestIsError checks that error codes are found through wrapping.
func TestIsError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("input 3: %w",
		coreerr.New(coreerr.ErrInvalidOutpoint, "bad txid", nil))

	require.True(t, coreerr.IsError(err, coreerr.ErrInvalidOutpoint))
	require.False(t, coreerr.IsError(err, coreerr.ErrInvalidScript))
	require.False(t, coreerr.IsError(errors.New("plain"),
		coreerr.ErrInvalidScript))

	code, ok := coreerr.Code(err)
	require.True(t, ok)
	require.Equal(t, coreerr.ErrInvalidOutpoint, code)

	_, ok = coreerr.Code(nil)
	require.False(t, ok)
}
