// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coreerr defines the error kinds shared by the transaction and key
// engines.  Every failure surfaced by this module carries exactly one
// ErrorCode so boundary callers can branch on the kind of failure without
// matching on message text.
package coreerr

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrMalformedHex indicates that text handed to the hex decoder was of
	// odd length or contained a character that is not a hex digit.
	ErrMalformedHex ErrorCode = iota

	// ErrInvalidKeyMaterial indicates that a private key was not exactly
	// 32 bytes, was zero, was not below the secp256k1 group order, or does
	// not control the output being spent.
	ErrInvalidKeyMaterial

	// ErrInvalidOutpoint indicates that a previous transaction id or
	// output index could not be parsed into an outpoint.
	ErrInvalidOutpoint

	// ErrInvalidScript indicates that a locking script failed to decode.
	ErrInvalidScript

	// ErrInvalidAddress indicates that a destination address failed to
	// decode, uses an unsupported encoding, or belongs to another network.
	ErrInvalidAddress

	// ErrMalformedTransaction indicates that a serialized transaction was
	// truncated, had invalid length prefixes, or carried trailing bytes.
	ErrMalformedTransaction

	// ErrIndexOutOfRange indicates that an input index is not within the
	// transaction's input count.
	ErrIndexOutOfRange

	// ErrUnsupportedInputType indicates that signing was requested for a
	// previous output script class that is not implemented.
	ErrUnsupportedInputType

	// ErrMissingInputs indicates that a transaction was requested without
	// any inputs.
	ErrMissingInputs

	// ErrInvalidAmount indicates that an amount was negative, exceeded the
	// maximum money supply, or that a declared fee is not covered by the
	// inputs.
	ErrInvalidAmount

	// ErrSignatureVerification indicates that a freshly produced input
	// signature did not pass script verification.
	ErrSignatureVerification
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMalformedHex:          "ErrMalformedHex",
	ErrInvalidKeyMaterial:    "ErrInvalidKeyMaterial",
	ErrInvalidOutpoint:       "ErrInvalidOutpoint",
	ErrInvalidScript:         "ErrInvalidScript",
	ErrInvalidAddress:        "ErrInvalidAddress",
	ErrMalformedTransaction:  "ErrMalformedTransaction",
	ErrIndexOutOfRange:       "ErrIndexOutOfRange",
	ErrUnsupportedInputType:  "ErrUnsupportedInputType",
	ErrMissingInputs:         "ErrMissingInputs",
	ErrInvalidAmount:         "ErrInvalidAmount",
	ErrSignatureVerification: "ErrSignatureVerification",
}

// Map of ErrorCode values to the kind names used at the JSON boundary.
var errorKindStrings = map[ErrorCode]string{
	ErrMalformedHex:          "MalformedHex",
	ErrInvalidKeyMaterial:    "InvalidKeyMaterial",
	ErrInvalidOutpoint:       "InvalidOutpoint",
	ErrInvalidScript:         "InvalidScript",
	ErrInvalidAddress:        "InvalidAddress",
	ErrMalformedTransaction:  "MalformedTransaction",
	ErrIndexOutOfRange:       "IndexOutOfRange",
	ErrUnsupportedInputType:  "UnsupportedInputType",
	ErrMissingInputs:         "MissingInputs",
	ErrInvalidAmount:         "InvalidAmount",
	ErrSignatureVerification: "SignatureVerification",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Kind returns the short kind name of the code, e.g. "MalformedHex".
func (e ErrorCode) Kind() string {
	if s := errorKindStrings[e]; s != "" {
		return s
	}
	return "Unknown"
}

// Error provides a single type for errors that can happen while decoding,
// building, or signing.  It is similar to waddrmgr.ManagerError.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// New creates an Error given a set of arguments.
func New(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// Code returns the ErrorCode of the first Error found in err's chain.
func Code(err error) (ErrorCode, bool) {
	var e Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.ErrorCode, true
}

// IsError returns whether err is, or wraps, an Error with the given code.
func IsError(err error, code ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}
