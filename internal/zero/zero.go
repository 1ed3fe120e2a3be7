// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zero clears private key material once it is no longer needed.
package zero

// Bytes sets all bytes in the passed slice to zero.
func Bytes(b []byte) {
	clear(b)
}

// All zeroes every buffer in bufs.  Nil buffers are skipped.
func All(bufs [][]byte) {
	for _, b := range bufs {
		Bytes(b)
	}
}
