// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcunit provides a set of types for dealing with bitcoin units:
// transaction sizes in weight units and virtual bytes, fee rates, and the
// conversion between satoshis and their decimal bitcoin display form.
package btcunit
