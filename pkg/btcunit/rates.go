// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcunit

import (
	"math"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	// SatsPerKilo is the number of satoshis in a kilo-satoshi.
	SatsPerKilo = 1000

	// floatStringPrecision is the number of decimal places to use when
	// converting a fee rate to a string.
	floatStringPrecision = 2
)

// SatPerVByte represents a fee rate in sat/vbyte. The fee rate is encoded
// as a big.Rat to allow for fractional (sub-satoshi) fee rates.
type SatPerVByte struct {
	*big.Rat
}

// NewSatPerVByte creates a new fee rate in sat/vb from an absolute fee paid
// by a transaction of the given virtual size.  A zero size yields a zero rate.
func NewSatPerVByte(fee btcutil.Amount, vb VByte) SatPerVByte {
	if vb == 0 {
		return SatPerVByte{big.NewRat(0, 1)}
	}

	return SatPerVByte{big.NewRat(int64(fee), capInt64(uint64(vb)))}
}

// FeeForVSize calculates the fee resulting from this fee rate and the given
// vsize, rounded to the nearest satoshi.
func (s SatPerVByte) FeeForVSize(vb VByte) btcutil.Amount {
	fee := new(big.Rat).Mul(s.Rat, big.NewRat(capInt64(uint64(vb)), 1))
	return roundToAmount(fee)
}

// FeePerKVByte converts the fee rate to sat/kvb, the unit relay policy is
// expressed in, rounded to the nearest satoshi.
func (s SatPerVByte) FeePerKVByte() btcutil.Amount {
	kvb := new(big.Rat).Mul(s.Rat, big.NewRat(SatsPerKilo, 1))
	return roundToAmount(kvb)
}

// String returns a human-readable string of the fee rate.
func (s SatPerVByte) String() string {
	return s.FloatString(floatStringPrecision) + " sat/vb"
}

// Equal returns true if the fee rate is equal to the other fee rate.
func (s SatPerVByte) Equal(other SatPerVByte) bool {
	return s.Cmp(other.Rat) == 0
}

// LessThan returns true if the fee rate is less than the other fee rate.
func (s SatPerVByte) LessThan(other SatPerVByte) bool {
	return s.Cmp(other.Rat) < 0
}

// roundToAmount rounds a big.Rat to the nearest btcutil.Amount (int64),
// with halves rounded away from zero.
func roundToAmount(r *big.Rat) btcutil.Amount {
	f, _ := r.Float64()
	return btcutil.Amount(math.Round(f))
}

// capInt64 converts a uint64 to an int64, capping at math.MaxInt64.  The
// values converted are transaction sizes, which consensus bounds far below
// the cap.
func capInt64(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}
