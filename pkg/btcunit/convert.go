// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcunit

import (
	"fmt"
	"math"

	"github.com/bitlab/txengine/coreerr"
	"github.com/btcsuite/btcd/btcutil"
)

// SatoshiToBTC converts an amount of satoshis into its decimal bitcoin
// display value.  The result is a float64 and is only suitable for display;
// consensus amounts are always carried as btcutil.Amount.
func SatoshiToBTC(sats int64) float64 {
	return btcutil.Amount(sats).ToBTC()
}

// BTCToSatoshi converts a decimal bitcoin value into satoshis by multiplying
// by 1e8 and truncating toward zero, so the result carries the usual float64
// error: 0.29 converts to 28999999.  Use btcutil.NewAmount where rounding to
// the nearest satoshi is wanted.  NaN, infinities, negative values, and values
// above the total money supply are rejected with ErrInvalidAmount.
func BTCToSatoshi(btc float64) (btcutil.Amount, error) {
	if math.IsNaN(btc) || math.IsInf(btc, 0) {
		str := fmt.Sprintf("invalid bitcoin amount %v", btc)
		return 0, coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}

	sats := btc * btcutil.SatoshiPerBitcoin
	if sats < 0 || sats > float64(btcutil.MaxSatoshi) {
		str := fmt.Sprintf("bitcoin amount %v is out of range", btc)
		return 0, coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}

	return btcutil.Amount(sats), nil
}

// CheckAmount returns ErrInvalidAmount if amt is negative or above the total
// money supply.
func CheckAmount(amt btcutil.Amount) error {
	switch {
	case amt < 0:
		str := fmt.Sprintf("amount %d is negative", int64(amt))
		return coreerr.New(coreerr.ErrInvalidAmount, str, nil)

	case amt > btcutil.MaxSatoshi:
		str := fmt.Sprintf("amount %d exceeds the maximum of %d",
			int64(amt), int64(btcutil.MaxSatoshi))
		return coreerr.New(coreerr.ErrInvalidAmount, str, nil)
	}

	return nil
}
