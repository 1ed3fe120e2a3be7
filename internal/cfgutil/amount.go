// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/pkg/btcunit"
	"github.com/btcsuite/btcd/btcutil"
)

// AmountFlag embeds a btcutil.Amount and implements the flags.Marshaler and
// Unmarshaler interfaces so it can be used as a config struct field.
//
// Values are bitcoin by default, optionally suffixed with " BTC", and are
// rounded to the nearest satoshi.  A "sat" suffix gives an exact integer
// number of satoshis instead.
type AmountFlag struct {
	btcutil.Amount
}

// NewAmountFlag creates an AmountFlag with a default btcutil.Amount.
func NewAmountFlag(defaultValue btcutil.Amount) *AmountFlag {
	return &AmountFlag{defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (a *AmountFlag) MarshalFlag() (string, error) {
	return a.Amount.String(), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (a *AmountFlag) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)

	if sats, ok := trimUnit(value, "sat"); ok {
		n, err := strconv.ParseInt(sats, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid satoshi amount %q: %w", value,
				err)
		}
		amount := btcutil.Amount(n)
		if err := btcunit.CheckAmount(amount); err != nil {
			return err
		}
		a.Amount = amount
		return nil
	}

	value, _ = trimUnit(value, "BTC")
	valueF64, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid bitcoin amount %q: %w", value, err)
	}
	amount, err := btcutil.NewAmount(valueF64)
	if err != nil {
		str := fmt.Sprintf("invalid bitcoin amount %q", value)
		return coreerr.New(coreerr.ErrInvalidAmount, str, err)
	}
	if err := btcunit.CheckAmount(amount); err != nil {
		return err
	}
	a.Amount = amount
	return nil
}

// trimUnit removes a trailing unit, with or without a separating space.
func trimUnit(value, unit string) (string, bool) {
	if !strings.HasSuffix(value, unit) {
		return value, false
	}
	return strings.TrimSpace(strings.TrimSuffix(value, unit)), true
}
