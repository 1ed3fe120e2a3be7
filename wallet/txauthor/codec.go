// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/btcsuite/btcd/wire"
)

// SerializeTx returns the consensus encoding of tx.  The witness encoding of
// BIP-144 is used if and only if some input carries witness data.
func SerializeTx(tx *wire.MsgTx) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeTx decodes a transaction from its consensus encoding, in either
// the legacy or the witness form.  Truncated data, malformed length prefixes,
// and bytes left over after the lock time are rejected with
// ErrMalformedTransaction.
func DeserializeTx(serialized []byte) (*wire.MsgTx, error) {
	r := bytes.NewReader(serialized)

	tx := &wire.MsgTx{}
	if err := tx.Deserialize(r); err != nil {
		return nil, coreerr.New(coreerr.ErrMalformedTransaction,
			"unable to decode transaction", err)
	}

	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after transaction",
			r.Len())
		return nil, coreerr.New(coreerr.ErrMalformedTransaction, str, nil)
	}

	return tx, nil
}

// TxID returns the transaction id of tx in its byte-reversed display form.
// The id is the double SHA-256 of the encoding without witness data, so
// adding or replacing witnesses never changes it.
func TxID(tx *wire.MsgTx) string {
	return tx.TxHash().String()
}

// WitnessTxID returns the BIP-141 witness transaction id of tx in its
// byte-reversed display form.  It commits to witness data and equals TxID for
// a transaction without any.
func WitnessTxID(tx *wire.MsgTx) string {
	return tx.WitnessHash().String()
}
