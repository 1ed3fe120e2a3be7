// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zero_test

import (
	"bytes"
	"testing"

	"github.com/bitlab/txengine/internal/zero"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 31, 32, 33, 64, 65, 513} {
		b := bytes.Repeat([]byte{0xa5}, n)
		zero.Bytes(b)
		require.Equal(t, make([]byte, n), b, "n=%d", n)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{1}, 32)
	other := []byte{0xff, 0xfe}
	zero.All([][]byte{key, nil, other})

	require.Equal(t, make([]byte, 32), key)
	require.Equal(t, []byte{0, 0}, other)
}
