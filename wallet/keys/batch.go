// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bitlab/txengine/netparams"
	"golang.org/x/sync/errgroup"
)

// DeriveKeyPairs derives a KeyPair for every key in privKeys concurrently.
// Results are returned in input order.  The first failure cancels the
// remaining work and is returned annotated with the failing key's position.
func DeriveKeyPairs(ctx context.Context, privKeys [][]byte,
	params *netparams.Params) ([]*KeyPair, error) {

	pairs := make([]*KeyPair, len(privKeys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, privKey := range privKeys {
		i, privKey := i, privKey
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pair, err := DeriveKeyPair(privKey, params)
			if err != nil {
				return fmt.Errorf("key %d: %w", i, err)
			}
			pairs[i] = pair

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debugf("Derived %d key %s", len(pairs),
		pickNoun(len(pairs), "pair", "pairs"))

	return pairs, nil
}

// pickNoun returns the singular or plural form of a noun depending
// on the count n.
func pickNoun(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
