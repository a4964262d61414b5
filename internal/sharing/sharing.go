// Package sharing builds the multiplicative and additive masking vectors
// used by the committee sub-protocols to blind private values in transit.
package sharing

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/lagrangeerr"
)

const minShareSize = 2

// OneShare returns k field elements r_1..r_k, each uniform in [1,p-1],
// whose product is congruent to 1 mod p. The last element is derived as the
// modular inverse of the product of the first k-1, so it is never
// independently uniform, matching the source's construction.
func OneShare(f *field.Field, k int) ([]*big.Int, error) {
	if k < minShareSize {
		return nil, &lagrangeerr.ArgumentError{Msg: fmt.Sprintf("sharing: one-share size %d below minimum %d", k, minShareSize)}
	}
	shares := make([]*big.Int, k)
	product := big.NewInt(1)
	for i := 0; i < k-1; i++ {
		r, err := randNonZero(f.Prime())
		if err != nil {
			return nil, err
		}
		shares[i] = r
		product = f.Mul(product, r)
	}
	last, err := f.Inverse(product)
	if err != nil {
		// Unreachable for prime p: a product of nonzero elements is nonzero.
		return nil, err
	}
	shares[k-1] = last
	return shares, nil
}

// ZeroShare returns k field elements r_1..r_k, each uniform in [0,p-1],
// whose sum is congruent to 0 mod p.
func ZeroShare(f *field.Field, k int) ([]*big.Int, error) {
	if k < minShareSize {
		return nil, &lagrangeerr.ArgumentError{Msg: fmt.Sprintf("sharing: zero-share size %d below minimum %d", k, minShareSize)}
	}
	shares := make([]*big.Int, k)
	sum := big.NewInt(0)
	for i := 0; i < k-1; i++ {
		r, err := rand.Int(rand.Reader, f.Prime())
		if err != nil {
			return nil, err
		}
		shares[i] = r
		sum = f.Add(sum, r)
	}
	shares[k-1] = f.Sub(big.NewInt(0), sum)
	return shares, nil
}

func randNonZero(p *big.Int) (*big.Int, error) {
	for {
		r, err := rand.Int(rand.Reader, p)
		if err != nil {
			return nil, err
		}
		if r.Sign() != 0 {
			return r, nil
		}
	}
}
