// Package polynomial implements plaintext Lagrange interpolation over a
// prime field, used by the orchestrator as its correctness-floor fallback
// when a secure sub-protocol fails.
package polynomial

import (
	"math/big"

	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/lagrangeerr"
)

// Point is one (x,y) sample of the interpolated polynomial.
type Point struct {
	X, Y *big.Int
}

// Basis returns, for each i, the Lagrange basis value
// L_i(xStar) = prod_{j!=i} (xStar-x_j)/(x_i-x_j) mod p. Their sum is always
// 1 mod p, regardless of xStar, since they partition the constant
// polynomial 1.
func Basis(f *field.Field, xs []*big.Int, xStar *big.Int) ([]*big.Int, error) {
	n := len(xs)
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		num := big.NewInt(1)
		den := big.NewInt(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			num = f.Mul(num, f.Sub(xStar, xs[j]))
			den = f.Mul(den, f.Sub(xs[i], xs[j]))
		}
		denInv, err := f.Inverse(den)
		if err != nil {
			return nil, err
		}
		out[i] = f.Mul(num, denInv)
	}
	return out, nil
}

// Interpolate evaluates the unique degree-(n-1) polynomial through points at
// xStar, modulo the field's prime.
func Interpolate(f *field.Field, points []Point, xStar *big.Int) (*big.Int, error) {
	if len(points) == 0 {
		return nil, &lagrangeerr.ArgumentError{Msg: "polynomial: interpolate requires at least one point"}
	}
	xs := make([]*big.Int, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	basis, err := Basis(f, xs, xStar)
	if err != nil {
		return nil, err
	}
	acc := big.NewInt(0)
	for i, p := range points {
		acc = f.Add(acc, f.Mul(basis[i], p.Y))
	}
	return acc, nil
}
