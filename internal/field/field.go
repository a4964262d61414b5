// Package field implements arithmetic over a fixed prime-order field Z_p,
// used throughout the interpolation protocol. Elements are carried as
// *saferith.Nat bound to the field's modulus for the additive/multiplicative
// operations, and as *math/big.Int at API boundaries (points, wire payloads,
// and the extended-GCD inverse).
package field

import (
	"math/big"

	"github.com/cronokirby/saferith"

	"github.com/luxfi/lagrange/internal/lagrangeerr"
)

// Field is an immutable prime modulus together with the arithmetic defined
// over it.
type Field struct {
	p   *big.Int
	mod *saferith.Modulus
}

// New constructs a Field over the given prime. p is not validated for
// primality; callers are expected to supply a prime (the sharing and
// inverse operations will behave incorrectly, not panic, if it is not).
func New(p *big.Int) *Field {
	pCopy := new(big.Int).Set(p)
	nat := new(saferith.Nat).SetBig(pCopy, pCopy.BitLen())
	return &Field{
		p:   pCopy,
		mod: saferith.ModulusFromNat(nat),
	}
}

// Prime returns a copy of the field's modulus.
func (f *Field) Prime() *big.Int {
	return new(big.Int).Set(f.p)
}

func (f *Field) nat(x *big.Int) *saferith.Nat {
	r := new(big.Int).Mod(x, f.p)
	return new(saferith.Nat).SetBig(r, f.p.BitLen())
}

// Add returns a+b mod p.
func (f *Field) Add(a, b *big.Int) *big.Int {
	sum := new(saferith.Nat).ModAdd(f.nat(a), f.nat(b), f.mod)
	return sum.Big()
}

// Sub returns a-b mod p.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	diff := new(saferith.Nat).ModSub(f.nat(a), f.nat(b), f.mod)
	return diff.Big()
}

// Mul returns a*b mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	prod := new(saferith.Nat).ModMul(f.nat(a), f.nat(b), f.mod)
	return prod.Big()
}

// Reduce returns a reduced to its non-negative representative mod p.
func (f *Field) Reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, f.p)
}

// Inverse computes a⁻¹ mod p via the extended Euclidean algorithm, failing
// with a *lagrangeerr.DomainError when a is congruent to 0 mod p (the only
// way gcd(a,p) != 1 for prime p).
func (f *Field) Inverse(a *big.Int) (*big.Int, error) {
	aR := new(big.Int).Mod(a, f.p)
	if aR.Sign() == 0 {
		return nil, &lagrangeerr.DomainError{Value: new(big.Int).Set(a), Modulus: f.Prime()}
	}
	gcd, x, _ := extendedGCD(aR, f.p)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, &lagrangeerr.DomainError{Value: new(big.Int).Set(a), Modulus: f.Prime()}
	}
	return new(big.Int).Mod(x, f.p), nil
}

// extendedGCD returns (g, x, y) such that a*x + b*y = g = gcd(a,b).
func extendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}
	q, r := new(big.Int), new(big.Int)
	q.DivMod(a, b, r)
	g1, x1, y1 := extendedGCD(b, r)
	x = y1
	y = new(big.Int).Sub(x1, new(big.Int).Mul(q, y1))
	return g1, x, y
}
