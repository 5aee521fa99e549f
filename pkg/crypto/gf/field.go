// Package gf provides arithmetic over the fixed prime field used by the
// secret sharing engine. All values are canonical residues in [0, P).
package gf

import (
	"errors"
	"fmt"
	"math/big"
)

// P is the field modulus, the 256-bit prime 2^256 - 2^224 + 2^192 + 2^128 - 1.
var P, _ = new(big.Int).SetString(
	"ffffffff000000010000000000000000ffffffffffffffffffffffffffffffff", 16)

// ErrNoInverse is returned when a modular inverse does not exist. With a
// prime modulus this only happens for zero residues, which means the caller
// fed in corrupted share data (duplicate x-coordinates). It is never retried.
var ErrNoInverse = errors.New("modular inverse does not exist")

// Add returns (a + b) mod P.
func Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, P)
}

// Sub returns (a - b) mod P, normalized into [0, P).
func Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, P)
}

// Mul returns (a * b) mod P.
func Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, P)
}

// Inverse computes x such that a*x = 1 (mod P) using the extended Euclidean
// algorithm.
func Inverse(a *big.Int) (*big.Int, error) {
	a = new(big.Int).Mod(a, P)
	if a.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero element", ErrNoInverse)
	}

	// Iterative extended Euclid on (a, P), tracking only the Bezout
	// coefficient of a.
	r0, r1 := new(big.Int).Set(a), new(big.Int).Set(P)
	x0, x1 := big.NewInt(1), big.NewInt(0)

	for r1.Sign() != 0 {
		q := new(big.Int).Div(r0, r1)
		r0, r1 = r1, new(big.Int).Sub(r0, new(big.Int).Mul(q, r1))
		x0, x1 = x1, new(big.Int).Sub(x0, new(big.Int).Mul(q, x1))
	}

	if r0.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: gcd(a, P) = %s", ErrNoInverse, r0)
	}

	return x0.Mod(x0, P), nil
}
