// Package sbox provides the AES byte substitution table and its inverse.
//
// Both tables are derived at initialization from the multiplicative inverse in GF(2^8) followed by the AES affine
// transform, rather than being embedded as literals.
package sbox

import (
	"math/bits"

	"github.com/codahale/rijndael/internal/gf"
)

// Sub returns the S-box substitution of b.
func Sub(b byte) byte {
	return forward[b]
}

// InvSub returns the inverse S-box substitution of b.
func InvSub(b byte) byte {
	return inverse[b]
}

//nolint:gochecknoglobals // computed once
var forward, inverse = generate()

func generate() (fwd, inv [256]byte) {
	for i := range 256 {
		x := gf.Inverse(byte(i))
		s := x ^ bits.RotateLeft8(x, 1) ^ bits.RotateLeft8(x, 2) ^ bits.RotateLeft8(x, 3) ^ bits.RotateLeft8(x, 4) ^ 0x63
		fwd[i] = s
		inv[s] = byte(i)
	}
	return fwd, inv
}
