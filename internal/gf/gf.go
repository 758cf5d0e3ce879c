// Package gf implements arithmetic in GF(2^8) modulo the AES polynomial x^8 + x^4 + x^3 + x + 1.
package gf

// Mul returns the product of a and b in GF(2^8).
func Mul(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b // x^8 = x^4 + x^3 + x + 1
		}
		b >>= 1
	}
	return p
}

// Inverse returns the multiplicative inverse of a in GF(2^8), computed as a^254. The inverse of 0 is defined as 0.
func Inverse(a byte) byte {
	// x^254 using addition chain
	x2 := Mul(a, a)
	x4 := Mul(x2, x2)
	x8 := Mul(x4, x4)
	x16 := Mul(x8, x8)
	x32 := Mul(x16, x16)
	x64 := Mul(x32, x32)
	x128 := Mul(x64, x64)

	res := x2
	res = Mul(res, x4)
	res = Mul(res, x8)
	res = Mul(res, x16)
	res = Mul(res, x32)
	res = Mul(res, x64)
	res = Mul(res, x128)
	return res
}
