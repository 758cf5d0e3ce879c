// Package rijndael provides a from-scratch, pure Go implementation of the AES-128 block cipher.
//
// The package implements the cipher itself: GF(2^8) arithmetic, the S-box, the key schedule, and the ten-round
// substitution-permutation network over a 4x4 byte state. Modes of operation live in the [ecb], [cbc], and [ctr]
// packages, and PKCS#7 padding in the [padding] package.
//
// This is a teaching-grade implementation. Its table lookups are not constant time and it is not hardened against
// side-channel attacks. Use crypto/aes for anything else.
//
// [ecb]: https://pkg.go.dev/github.com/codahale/rijndael/ecb
// [cbc]: https://pkg.go.dev/github.com/codahale/rijndael/cbc
// [ctr]: https://pkg.go.dev/github.com/codahale/rijndael/ctr
// [padding]: https://pkg.go.dev/github.com/codahale/rijndael/padding
package rijndael

import (
	"errors"
	"io"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// KeySize is the AES-128 key size in bytes.
	KeySize = 16

	// Rounds is the number of AES-128 rounds.
	Rounds = 10
)

var (
	// ErrInvalidKeyLength is returned when a key is not exactly KeySize bytes long.
	ErrInvalidKeyLength = errors.New("rijndael: invalid key length")

	// ErrInvalidIVLength is returned when an initialization vector or nonce has the wrong length for its mode.
	ErrInvalidIVLength = errors.New("rijndael: invalid IV or nonce length")
)

// GenerateKey reads a new KeySize-byte key from rand.
func GenerateKey(rand io.Reader) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand, key); err != nil {
		return nil, err
	}
	return key, nil
}
