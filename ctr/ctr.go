// Package ctr implements AES-128 in counter mode.
//
// The keystream is the encryption of successive counter blocks. Each counter block is the 8-byte nonce followed by a
// 64-bit little endian block counter which starts at zero:
//
//	counter block i = nonce[0:8] || LE64(i)
//
// Keystream byte o therefore lives at position o%16 of counter block o/16. Counter blocks do not depend on the
// plaintext, so any range of the keystream can be generated directly, and large ranges are generated in parallel.
//
// CTR is a stream cipher: ciphertexts are exactly as long as their plaintexts, no padding is used, and encryption and
// decryption are the same operation. Reusing a key and nonce for two messages reveals the XOR of their plaintexts.
package ctr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/internal/mem"
	"github.com/codahale/rijndael/internal/parallel"
)

// NonceSize is the size of a CTR nonce in bytes.
const NonceSize = 8

// ErrInvalidOffset is returned when a keystream offset is negative or lies beyond the data it addresses.
var ErrInvalidOffset = errors.New("ctr: invalid offset")

// Encrypt encrypts the plaintext with the given key and nonce. It returns rijndael.ErrInvalidKeyLength if the key is
// not rijndael.KeySize bytes long and rijndael.ErrInvalidIVLength if the nonce is not NonceSize bytes long.
func Encrypt(plaintext, key, nonce []byte) ([]byte, error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(plaintext))
	xorKeyStream(c, nonce, out, plaintext, 0)
	return out, nil
}

// Decrypt decrypts the ciphertext with the given key and nonce. It is identical to Encrypt.
func Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	return Encrypt(ciphertext, key, nonce)
}

// Keystream returns n bytes of the keystream for the given key and nonce, starting at byte offset. It returns
// ErrInvalidOffset if offset or n is negative.
func Keystream(key, nonce []byte, offset, n int) ([]byte, error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	if offset < 0 || n < 0 {
		return nil, fmt.Errorf("%w: offset=%d n=%d", ErrInvalidOffset, offset, n)
	}

	ks := make([]byte, n)
	xorKeyStream(c, nonce, ks, ks, uint64(offset))
	return ks, nil
}

// Edit returns a copy of the ciphertext with the bytes starting at offset replaced by the encryption of newText under
// the same key and nonce. The result is longer than the ciphertext if newText runs past its end. The ciphertext
// itself is not modified.
//
// Edit returns ErrInvalidOffset if offset is negative or greater than the length of the ciphertext.
func Edit(ciphertext, key, nonce []byte, offset int, newText []byte) ([]byte, error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > len(ciphertext) {
		return nil, fmt.Errorf("%w: offset %d outside [0, %d]", ErrInvalidOffset, offset, len(ciphertext))
	}

	out, _ := mem.Extend(ciphertext, max(0, offset+len(newText)-len(ciphertext)))
	xorKeyStream(c, nonce, out[offset:offset+len(newText)], newText, uint64(offset))
	return out, nil
}

// GenerateNonce reads a new NonceSize-byte nonce from rand.
func GenerateNonce(rand io.Reader) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

func newCipher(key, nonce []byte) (*rijndael.Cipher, error) {
	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", rijndael.ErrInvalidIVLength, len(nonce), NonceSize)
	}
	return c, nil
}

// counterBlock encrypts the counter block for block index i into ks.
func counterBlock(c *rijndael.Cipher, nonce []byte, i uint64, ks *[rijndael.BlockSize]byte) {
	var ctr [rijndael.BlockSize]byte
	copy(ctr[:NonceSize], nonce)
	binary.LittleEndian.PutUint64(ctr[NonceSize:], i)
	c.Encrypt(ks[:], ctr[:])
}

// xorKeyStream XORs src with the keystream starting at byte offset and writes the result to dst. Dst and src must
// overlap entirely or not at all.
func xorKeyStream(c *rijndael.Cipher, nonce, dst, src []byte, offset uint64) {
	const bs = rijndael.BlockSize
	first := offset / bs
	skip := int(offset % bs)
	n := (skip + len(src) + bs - 1) / bs

	parallel.Blocks(n, func(lo, hi int) {
		var ks [bs]byte
		for j := lo; j < hi; j++ {
			counterBlock(c, nonce, first+uint64(j), &ks) //nolint:gosec // j >= 0
			start := max(j*bs-skip, 0)
			end := min((j+1)*bs-skip, len(src))
			mem.XOR(dst[start:end], src[start:end], ks[start+skip-j*bs:])
		}
	})
}
