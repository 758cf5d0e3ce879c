// Package cbc implements AES-128 in cipher block chaining mode with PKCS#7 padding.
//
// Encryption is inherently sequential: each plaintext block is XORed with the previous ciphertext block (or the IV)
// before it is encrypted. Decryption only depends on ciphertext that is already available, so large inputs are
// decrypted in parallel.
//
// CBC ciphertexts are malleable. Flipping a bit in ciphertext block i scrambles plaintext block i and flips the same
// bit in plaintext block i+1. Decrypt reports invalid padding as an error, which makes it a padding oracle if that
// error is exposed to an attacker.
package cbc

import (
	"fmt"
	"io"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/internal/mem"
	"github.com/codahale/rijndael/internal/parallel"
	"github.com/codahale/rijndael/padding"
)

// IVSize is the size of a CBC initialization vector in bytes.
const IVSize = rijndael.BlockSize

// Encrypt pads the plaintext and encrypts it with the given key and IV. It returns rijndael.ErrInvalidKeyLength if the
// key is not rijndael.KeySize bytes long and rijndael.ErrInvalidIVLength if the IV is not IVSize bytes long.
func Encrypt(plaintext, key, iv []byte) ([]byte, error) {
	c, err := newCipher(key, iv)
	if err != nil {
		return nil, err
	}

	const bs = rijndael.BlockSize
	buf := padding.Pad(plaintext, bs)
	prev := iv
	for i := 0; i < len(buf); i += bs {
		block := buf[i : i+bs]
		mem.XOR(block, block, prev)
		c.Encrypt(block, block)
		prev = block
	}
	return buf, nil
}

// Decrypt decrypts the ciphertext with the given key and IV and removes its padding. It returns
// rijndael.ErrInvalidKeyLength if the key is not rijndael.KeySize bytes long, rijndael.ErrInvalidIVLength if the IV is
// not IVSize bytes long, and an error wrapping padding.ErrInvalidPadding if the ciphertext is not a positive multiple
// of the block size or does not decrypt to validly padded plaintext.
func Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	c, err := newCipher(key, iv)
	if err != nil {
		return nil, err
	}

	const bs = rijndael.BlockSize
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			padding.ErrInvalidPadding, len(ciphertext), bs)
	}

	plaintext := make([]byte, len(ciphertext))
	parallel.Blocks(len(ciphertext)/bs, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			prev := iv
			if i > 0 {
				prev = ciphertext[(i-1)*bs : i*bs]
			}
			block := plaintext[i*bs : (i+1)*bs]
			c.Decrypt(block, ciphertext[i*bs:(i+1)*bs])
			mem.XOR(block, block, prev)
		}
	})
	return padding.Strip(plaintext, bs)
}

// GenerateIV reads a new IVSize-byte initialization vector from rand.
func GenerateIV(rand io.Reader) ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func newCipher(key, iv []byte) (*rijndael.Cipher, error) {
	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: IV is %d bytes, want %d", rijndael.ErrInvalidIVLength, len(iv), IVSize)
	}
	return c, nil
}
