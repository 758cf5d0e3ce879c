// Package ecb implements AES-128 in electronic codebook mode with PKCS#7 padding.
//
// Each block is encrypted independently, so equal plaintext blocks produce equal ciphertext blocks. Blocks are
// processed in parallel for large inputs.
package ecb

import (
	"fmt"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/internal/parallel"
	"github.com/codahale/rijndael/padding"
)

// Encrypt pads the plaintext and encrypts it with the given key. It returns rijndael.ErrInvalidKeyLength if the key is
// not rijndael.KeySize bytes long.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}

	buf := padding.Pad(plaintext, rijndael.BlockSize)
	cryptBlocks(buf, c.Encrypt)
	return buf, nil
}

// Decrypt decrypts the ciphertext with the given key and removes its padding. It returns
// rijndael.ErrInvalidKeyLength if the key is not rijndael.KeySize bytes long, and an error wrapping
// padding.ErrInvalidPadding if the ciphertext is not a positive multiple of the block size or does not decrypt to
// validly padded plaintext.
func Decrypt(ciphertext, key []byte) ([]byte, error) {
	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%rijndael.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			padding.ErrInvalidPadding, len(ciphertext), rijndael.BlockSize)
	}

	buf := make([]byte, len(ciphertext))
	copy(buf, ciphertext)
	cryptBlocks(buf, c.Decrypt)
	return padding.Strip(buf, rijndael.BlockSize)
}

func cryptBlocks(buf []byte, f func(dst, src []byte)) {
	const bs = rijndael.BlockSize
	parallel.Blocks(len(buf)/bs, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			block := buf[i*bs : (i+1)*bs]
			f(block, block)
		}
	})
}
