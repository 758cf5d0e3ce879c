package rijndael

import "crypto/cipher"

// A Cipher is an AES-128 block cipher instance for a single key. It implements cipher.Block.
//
// Cipher instances hold no mutable state and may be shared between goroutines.
type Cipher struct {
	ks KeySchedule
}

// NewCipher expands the given key and returns a Cipher for it. It returns ErrInvalidKeyLength if the key is not
// KeySize bytes long.
func NewCipher(key []byte) (*Cipher, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{ks: *ks}, nil
}

// BlockSize returns the cipher's block size, which is always BlockSize.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block in src into dst. Dst and src must overlap entirely or not at all.
//
// Encrypt panics if either slice is shorter than a block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	s := newState(src)
	s.addRoundKey(c.ks.RoundKey(0))
	for r := 1; r <= Rounds; r++ {
		s.subBytes()
		s.shiftRows()
		if r != Rounds {
			s.mixColumns()
		}
		s.addRoundKey(c.ks.RoundKey(r))
	}
	s.bytes(dst)
}

// Decrypt decrypts the first block in src into dst. Dst and src must overlap entirely or not at all.
//
// Decrypt panics if either slice is shorter than a block.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	s := newState(src)
	s.addRoundKey(c.ks.RoundKey(Rounds))
	for r := Rounds - 1; r >= 0; r-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(c.ks.RoundKey(r))
		if r != 0 {
			s.invMixColumns()
		}
	}
	s.bytes(dst)
}

var _ cipher.Block = (*Cipher)(nil)
