package rijndael

import (
	"fmt"

	"github.com/codahale/rijndael/internal/gf"
)

// A KeySchedule is the expansion of an AES-128 key into 44 words, grouped into 11 round keys of 4 words each.
type KeySchedule [4 * (Rounds + 1)]Word

// ExpandKey expands a KeySize-byte key into its key schedule. It returns ErrInvalidKeyLength if the key is not
// KeySize bytes long.
func ExpandKey(key []byte) (*KeySchedule, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeyLength, len(key))
	}

	var ks KeySchedule
	for i := range 4 {
		ks[i] = Word(key[4*i : 4*i+4])
	}

	rc := byte(1)
	for i := 4; i < len(ks); i++ {
		if i%4 == 0 {
			ks[i] = ks[i-4].Xor(ks[i-1].RotateLeft().Sub()).Xor(Word{rc, 0, 0, 0})
			rc = gf.Mul(rc, 2)
		} else {
			ks[i] = ks[i-4].Xor(ks[i-1])
		}
	}
	return &ks, nil
}

// RoundKey returns the four words of the round key for round r, which must be between 0 and Rounds, inclusive.
func (ks *KeySchedule) RoundKey(r int) [4]Word {
	if r < 0 || r > Rounds {
		panic(fmt.Sprintf("rijndael: invalid round %d", r))
	}
	return [4]Word(ks[4*r : 4*r+4])
}
