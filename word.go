package rijndael

import (
	"encoding/hex"
	"fmt"

	"github.com/codahale/rijndael/internal/sbox"
)

// A Word is a 4-byte column of key material or cipher state.
type Word [4]byte

// Xor returns the bytewise XOR of w and x.
func (w Word) Xor(x Word) Word {
	return Word{w[0] ^ x[0], w[1] ^ x[1], w[2] ^ x[2], w[3] ^ x[3]}
}

// RotateLeft returns w cyclically rotated left by one byte.
func (w Word) RotateLeft() Word {
	return Word{w[1], w[2], w[3], w[0]}
}

// Sub returns w with the S-box applied to each byte.
func (w Word) Sub() Word {
	return Word{sbox.Sub(w[0]), sbox.Sub(w[1]), sbox.Sub(w[2]), sbox.Sub(w[3])}
}

// InvSub returns w with the inverse S-box applied to each byte.
func (w Word) InvSub() Word {
	return Word{sbox.InvSub(w[0]), sbox.InvSub(w[1]), sbox.InvSub(w[2]), sbox.InvSub(w[3])}
}

func (w Word) String() string {
	return hex.EncodeToString(w[:])
}

var _ fmt.Stringer = Word{}
