package ctr

import (
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/internal/mem"
)

// A Stream is a seekable cipher.Stream over the CTR keystream for a single key and nonce. Wrap it in a
// cipher.StreamReader or cipher.StreamWriter to encrypt or decrypt data as it is read or written.
//
// Stream instances are not concurrent-safe.
type Stream struct {
	c     *rijndael.Cipher
	nonce [NonceSize]byte
	ks    [rijndael.BlockSize]byte
	block uint64 // the counter value ks was generated from
	valid bool
	pos   uint64
}

// NewStream returns a Stream positioned at the start of the keystream for the given key and nonce.
func NewStream(key, nonce []byte) (*Stream, error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	return &Stream{c: c, nonce: [NonceSize]byte(nonce)}, nil //nolint:exhaustruct // zero position
}

// XORKeyStream XORs each byte in src with a byte from the keystream and writes the result to dst, advancing the
// stream's position by len(src) bytes. Dst and src must overlap entirely or not at all.
//
// XORKeyStream panics if dst is shorter than src.
func (s *Stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("ctr: output smaller than input")
	}

	const bs = rijndael.BlockSize
	for len(src) > 0 {
		block, idx := s.pos/bs, int(s.pos%bs)
		if !s.valid || s.block != block {
			counterBlock(s.c, s.nonce[:], block, &s.ks)
			s.block, s.valid = block, true
		}

		n := min(len(src), bs-idx)
		mem.XOR(dst[:n], src[:n], s.ks[idx:])
		s.pos += uint64(n) //nolint:gosec // n > 0
		dst, src = dst[n:], src[n:]
	}
}

// Seek sets the keystream position for the next call to XORKeyStream. Whence must be io.SeekStart or
// io.SeekCurrent; a keystream has no end. It returns the new position, or ErrInvalidOffset if it would be negative.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.pos) + offset //nolint:gosec // positions beyond 2^63 are not reachable by Seek
	default:
		return 0, fmt.Errorf("ctr: unsupported whence %d", whence)
	}

	if abs < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOffset, abs)
	}
	s.pos = uint64(abs)
	return abs, nil
}

var (
	_ cipher.Stream = (*Stream)(nil)
	_ io.Seeker     = (*Stream)(nil)
)
