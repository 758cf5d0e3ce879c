// Package padding implements PKCS#7 padding.
//
// Pad always appends between 1 and blockSize bytes, each equal to the number of bytes appended, so input which is
// already block-aligned gains a full block of padding. Strip validates every padding byte, not just the last one: the
// difference between valid and invalid padding is observable by callers and is reported as ErrInvalidPadding.
package padding

import (
	"errors"
	"fmt"

	"github.com/codahale/rijndael/internal/mem"
)

// ErrInvalidPadding is returned when padded data does not end in valid PKCS#7 padding.
var ErrInvalidPadding = errors.New("padding: invalid padding")

// Pad returns a copy of data with PKCS#7 padding for the given block size appended. The result never shares storage
// with data.
//
// Pad panics if blockSize is not between 1 and 255, inclusive.
func Pad(data []byte, blockSize int) []byte {
	checkBlockSize(blockSize)

	n := blockSize - len(data)%blockSize
	ret, tail := mem.Extend(data, n)
	for i := range tail {
		tail[i] = byte(n)
	}
	return ret
}

// Strip returns data with its PKCS#7 padding removed. The returned slice aliases data.
//
// Strip returns ErrInvalidPadding unless the last byte n is between 1 and blockSize and the last n bytes of data all
// equal n.
//
// Strip panics if blockSize is not between 1 and 255, inclusive.
func Strip(data []byte, blockSize int) ([]byte, error) {
	checkBlockSize(blockSize)

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPadding)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad length byte %#02x", ErrInvalidPadding, n)
	}

	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, fmt.Errorf("%w: inconsistent padding bytes", ErrInvalidPadding)
		}
	}

	return data[:len(data)-n], nil
}

func checkBlockSize(blockSize int) {
	if blockSize < 1 || blockSize > 255 {
		panic(fmt.Sprintf("padding: invalid block size %d", blockSize))
	}
}
