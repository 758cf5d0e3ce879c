// Package mem contains byte slice helpers shared by the block cipher modes.
package mem

import "crypto/subtle"

// inlineMax is the longest dst that XOR combines in a plain loop: one cipher block.
const inlineMax = 16

// XOR writes a[i] ^ b[i] into dst[i] for every index of dst. Only the first len(dst) bytes of a and b are read, so
// keystream buffers longer than the data can be passed whole. Dst may alias a or b exactly.
func XOR(dst, a, b []byte) {
	n := len(dst)
	if n <= inlineMax {
		for i := range n {
			dst[i] = a[i] ^ b[i]
		}
		return
	}
	subtle.XORBytes(dst, a[:n], b[:n])
}

// Extend returns a new slice holding a copy of in followed by n zero bytes, along with a second slice aliasing only
// the additional bytes. The returned slice never shares storage with in.
func Extend(in []byte, n int) (head, tail []byte) {
	head = make([]byte, len(in)+n)
	copy(head, in)
	return head, head[len(in):]
}
