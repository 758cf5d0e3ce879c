package rijndael

import "github.com/codahale/rijndael/internal/gf"

// state is the 4x4 byte matrix of a single block. Each Word is a column, so byte i of the block is state[i/4][i%4]
// and row r of the matrix is state[0][r], state[1][r], state[2][r], state[3][r].
type state [4]Word

func newState(block []byte) state {
	_ = block[BlockSize-1] // early bounds check
	return state{Word(block[0:4]), Word(block[4:8]), Word(block[8:12]), Word(block[12:16])}
}

func (s *state) bytes(dst []byte) {
	_ = dst[BlockSize-1] // early bounds check
	for c := range 4 {
		copy(dst[4*c:], s[c][:])
	}
}

func (s *state) addRoundKey(rk [4]Word) {
	for c := range 4 {
		s[c] = s[c].Xor(rk[c])
	}
}

func (s *state) subBytes() {
	for c := range 4 {
		s[c] = s[c].Sub()
	}
}

func (s *state) invSubBytes() {
	for c := range 4 {
		s[c] = s[c].InvSub()
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	old := *s
	for c := range 4 {
		for r := 1; r < 4; r++ {
			s[c][r] = old[(c+r)%4][r]
		}
	}
}

// invShiftRows rotates row r right by r positions.
func (s *state) invShiftRows() {
	old := *s
	for c := range 4 {
		for r := 1; r < 4; r++ {
			s[(c+r)%4][r] = old[c][r]
		}
	}
}

func (s *state) mixColumns() {
	for c := range 4 {
		s[c] = mixColumn(s[c], &forwardMatrix)
	}
}

func (s *state) invMixColumns() {
	for c := range 4 {
		s[c] = mixColumn(s[c], &inverseMatrix)
	}
}

func mixColumn(col Word, m *[4][4]byte) Word {
	var out Word
	for r := range 4 {
		out[r] = gf.Mul(m[r][0], col[0]) ^ gf.Mul(m[r][1], col[1]) ^ gf.Mul(m[r][2], col[2]) ^ gf.Mul(m[r][3], col[3])
	}
	return out
}

//nolint:gochecknoglobals // constant matrices
var (
	forwardMatrix = [4][4]byte{
		{2, 3, 1, 1},
		{1, 2, 3, 1},
		{1, 1, 2, 3},
		{3, 1, 1, 2},
	}
	inverseMatrix = [4][4]byte{
		{14, 11, 13, 9},
		{9, 14, 11, 13},
		{13, 9, 14, 11},
		{11, 13, 9, 14},
	}
)
