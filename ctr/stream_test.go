package ctr_test

import (
	"bytes"
	"crypto/cipher"
	"errors"
	"io"
	"testing"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/ctr"
	"github.com/codahale/rijndael/internal/testdata"
)

func TestStream(t *testing.T) {
	drbg := testdata.New("ctr stream")
	key, nonce := drbg.Data(rijndael.KeySize), drbg.Data(ctr.NonceSize)
	plaintext := drbg.Data(1000)

	want, err := ctr.Encrypt(plaintext, key, nonce)
	if err != nil {
		t.Fatal(err)
	}

	s, err := ctr.NewStream(key, nonce)
	if err != nil {
		t.Fatal(err)
	}

	// Uneven chunks cross block boundaries at every alignment.
	got := make([]byte, len(plaintext))
	for i, n := 0, 1; i < len(plaintext); i, n = i+n, n%23+1 {
		end := min(i+n, len(plaintext))
		s.XORKeyStream(got[i:end], plaintext[i:end])
	}

	if !bytes.Equal(got, want) {
		t.Errorf("XORKeyStream = %x, want = %x", got, want)
	}
}

func TestStreamSeek(t *testing.T) {
	drbg := testdata.New("ctr stream seek")
	key, nonce := drbg.Data(rijndael.KeySize), drbg.Data(ctr.NonceSize)

	s, err := ctr.NewStream(key, nonce)
	if err != nil {
		t.Fatal(err)
	}

	for _, offset := range []int{0, 1, 15, 16, 17, 1000, 3, 3} {
		pos, err := s.Seek(int64(offset), io.SeekStart)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := pos, int64(offset); got != want {
			t.Errorf("Seek(%d) = %d, want = %d", offset, got, want)
		}

		got := make([]byte, 40)
		s.XORKeyStream(got, got)

		want, err := ctr.Keystream(key, nonce, offset, len(got))
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, want) {
			t.Errorf("keystream at %d = %x, want = %x", offset, got, want)
		}
	}

	pos, err := s.Seek(-20, io.SeekCurrent)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := pos, int64(3+40-20); got != want {
		t.Errorf("Seek(-20, SeekCurrent) = %d, want = %d", got, want)
	}
}

func TestStreamSeekErrors(t *testing.T) {
	s, err := ctr.NewStream(make([]byte, rijndael.KeySize), make([]byte, ctr.NonceSize))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Seek(-1, io.SeekStart); !errors.Is(err, ctr.ErrInvalidOffset) {
		t.Errorf("Seek(-1, SeekStart) = %v, want = ErrInvalidOffset", err)
	}

	if _, err := s.Seek(-1, io.SeekCurrent); !errors.Is(err, ctr.ErrInvalidOffset) {
		t.Errorf("Seek(-1, SeekCurrent) = %v, want = ErrInvalidOffset", err)
	}

	if _, err := s.Seek(0, io.SeekEnd); err == nil {
		t.Error("Seek(0, SeekEnd) returned no error")
	}
}

func TestStreamShortOutput(t *testing.T) {
	s, err := ctr.NewStream(make([]byte, rijndael.KeySize), make([]byte, ctr.NonceSize))
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("XORKeyStream did not panic")
		}
	}()
	s.XORKeyStream(make([]byte, 4), make([]byte, 5))
}

func TestStreamReader(t *testing.T) {
	drbg := testdata.New("ctr stream reader")
	key, nonce := drbg.Data(rijndael.KeySize), drbg.Data(ctr.NonceSize)
	plaintext := drbg.Data(333)

	s, err := ctr.NewStream(key, nonce)
	if err != nil {
		t.Fatal(err)
	}

	got, err := io.ReadAll(cipher.StreamReader{S: s, R: bytes.NewReader(plaintext)})
	if err != nil {
		t.Fatal(err)
	}

	want, err := ctr.Encrypt(plaintext, key, nonce)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("StreamReader = %x, want = %x", got, want)
	}
}

func BenchmarkStream(b *testing.B) {
	s, _ := ctr.NewStream(make([]byte, rijndael.KeySize), make([]byte, ctr.NonceSize))
	for _, length := range lengths {
		b.Run(length.name, func(b *testing.B) {
			buf := make([]byte, length.n)
			b.ReportAllocs()
			b.SetBytes(int64(len(buf)))
			for b.Loop() {
				s.XORKeyStream(buf, buf)
			}
		})
	}
}
