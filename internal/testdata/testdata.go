// Package testdata provides deterministic test inputs and known-answer vectors.
package testdata

import (
	"crypto/sha3"
	_ "embed"
	"encoding/hex"
	"fmt"
	"testing"

	"gopkg.in/yaml.v3"
)

// A DRBG is a deterministic random bit generator for producing reproducible test inputs. It is not suitable for
// generating keys.
type DRBG struct {
	shake *sha3.SHAKE
}

// New returns a DRBG seeded with the given label.
func New(label string) *DRBG {
	shake := sha3.NewSHAKE128()
	_, _ = shake.Write([]byte(label))
	return &DRBG{shake: shake}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.shake.Read(b)
	return b
}

// Read fills p with the next len(p) bytes of output. It never returns an error.
func (d *DRBG) Read(p []byte) (int, error) {
	return d.shake.Read(p)
}

// Hex is a byte string which is hex encoded in YAML.
type Hex []byte

// UnmarshalYAML decodes a hex scalar. The raw scalar text is used so that strings like 1e237e44 are not read as
// numbers.
func (h *Hex) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("testdata: line %d: expected a hex scalar", value.Line)
	}

	b, err := hex.DecodeString(value.Value)
	if err != nil {
		return fmt.Errorf("testdata: line %d: %w", value.Line, err)
	}
	*h = b
	return nil
}

// KeyScheduleVector is an expanded AES-128 key.
type KeyScheduleVector struct {
	Name  string `yaml:"name"`
	Key   Hex    `yaml:"key"`
	Words []Hex  `yaml:"words"`
}

// BlockVector is a single-block AES-128 encryption.
type BlockVector struct {
	Name       string `yaml:"name"`
	Key        Hex    `yaml:"key"`
	Plaintext  Hex    `yaml:"plaintext"`
	Ciphertext Hex    `yaml:"ciphertext"`
}

// ModeVector is a message encrypted under one of the ecb, cbc, or ctr modes.
type ModeVector struct {
	Name       string `yaml:"name"`
	Mode       string `yaml:"mode"`
	Key        Hex    `yaml:"key"`
	IV         Hex    `yaml:"iv"`
	Nonce      Hex    `yaml:"nonce"`
	Plaintext  Hex    `yaml:"plaintext"`
	Ciphertext Hex    `yaml:"ciphertext"`
}

// KeystreamVector is a range of CTR keystream.
type KeystreamVector struct {
	Name      string `yaml:"name"`
	Key       Hex    `yaml:"key"`
	Nonce     Hex    `yaml:"nonce"`
	Offset    int    `yaml:"offset"`
	Keystream Hex    `yaml:"keystream"`
}

// Vectors is the full set of known-answer vectors.
type Vectors struct {
	KeySchedules []KeyScheduleVector `yaml:"key_schedules"`
	Blocks       []BlockVector       `yaml:"blocks"`
	Modes        []ModeVector        `yaml:"modes"`
	Keystreams   []KeystreamVector   `yaml:"keystreams"`
}

// Load decodes the embedded vectors, failing the test if they are malformed.
func Load(tb testing.TB) *Vectors {
	tb.Helper()

	var v Vectors
	if err := yaml.Unmarshal(vectorsYAML, &v); err != nil {
		tb.Fatalf("decoding vectors: %v", err)
	}
	return &v
}

// ModeVectors returns the vectors for the given mode.
func (v *Vectors) ModeVectors(mode string) []ModeVector {
	var out []ModeVector
	for _, mv := range v.Modes {
		if mv.Mode == mode {
			out = append(out, mv)
		}
	}
	return out
}

//go:embed vectors.yaml
var vectorsYAML []byte
