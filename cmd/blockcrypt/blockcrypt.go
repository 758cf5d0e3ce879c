// Command blockcrypt encrypts and decrypts data with AES-128 in ECB, CBC, or CTR mode.
//
// Keys, IVs, and nonces are given in hex. When encrypting without an explicit IV or nonce, a random one is generated
// and written before the ciphertext; when decrypting without one, it is read from the start of the input.
package main

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/cbc"
	"github.com/codahale/rijndael/ctr"
	"github.com/codahale/rijndael/ecb"
	"golang.org/x/sys/cpu"
)

func main() {
	var (
		mode     = flag.String("mode", "cbc", "the mode of operation: ecb, cbc, or ctr")
		keyHex   = flag.String("key", "", "the hex-encoded 16-byte key")
		ivHex    = flag.String("iv", "", "the hex-encoded 16-byte CBC IV (default: random, prepended to the output)")
		nonceHex = flag.String("nonce", "", "the hex-encoded 8-byte CTR nonce (default: random, prepended to the output)")
		decrypt  = flag.Bool("d", false, "decrypt instead of encrypt")
		inPath   = flag.String("in", "", "the input file (default: stdin)")
		outPath  = flag.String("out", "", "the output file (default: stdout)")
		selftest = flag.Bool("selftest", false, "check the cipher against crypto/aes and exit")
		verbose  = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())
	if *verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if *selftest {
		if err := selfTest(log, rand.Reader); err != nil {
			log.Error("self test failed", "err", err)
			os.Exit(1)
		}
		log.Info("self test passed")
		return
	}

	cfg, err := parseConfig(*mode, *keyHex, *ivHex, *nonceHex, *decrypt)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Error("error opening input", "err", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error("error creating output", "err", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	if err := run(cfg, in, out, rand.Reader, log); err != nil {
		log.Error("failed", "mode", cfg.mode, "err", err)
		os.Exit(1) //nolint:gocritic // deferred closes are best effort
	}
}

type config struct {
	mode    string
	key     []byte
	iv      []byte
	nonce   []byte
	decrypt bool
}

func parseConfig(mode, keyHex, ivHex, nonceHex string, decrypt bool) (*config, error) {
	cfg := &config{mode: mode, decrypt: decrypt} //nolint:exhaustruct // filled in below

	switch mode {
	case "ecb", "cbc", "ctr":
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	var err error
	if cfg.key, err = hex.DecodeString(keyHex); err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}
	if len(cfg.key) != rijndael.KeySize {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeyLength, len(cfg.key))
	}

	if ivHex != "" && mode != "cbc" {
		return nil, fmt.Errorf("%w: -iv given with -mode %s", errWrongMode, mode)
	}
	if nonceHex != "" && mode != "ctr" {
		return nil, fmt.Errorf("%w: -nonce given with -mode %s", errWrongMode, mode)
	}

	if cfg.iv, err = hex.DecodeString(ivHex); err != nil {
		return nil, fmt.Errorf("decoding IV: %w", err)
	}
	if len(cfg.iv) != 0 && len(cfg.iv) != cbc.IVSize {
		return nil, fmt.Errorf("%w: IV is %d bytes, want %d", rijndael.ErrInvalidIVLength, len(cfg.iv), cbc.IVSize)
	}

	if cfg.nonce, err = hex.DecodeString(nonceHex); err != nil {
		return nil, fmt.Errorf("decoding nonce: %w", err)
	}
	if len(cfg.nonce) != 0 && len(cfg.nonce) != ctr.NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", rijndael.ErrInvalidIVLength, len(cfg.nonce),
			ctr.NonceSize)
	}
	return cfg, nil
}

var errWrongMode = errors.New("flag does not apply to this mode")

// run encrypts or decrypts in to out. ECB and CBC read the whole input before writing; CTR streams.
func run(cfg *config, in io.Reader, out io.Writer, rand io.Reader, log *slog.Logger) error {
	if cfg.mode == "ctr" {
		return runCTR(cfg, in, out, rand, log)
	}

	input, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	log.Debug("read input", "mode", cfg.mode, "bytes", len(input))

	var output []byte
	switch {
	case cfg.mode == "ecb" && !cfg.decrypt:
		output, err = ecb.Encrypt(input, cfg.key)
	case cfg.mode == "ecb":
		output, err = ecb.Decrypt(input, cfg.key)
	case !cfg.decrypt:
		iv := cfg.iv
		if len(iv) == 0 {
			if iv, err = cbc.GenerateIV(rand); err != nil {
				return err
			}
			if _, err := out.Write(iv); err != nil {
				return err
			}
			log.Debug("generated IV", "iv", hex.EncodeToString(iv))
		}
		output, err = cbc.Encrypt(input, cfg.key, iv)
	default:
		iv := cfg.iv
		if len(iv) == 0 {
			if len(input) < cbc.IVSize {
				return fmt.Errorf("%w: input too short to hold an IV", rijndael.ErrInvalidIVLength)
			}
			iv, input = input[:cbc.IVSize], input[cbc.IVSize:]
		}
		output, err = cbc.Decrypt(input, cfg.key, iv)
	}
	if err != nil {
		return err
	}

	if _, err := out.Write(output); err != nil {
		return err
	}
	log.Info("done", "mode", cfg.mode, "bytes", len(output))
	return nil
}

func runCTR(cfg *config, in io.Reader, out io.Writer, rand io.Reader, log *slog.Logger) error {
	nonce := cfg.nonce
	if len(nonce) == 0 {
		var err error
		if cfg.decrypt {
			nonce = make([]byte, ctr.NonceSize)
			if _, err := io.ReadFull(in, nonce); err != nil {
				return fmt.Errorf("%w: reading nonce: %w", rijndael.ErrInvalidIVLength, err)
			}
		} else {
			if nonce, err = ctr.GenerateNonce(rand); err != nil {
				return err
			}
			if _, err := out.Write(nonce); err != nil {
				return err
			}
			log.Debug("generated nonce", "nonce", hex.EncodeToString(nonce))
		}
	}

	s, err := ctr.NewStream(cfg.key, nonce)
	if err != nil {
		return err
	}

	n, err := io.Copy(out, cipher.StreamReader{S: s, R: in})
	if err != nil {
		return err
	}
	log.Info("done", "mode", cfg.mode, "bytes", n)
	return nil
}

// selfTest checks the cipher and each mode against crypto/aes and crypto/cipher.
func selfTest(log *slog.Logger, rand io.Reader) error {
	log.Info("reference cipher", "aes_instructions", cpu.X86.HasAES || cpu.ARM64.HasAES)

	// FIPS 197 appendix C.1
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	want, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	c, err := rijndael.NewCipher(key)
	if err != nil {
		return err
	}
	got := make([]byte, rijndael.BlockSize)
	c.Encrypt(got, pt)
	if !bytes.Equal(got, want) {
		return fmt.Errorf("known answer: got %x, want %x", got, want)
	}
	log.Debug("known answer ok")

	key, err = rijndael.GenerateKey(rand)
	if err != nil {
		return err
	}
	ref, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	msg := make([]byte, 4096)
	if _, err := io.ReadFull(rand, msg); err != nil {
		return err
	}

	checks := []struct {
		name string
		f    func() error
	}{
		{"ecb", func() error { return checkECB(ref, key, msg) }},
		{"cbc", func() error { return checkCBC(ref, key, msg) }},
		{"ctr", func() error { return checkCTR(ref, key, msg) }},
	}
	for _, check := range checks {
		if err := check.f(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
		log.Debug("mode ok", "mode", check.name, "bytes", len(msg))
	}
	return nil
}

var errMismatch = errors.New("output differs from crypto/aes")

func checkECB(ref cipher.Block, key, msg []byte) error {
	got, err := ecb.Encrypt(msg, key)
	if err != nil {
		return err
	}

	// The message is block-aligned, so the final block is all padding.
	for i := 0; i < len(msg); i += rijndael.BlockSize {
		want := make([]byte, rijndael.BlockSize)
		ref.Encrypt(want, msg[i:])
		if !bytes.Equal(got[i:i+rijndael.BlockSize], want) {
			return errMismatch
		}
	}
	return roundTrip(msg, func() ([]byte, error) { return ecb.Decrypt(got, key) })
}

func checkCBC(ref cipher.Block, key, msg []byte) error {
	iv := make([]byte, cbc.IVSize)
	got, err := cbc.Encrypt(msg, key, iv)
	if err != nil {
		return err
	}

	want := make([]byte, len(msg))
	cipher.NewCBCEncrypter(ref, iv).CryptBlocks(want, msg)
	if !bytes.Equal(got[:len(msg)], want) {
		return errMismatch
	}
	return roundTrip(msg, func() ([]byte, error) { return cbc.Decrypt(got, key, iv) })
}

func checkCTR(ref cipher.Block, key, msg []byte) error {
	nonce := make([]byte, ctr.NonceSize)
	got, err := ctr.Encrypt(msg, key, nonce)
	if err != nil {
		return err
	}

	// crypto/cipher increments its counter big endian, so compare one block at a time.
	want := make([]byte, rijndael.BlockSize)
	counter := make([]byte, rijndael.BlockSize)
	for i := 0; i < len(msg); i += rijndael.BlockSize {
		counter[ctr.NonceSize] = byte(i / rijndael.BlockSize)
		counter[ctr.NonceSize+1] = byte(i / rijndael.BlockSize >> 8)
		ref.Encrypt(want, counter)
		for j := range want {
			want[j] ^= msg[i+j]
		}
		if !bytes.Equal(got[i:i+rijndael.BlockSize], want) {
			return errMismatch
		}
	}
	return roundTrip(msg, func() ([]byte, error) { return ctr.Decrypt(got, key, nonce) })
}

func roundTrip(msg []byte, decrypt func() ([]byte, error)) error {
	pt, err := decrypt()
	if err != nil {
		return err
	}
	if !bytes.Equal(pt, msg) {
		return errors.New("round trip failed")
	}
	return nil
}
