// Package keywrap implements the AES Key Wrap algorithm (RFC 3394), used
// to protect the EAPoL-Key Data field under descriptor versions 2 and 3.
package keywrap

import (
	"crypto/aes"
	"encoding/binary"
	"errors"
)

var defaultIV = [8]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

var (
	ErrKeyLength  = errors.New("keywrap: KEK must be 128, 192, or 256 bits")
	ErrDataLength = errors.New("keywrap: data must be a multiple of 64 bits and at least 128 bits")
	ErrIntegrity  = errors.New("keywrap: integrity check failed")
)

// Wrap encrypts data (a multiple of 8 bytes, at least 16) under kek,
// returning ciphertext 8 bytes longer than data.
func Wrap(kek, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, ErrKeyLength
	}
	if len(data) < 16 || len(data)%8 != 0 {
		return nil, ErrDataLength
	}

	n := len(data) / 8
	r := make([][8]byte, n)
	for i := 0; i < n; i++ {
		copy(r[i][:], data[i*8:i*8+8])
	}

	var a [8]byte
	copy(a[:], defaultIV[:])

	buf := make([]byte, 16)
	for j := 0; j <= 5; j++ {
		for i := 1; i <= n; i++ {
			copy(buf[0:8], a[:])
			copy(buf[8:16], r[i-1][:])
			block.Encrypt(buf, buf)

			t := uint64(n*j + i)
			var tb [8]byte
			binary.BigEndian.PutUint64(tb[:], t)
			for k := 0; k < 8; k++ {
				a[k] = buf[k] ^ tb[k]
			}
			copy(r[i-1][:], buf[8:16])
		}
	}

	out := make([]byte, 8+len(data))
	copy(out[0:8], a[:])
	for i := 0; i < n; i++ {
		copy(out[8+i*8:8+i*8+8], r[i][:])
	}
	return out, nil
}

// Unwrap decrypts ciphertext (produced by Wrap) under kek, returning
// plaintext 8 bytes shorter than ciphertext. Returns ErrIntegrity if the
// authentication check fails (wrong key, corrupted ciphertext).
func Unwrap(kek, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, ErrKeyLength
	}
	if len(ciphertext) < 24 || len(ciphertext)%8 != 0 {
		return nil, ErrDataLength
	}

	n := len(ciphertext)/8 - 1
	r := make([][8]byte, n)
	for i := 0; i < n; i++ {
		copy(r[i][:], ciphertext[8+i*8:8+i*8+8])
	}

	var a [8]byte
	copy(a[:], ciphertext[0:8])

	buf := make([]byte, 16)
	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			var tb [8]byte
			binary.BigEndian.PutUint64(tb[:], t)
			var axt [8]byte
			for k := 0; k < 8; k++ {
				axt[k] = a[k] ^ tb[k]
			}
			copy(buf[0:8], axt[:])
			copy(buf[8:16], r[i-1][:])
			block.Decrypt(buf, buf)

			copy(a[:], buf[0:8])
			copy(r[i-1][:], buf[8:16])
		}
	}

	for i, b := range defaultIV {
		if a[i] != b {
			return nil, ErrIntegrity
		}
	}

	out := make([]byte, n*8)
	for i := 0; i < n; i++ {
		copy(out[i*8:i*8+8], r[i][:])
	}
	return out, nil
}
