// Package crypto derives the keying material consumed by the handshake
// state machine: the 802.11 pseudo-random function, passphrase-to-PMK
// conversion, and PTK derivation. The test suite pins the implementation
// to the IEEE 802.11-2016 Annex J test vectors.
package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
)

// PRF is the SHA-1-based pseudo-random function (802.11-2016 §12.7.1.2),
// used by every AKM that does not select the SHA-256 variant. It produces
// bits rounded up to the next byte, counting HMAC-SHA1(key, A || 0x00 ||
// B || counter) blocks from counter=0.
func PRF(key []byte, prefix string, data []byte, bits int) []byte {
	need := (bits + 7) / 8
	out := make([]byte, 0, need+sha1.Size)
	var counter byte
	for len(out) < need {
		h := hmac.New(sha1.New, key)
		h.Write([]byte(prefix))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{counter})
		out = h.Sum(out)
		counter++
	}
	return out[:need]
}

// PRFSHA256 is the SHA-256-based KDF (802.11-2016 §12.7.1.7.2,
// "KDF-Hash-Length"), selected instead of PRF when the negotiated AKM is
// one of the SHA-256 suites (domain.AKM.SHA256). It iterates
// HMAC-SHA256(key, i || label || context || length) with a 16-bit
// big-endian counter starting at 1 and a trailing 16-bit bit-length
// field, per the construction's NIST SP 800-108-style definition.
func PRFSHA256(key []byte, label string, context []byte, bits int) []byte {
	need := (bits + 7) / 8
	out := make([]byte, 0, need+sha256.Size)

	var lengthField [2]byte
	binary.BigEndian.PutUint16(lengthField[:], uint16(bits))

	for i := uint16(1); len(out) < need; i++ {
		var counter [2]byte
		binary.BigEndian.PutUint16(counter[:], i)

		h := hmac.New(sha256.New, key)
		h.Write(counter[:])
		h.Write([]byte(label))
		h.Write(context)
		h.Write(lengthField[:])
		out = h.Sum(out)
	}
	return out[:need]
}

// Min returns whichever of a, b sorts first as an unsigned big-endian
// integer of possibly differing byte length; Max returns the other. Used
// to order (SPA, AA) and (ANonce, SNonce) before concatenation in PTK
// derivation, independent of which endpoint happens to hold the
// numerically larger value.
func Min(a, b []byte) []byte {
	if compareBytes(a, b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a, b under the same ordering as Min.
func Max(a, b []byte) []byte {
	if compareBytes(a, b) > 0 {
		return a
	}
	return b
}

func compareBytes(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
