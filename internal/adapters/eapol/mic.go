package eapol

import (
	"crypto/aes"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/subtle"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// ComputeMIC computes the MIC over frame (a full marshaled 802.1X frame,
// header included) with the MIC field zeroed. frame is not mutated.
// version selects the algorithm:
//
//	1: HMAC-MD5(KCK, frame), all 16 bytes.
//	2: HMAC-SHA1(KCK, frame), leading 16 bytes.
//	3: AES-128-CMAC(KCK, frame), 16 bytes.
func ComputeMIC(version uint8, kck, frame []byte) ([16]byte, error) {
	var out [16]byte
	zeroed := zeroMICRegion(frame)

	switch version {
	case 1:
		h := hmac.New(md5.New, kck)
		h.Write(zeroed)
		copy(out[:], h.Sum(nil))
	case 2:
		h := hmac.New(sha1.New, kck)
		h.Write(zeroed)
		copy(out[:], h.Sum(nil)[:16])
	case 3:
		tag, err := aesCMAC(kck, zeroed)
		if err != nil {
			return out, err
		}
		out = tag
	default:
		return out, domain.ErrRange
	}
	return out, nil
}

// VerifyMIC recomputes the MIC under the same rule as ComputeMIC and
// compares it against the MIC carried in frame, in constant time.
func VerifyMIC(version uint8, kck, frame []byte) (bool, error) {
	got, err := ComputeMIC(version, kck, frame)
	if err != nil {
		return false, err
	}
	want := frame[eapolHeaderLen+micOffset : eapolHeaderLen+micOffset+micLen]
	return subtle.ConstantTimeCompare(got[:], want) == 1, nil
}

// zeroMICRegion returns a copy of frame with its 16-byte MIC field
// zeroed, leaving the caller's buffer untouched.
func zeroMICRegion(frame []byte) []byte {
	out := make([]byte, len(frame))
	copy(out, frame)
	start := eapolHeaderLen + micOffset
	for i := 0; i < micLen && start+i < len(out); i++ {
		out[start+i] = 0
	}
	return out
}

// aesCMAC implements AES-128-CMAC (NIST SP 800-38B) on crypto/aes block
// primitives.
func aesCMAC(key, msg []byte) ([16]byte, error) {
	var zero [16]byte
	block, err := aes.NewCipher(key)
	if err != nil {
		return zero, domain.ErrRange
	}

	var l [16]byte
	block.Encrypt(l[:], zero[:])

	k1 := gfDouble(l)
	k2 := gfDouble(k1)

	n := (len(msg) + 15) / 16
	var lastBlock [16]byte
	var complete bool
	if n == 0 {
		n = 1
		complete = false
	} else {
		complete = len(msg)%16 == 0
	}

	if complete {
		copy(lastBlock[:], msg[(n-1)*16:])
		xorInto(&lastBlock, k1)
	} else {
		rem := msg[(n-1)*16:]
		copy(lastBlock[:], rem)
		lastBlock[len(rem)] = 0x80
		xorInto(&lastBlock, k2)
	}

	var x [16]byte
	for i := 0; i < n-1; i++ {
		var y [16]byte
		copy(y[:], msg[i*16:(i+1)*16])
		xorInto(&y, x)
		block.Encrypt(x[:], y[:])
	}
	var y [16]byte
	copy(y[:], lastBlock[:])
	xorInto(&y, x)
	var tag [16]byte
	block.Encrypt(tag[:], y[:])
	return tag, nil
}

func xorInto(dst *[16]byte, src [16]byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// gfDouble performs the left-shift-by-1-with-conditional-xor-0x87
// operation over GF(2^128) used to derive the CMAC subkeys.
func gfDouble(in [16]byte) [16]byte {
	var out [16]byte
	var carry byte
	for i := 15; i >= 0; i-- {
		v := in[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if in[0]&0x80 != 0 {
		out[15] ^= 0x87
	}
	return out
}
