package eapol

import (
	"crypto/rc4"

	"github.com/go-rsna/rsna/internal/adapters/keywrap"
	"github.com/go-rsna/rsna/internal/core/domain"
)

// rc4DiscardBytes is the number of initial ARC4 keystream bytes discarded
// before use (802.11 §11.6.2, Key Descriptor Version 1).
const rc4DiscardBytes = 256

// DecryptKeyData decrypts the Key Data field under the algorithm selected
// by descriptor version:
//
//	1: ARC4 with key = EAPOL-Key-IV (16 bytes) || KEK, keystream offset 256.
//	2/3: AES Key Wrap (RFC 3394) with KEK; output is len(data)-8 bytes.
func DecryptKeyData(version uint8, kek, iv, data []byte) ([]byte, error) {
	switch version {
	case 1:
		return rc4Crypt(kek, iv, data)
	case 2, 3:
		return keywrap.Unwrap(kek, data)
	default:
		return nil, domain.ErrRange
	}
}

// EncryptKeyData is the inverse of DecryptKeyData, used when building
// message 1/4 authenticator-side content or message-3 GTK payloads.
func EncryptKeyData(version uint8, kek, iv, data []byte) ([]byte, error) {
	switch version {
	case 1:
		return rc4Crypt(kek, iv, data)
	case 2, 3:
		return keywrap.Wrap(kek, data)
	default:
		return nil, domain.ErrRange
	}
}

// rc4Crypt is its own inverse (ARC4 is a stream cipher), used for both
// directions under descriptor version 1.
func rc4Crypt(kek, iv, data []byte) ([]byte, error) {
	key := make([]byte, 0, len(iv)+len(kek))
	key = append(key, iv...)
	key = append(key, kek...)

	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, domain.ErrRange
	}
	discard := make([]byte, rc4DiscardBytes)
	c.XORKeyStream(discard, discard)

	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}
