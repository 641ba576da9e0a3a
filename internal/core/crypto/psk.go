package crypto

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// PSK derives a 256-bit PMK from an ASCII passphrase and SSID via
// PBKDF2-HMAC-SHA1 with 4096 iterations (IEEE 802.11-2016 Annex J.4.2).
// passphrase must be 8-63 ASCII printable (0x20-0x7E) characters.
func PSK(passphrase, ssid string) ([]byte, error) {
	if err := domain.ValidateSSID(ssid); err != nil {
		return nil, err
	}
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return nil, domain.ErrRange
	}
	for i := 0; i < len(passphrase); i++ {
		if passphrase[i] < 0x20 || passphrase[i] > 0x7e {
			return nil, domain.ErrRange
		}
	}
	return pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, 32, sha1.New), nil
}
