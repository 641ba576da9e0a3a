package ie

import (
	"github.com/go-rsna/rsna/internal/core/domain"
)

// WPAOUIType is the WPA-IE vendor type (1) under the Microsoft OUI.
const WPAOUIType = 1

var microsoftOUI = [3]byte{0x00, 0x50, 0xf2}

// defaultWPA returns the WPA-IE defaults (TKIP/TKIP/PSK), distinct from
// the RSNE defaults.
func defaultWPA() domain.RSNInfo {
	return domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherTKIP,
		PairwiseCiphers: []domain.Cipher{domain.CipherTKIP},
		AKMs:            []domain.AKM{domain.AKMPSK},
	}
}

// ParseWPA decodes a VendorSpecific element carrying the WPA-IE: tag 221,
// Microsoft OUI, type 1, followed by the same field layout as an RSNE.
// Rejects a negotiation of CCMP group cipher with TKIP pairwise (802.11i
// §7.3.2.25.1).
func ParseWPA(b []byte) (*domain.RSNInfo, error) {
	if len(b) < 2 || b[0] != TagVendorSpecific {
		return nil, domain.ErrProto
	}
	n := int(b[1])
	if 2+n > len(b) {
		return nil, domain.ErrMsgSize
	}
	v := b[2 : 2+n]
	if len(v) < 4 || v[0] != microsoftOUI[0] || v[1] != microsoftOUI[1] ||
		v[2] != microsoftOUI[2] || v[3] != WPAOUIType {
		return nil, domain.ErrProto
	}

	info, err := parseRSNBody(v[4:], microsoftOUI, defaultWPA())
	if err != nil {
		return nil, err
	}
	if info.GroupCipher == domain.CipherCCMP {
		for _, c := range info.PairwiseCiphers {
			if c == domain.CipherTKIP {
				return nil, domain.ErrRange
			}
		}
	}
	return info, nil
}

// BuildWPA encodes info as a full WPA-IE: VendorSpecific wrapper,
// Microsoft OUI, type 1, version 1.
func BuildWPA(info *domain.RSNInfo) ([]byte, error) {
	if info.GroupCipher == domain.CipherCCMP {
		for _, c := range info.PairwiseCiphers {
			if c == domain.CipherTKIP {
				return nil, domain.ErrRange
			}
		}
	}

	inner, err := buildRSNInner(info, microsoftOUI)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	if err := b.Next(TagVendorSpecific); err != nil {
		return nil, err
	}
	if err := b.SetLength(4 + len(inner)); err != nil {
		return nil, err
	}
	data := b.Data()
	data[0], data[1], data[2], data[3] = microsoftOUI[0], microsoftOUI[1], microsoftOUI[2], WPAOUIType
	copy(data[4:], inner)
	return b.Finalize(), nil
}
