package eapol

import (
	"github.com/go-rsna/rsna/internal/adapters/ie"
	"github.com/go-rsna/rsna/internal/core/domain"
)

// Key Data Elements are carried inside the (decrypted) Key Data field as
// VendorSpecific TLVs under the IEEE OUI, distinguished by a data-type
// byte (802.11 §9.4.2.52). Only the GTK KDE is needed by the Group Key
// Handshake this core drives.
var kdeOUI = [3]byte{0x00, 0x0f, 0xac}

const gtkKDEType = 1

// GTK is the decoded content of a GTK KDE: the key index (1-3), the Tx
// bit (set only for the pairwise-absent special case), and the group
// temporal key itself.
type GTK struct {
	KeyIndex uint8
	Tx       bool
	Key      []byte
}

// ExtractGTKKDE scans decrypted key-data for a GTK KDE and decodes it.
// Returns ErrNotFound if none is present (e.g. message 3/4 that carries
// only the peer's RSN IE).
func ExtractGTKKDE(keyData []byte) (*GTK, error) {
	it := ie.NewIterator(keyData)
	for it.Next() {
		if it.Tag() != ie.TagVendorSpecific {
			continue
		}
		v := it.Value()
		if len(v) < 6 || v[0] != kdeOUI[0] || v[1] != kdeOUI[1] || v[2] != kdeOUI[2] || v[3] != gtkKDEType {
			continue
		}
		body := v[4:]
		if len(body) < 2 {
			return nil, domain.ErrBadMessage
		}
		return &GTK{
			KeyIndex: body[0] & 0x03,
			Tx:       body[0]&0x04 != 0,
			Key:      body[2:],
		}, nil
	}
	return nil, domain.ErrNotFound
}

// BuildGTKKDE encodes g as a GTK KDE wrapped in a VendorSpecific element.
func BuildGTKKDE(g *GTK) []byte {
	b := ie.NewBuilder()
	_ = b.Next(ie.TagVendorSpecific)
	_ = b.SetLength(6 + len(g.Key))
	data := b.Data()
	data[0], data[1], data[2], data[3] = kdeOUI[0], kdeOUI[1], kdeOUI[2], gtkKDEType
	flags := g.KeyIndex & 0x03
	if g.Tx {
		flags |= 0x04
	}
	data[4] = flags
	data[5] = 0
	copy(data[6:], g.Key)
	return b.Finalize()
}
