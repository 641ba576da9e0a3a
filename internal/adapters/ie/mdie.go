package ie

import (
	"encoding/binary"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// TagMobilityDomain is the Mobility Domain element tag (802.11 §9.4.2.36).
// Parsing it lets RSNE negotiation observe FT capability bits advertised
// alongside an RSNE; driving the FT protocol itself is a separate concern.
const TagMobilityDomain = 54

// MobilityDomain is the decoded content of the Mobility Domain element:
// MDID plus the FT capability/policy bits (802.11 §9.4.2.36).
type MobilityDomain struct {
	MDID                 uint16
	FastBSSOverDS        bool
	ResourceRequestCapable bool
}

// ParseMDIE decodes a full Mobility Domain element (tag, length, value);
// the fixed-size value is always 3 bytes: MDID (2, LE) and one capability
// byte.
func ParseMDIE(b []byte) (*MobilityDomain, error) {
	if len(b) < 2 || b[0] != TagMobilityDomain {
		return nil, domain.ErrProto
	}
	n := int(b[1])
	if 2+n > len(b) {
		return nil, domain.ErrMsgSize
	}
	v := b[2 : 2+n]
	if len(v) != 3 {
		return nil, domain.ErrBadMessage
	}
	return &MobilityDomain{
		MDID:                   binary.LittleEndian.Uint16(v[0:2]),
		FastBSSOverDS:          v[2]&0x01 != 0,
		ResourceRequestCapable: v[2]&0x02 != 0,
	}, nil
}

// BuildMDIE encodes m as a full Mobility Domain element.
func BuildMDIE(m *MobilityDomain) []byte {
	b := NewBuilder()
	_ = b.Next(TagMobilityDomain)
	_ = b.SetLength(3)
	data := b.Data()
	binary.LittleEndian.PutUint16(data[0:2], m.MDID)
	var caps uint8
	if m.FastBSSOverDS {
		caps |= 0x01
	}
	if m.ResourceRequestCapable {
		caps |= 0x02
	}
	data[2] = caps
	return b.Finalize()
}
