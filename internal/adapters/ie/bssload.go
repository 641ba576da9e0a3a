package ie

import (
	"encoding/binary"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// TagBSSLoad is the BSS Load element tag (802.11 §9.4.2.27).
const TagBSSLoad = 11

// BSSLoad is the decoded content of the BSS Load element: station count,
// channel utilization (0-255 scaled), and available admission capacity.
type BSSLoad struct {
	StationCount           uint16
	ChannelUtilization     uint8
	AvailableAdmissionCapacity uint16
}

// ParseBSSLoad decodes a full BSS Load element (tag, length, value); the
// fixed-size value is always 5 bytes.
func ParseBSSLoad(b []byte) (*BSSLoad, error) {
	if len(b) < 2 || b[0] != TagBSSLoad {
		return nil, domain.ErrProto
	}
	n := int(b[1])
	if 2+n > len(b) {
		return nil, domain.ErrMsgSize
	}
	v := b[2 : 2+n]
	if len(v) != 5 {
		return nil, domain.ErrBadMessage
	}
	return &BSSLoad{
		StationCount:               binary.LittleEndian.Uint16(v[0:2]),
		ChannelUtilization:         v[2],
		AvailableAdmissionCapacity: binary.LittleEndian.Uint16(v[3:5]),
	}, nil
}

// BuildBSSLoad encodes l as a full BSS Load element.
func BuildBSSLoad(l *BSSLoad) []byte {
	b := NewBuilder()
	_ = b.Next(TagBSSLoad)
	_ = b.SetLength(5)
	data := b.Data()
	binary.LittleEndian.PutUint16(data[0:2], l.StationCount)
	data[2] = l.ChannelUtilization
	binary.LittleEndian.PutUint16(data[3:5], l.AvailableAdmissionCapacity)
	return b.Finalize()
}
