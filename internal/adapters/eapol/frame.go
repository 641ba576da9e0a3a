// Package eapol implements the EAPoL-Key frame codec: parsing and
// building the fixed-header frame (802.1X-2010 §11.9), the six message-
// class verifiers (802.11 §11.6), MIC computation/verification across the
// three descriptor versions, and Key Data encryption/decryption. Frames
// can arrive either as raw 802.1X buffers or as captured Ethernet packets
// via gopacket.
package eapol

import (
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// KeyInfo is the 16-bit bit-packed key-information field (802.11 §11.6.2),
// treated as a named bitmask at the wire boundary; callers read semantic
// fields through IsSet/DescriptorVersion rather than reaching into
// individual bits themselves.
type KeyInfo uint16

// Key information field masks (802.11 §11.6.2, figure 11-30 bit order).
const (
	KeyInfoDescriptorVersion KeyInfo = 0x0007
	KeyInfoType              KeyInfo = 1 << 3
	KeyInfoIndex             KeyInfo = 0x0030
	KeyInfoInstall           KeyInfo = 1 << 6
	KeyInfoACK               KeyInfo = 1 << 7
	KeyInfoMIC               KeyInfo = 1 << 8
	KeyInfoSecure            KeyInfo = 1 << 9
	KeyInfoError             KeyInfo = 1 << 10
	KeyInfoRequest           KeyInfo = 1 << 11
	KeyInfoEncryptedKeyData  KeyInfo = 1 << 12
	KeyInfoSMKMessage        KeyInfo = 1 << 13
)

// IsSet reports whether every bit in mask is set.
func (k KeyInfo) IsSet(mask KeyInfo) bool { return k&mask == mask }

// Update clears the bits in clear, then sets the bits in set.
func (k KeyInfo) Update(clear, set KeyInfo) KeyInfo { return (k &^ clear) | set }

// DescriptorVersion extracts the 3-bit MIC/key-data-encryption algorithm
// selector (1, 2, or 3).
func (k KeyInfo) DescriptorVersion() uint8 { return uint8(k & KeyInfoDescriptorVersion) }

// Descriptor type values (802.11 §11.6.2, Table 9-133 descriptor column).
const (
	DescriptorTypeRC4       = 1
	DescriptorTypeIEEE80211 = 2
)

// Protocol version values accepted on the 802.1X header. The 2001 and
// legacy editions share wire value 1.
const (
	ProtocolVersion2001 = 1
	ProtocolVersion2004 = 2
	ProtocolVersion2010 = 3
)

// PacketTypeKey is the 802.1X EAPOL-Key packet type (3).
const PacketTypeKey = 3

const (
	eapolHeaderLen = 4  // protocol_version, packet_type, packet_len(2)
	bodyHeaderLen  = 95 // fixed EAPOL-Key fields preceding key_data
	micOffset      = 77
	micLen         = 16
)

// KeyFrame is the decoded EAPoL-Key frame body, excluding the outer
// 4-byte 802.1X header.
type KeyFrame struct {
	DescriptorType uint8
	Info           KeyInfo
	Length         uint16
	ReplayCounter  uint64
	Nonce          [32]byte
	IV             [16]byte
	RSC            [8]byte
	Reserved       [8]byte
	MIC            [16]byte
	Data           []byte
}

// NewEmptyKeyFrame allocates a KeyFrame with a dataLen-byte Data buffer,
// all other fields zeroed.
func NewEmptyKeyFrame(dataLen int) *KeyFrame {
	return &KeyFrame{Data: make([]byte, dataLen)}
}

// Parse validates and decodes a full 802.1X frame: the 4-byte header plus
// an EAPoL-Key body.
func Parse(b []byte) (*KeyFrame, error) {
	if len(b) < eapolHeaderLen+bodyHeaderLen {
		return nil, domain.ErrMsgSize
	}
	version := b[0]
	packetType := b[1]
	packetLen := int(binary.BigEndian.Uint16(b[2:4]))

	switch version {
	case ProtocolVersion2001, ProtocolVersion2004, ProtocolVersion2010:
	default:
		return nil, domain.ErrBadMessage
	}
	if packetType != PacketTypeKey {
		return nil, domain.ErrProto
	}
	if eapolHeaderLen+packetLen > len(b) {
		return nil, domain.ErrMsgSize
	}
	return ParseBody(b[eapolHeaderLen : eapolHeaderLen+packetLen])
}

// ParseBody decodes an EAPoL-Key body (the bytes following the 4-byte
// 802.1X header) without re-validating the outer header.
func ParseBody(body []byte) (*KeyFrame, error) {
	if len(body) < bodyHeaderLen {
		return nil, domain.ErrMsgSize
	}
	f := &KeyFrame{}
	f.DescriptorType = body[0]
	f.Info = KeyInfo(binary.BigEndian.Uint16(body[1:3]))
	f.Length = binary.BigEndian.Uint16(body[3:5])
	f.ReplayCounter = binary.BigEndian.Uint64(body[5:13])
	copy(f.Nonce[:], body[13:45])
	copy(f.IV[:], body[45:61])
	copy(f.RSC[:], body[61:69])
	copy(f.Reserved[:], body[69:77])
	copy(f.MIC[:], body[77:93])
	dataLen := int(binary.BigEndian.Uint16(body[93:95]))
	if bodyHeaderLen+dataLen > len(body) {
		return nil, domain.ErrMsgSize
	}
	f.Data = body[bodyHeaderLen : bodyHeaderLen+dataLen]
	return f, nil
}

// ParsePacket extracts and decodes the EAPoL-Key frame carried by an
// Ethernet/802.1X frame, the gopacket-backed counterpart of Parse used
// when a transport hands the SM a captured packet rather than a raw
// buffer.
func ParsePacket(packet gopacket.Packet) (*KeyFrame, error) {
	layer := packet.Layer(layers.LayerTypeEAPOL)
	if layer == nil {
		return nil, domain.ErrProto
	}
	ep, ok := layer.(*layers.EAPOL)
	if !ok || ep.Type != layers.EAPOLTypeKey {
		return nil, domain.ErrProto
	}
	return ParseBody(ep.LayerPayload())
}

// Marshal encodes f as the fixed-size EAPoL-Key body followed by Data.
func (f *KeyFrame) Marshal() []byte {
	body := make([]byte, bodyHeaderLen+len(f.Data))
	body[0] = f.DescriptorType
	binary.BigEndian.PutUint16(body[1:3], uint16(f.Info))
	binary.BigEndian.PutUint16(body[3:5], f.Length)
	binary.BigEndian.PutUint64(body[5:13], f.ReplayCounter)
	copy(body[13:45], f.Nonce[:])
	copy(body[45:61], f.IV[:])
	copy(body[61:69], f.RSC[:])
	copy(body[69:77], f.Reserved[:])
	copy(body[77:93], f.MIC[:])
	binary.BigEndian.PutUint16(body[93:95], uint16(len(f.Data)))
	copy(body[bodyHeaderLen:], f.Data)
	return body
}

// WrapHeader prepends the 4-byte 802.1X header to an already-marshaled
// EAPoL-Key body.
func WrapHeader(protocolVersion uint8, body []byte) []byte {
	out := make([]byte, eapolHeaderLen+len(body))
	out[0] = protocolVersion
	out[1] = PacketTypeKey
	binary.BigEndian.PutUint16(out[2:4], uint16(len(body)))
	copy(out[4:], body)
	return out
}
