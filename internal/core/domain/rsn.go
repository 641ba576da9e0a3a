package domain

// Capabilities is the 2-byte RSN/WPA capabilities bitfield (802.11
// §9.4.2.24.4), decoded into named booleans/sub-fields. Unknown bits are
// accepted on parse and discarded rather than stored.
type Capabilities struct {
	Preauthentication    bool
	NoPairwise           bool
	PTKSAReplayCounter   uint8 // 2 bits
	GTKSAReplayCounter   uint8 // 2 bits
	MFPR                 bool
	MFPC                 bool
	PeerKeyEnabled       bool
	SPPAMSDUCapable      bool
	SPPAMSDURequired     bool
	PBAC                 bool
	ExtendedKeyID        bool
}

// Pack encodes c into its 2-byte little-endian wire representation.
func (c Capabilities) Pack() uint16 {
	var v uint16
	if c.Preauthentication {
		v |= 1 << 0
	}
	if c.NoPairwise {
		v |= 1 << 1
	}
	v |= uint16(c.PTKSAReplayCounter&0x3) << 2
	v |= uint16(c.GTKSAReplayCounter&0x3) << 4
	if c.MFPR {
		v |= 1 << 6
	}
	if c.MFPC {
		v |= 1 << 7
	}
	if c.PeerKeyEnabled {
		v |= 1 << 9
	}
	if c.SPPAMSDUCapable {
		v |= 1 << 10
	}
	if c.SPPAMSDURequired {
		v |= 1 << 11
	}
	if c.PBAC {
		v |= 1 << 12
	}
	if c.ExtendedKeyID {
		v |= 1 << 13
	}
	return v
}

// UnpackCapabilities decodes the 2-byte little-endian wire representation,
// ignoring unrecognized bits (reserved bit 8, bits 14-15).
func UnpackCapabilities(v uint16) Capabilities {
	return Capabilities{
		Preauthentication:  v&(1<<0) != 0,
		NoPairwise:         v&(1<<1) != 0,
		PTKSAReplayCounter: uint8((v >> 2) & 0x3),
		GTKSAReplayCounter: uint8((v >> 4) & 0x3),
		MFPR:               v&(1<<6) != 0,
		MFPC:               v&(1<<7) != 0,
		PeerKeyEnabled:     v&(1<<9) != 0,
		SPPAMSDUCapable:    v&(1<<10) != 0,
		SPPAMSDURequired:   v&(1<<11) != 0,
		PBAC:               v&(1<<12) != 0,
		ExtendedKeyID:      v&(1<<13) != 0,
	}
}

// RSNInfo is the semantic content of an RSNE or WPA-IE, independent of
// which of the two wire encodings produced it.
type RSNInfo struct {
	Version          uint16
	GroupCipher      Cipher
	PairwiseCiphers  []Cipher
	AKMs             []AKM
	Caps             Capabilities
	// HasCaps distinguishes "capabilities field absent" (short-hand
	// elision on build, defaults on parse) from "present with value 0";
	// the latter must still round-trip as two explicit zero bytes.
	HasCaps bool
	PMKIDs  [][16]byte
	// GroupManagementCipher is nil when absent from the wire. Absence
	// defaults to BIP whenever Caps.MFPC is true, but that default is
	// applied by callers that need a concrete cipher, not by the parser.
	GroupManagementCipher *Cipher
}
