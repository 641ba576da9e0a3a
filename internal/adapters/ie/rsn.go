package ie

import (
	"encoding/binary"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// TagRSN is the RSNE element tag (802.11 §9.4.2.25).
const TagRSN = 48

var ieeeOUI = [3]byte{0x00, 0x0f, 0xac}

// defaultRSN returns the RSNE defaults used for every short-hand-elided
// trailing field: CCMP group, CCMP pairwise, 802.1X AKM.
func defaultRSN() domain.RSNInfo {
	return domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherCCMP},
		AKMs:            []domain.AKM{domain.AKM8021X},
	}
}

// ParseRSNE decodes a full RSNE element (tag, length, value) per 802.11
// §7.3.2.25.1, in strict field order. Truncation at a field boundary is
// tolerated and fills remaining fields with defaults, except once a count
// field has been read: the declared number of entries must then be fully
// present, or ErrBadMessage is returned.
func ParseRSNE(b []byte) (*domain.RSNInfo, error) {
	if len(b) < 2 || b[0] != TagRSN {
		return nil, domain.ErrProto
	}
	n := int(b[1])
	if 2+n > len(b) {
		return nil, domain.ErrMsgSize
	}
	return parseRSNBody(b[2:2+n], ieeeOUI, defaultRSN())
}

func parseRSNBody(v []byte, suiteOUI [3]byte, defaults domain.RSNInfo) (*domain.RSNInfo, error) {
	info := defaults
	pos := 0

	// 1. Version.
	if len(v) < 2 {
		return nil, domain.ErrMsgSize
	}
	info.Version = binary.LittleEndian.Uint16(v[pos:])
	if info.Version != 1 {
		return nil, domain.ErrBadMessage
	}
	pos += 2
	if pos == len(v) {
		return &info, nil
	}

	// 2. Group cipher.
	c, rest, err := parseSuiteCipher(v[pos:], suiteOUI)
	if err != nil {
		return nil, err
	}
	if !c.ValidGroupCipher() {
		return nil, domain.ErrRange
	}
	info.GroupCipher = c
	pos = len(v) - len(rest)
	if pos == len(v) {
		return &info, nil
	}

	// 3. Pairwise cipher list.
	count, rest, err := parseCount(v[pos:])
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrInvalid
	}
	pos = len(v) - len(rest)
	pairwise := make([]domain.Cipher, count)
	for i := 0; i < count; i++ {
		if pos+4 > len(v) {
			return nil, domain.ErrBadMessage
		}
		pc, r, err := parseSuiteCipher(v[pos:], suiteOUI)
		if err != nil {
			return nil, err
		}
		if !pc.ValidPairwiseCipher() {
			return nil, domain.ErrRange
		}
		pairwise[i] = pc
		pos = len(v) - len(r)
	}
	info.PairwiseCiphers = pairwise
	if pos == len(v) {
		return &info, nil
	}

	// 4. AKM list.
	count, rest, err = parseCount(v[pos:])
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrInvalid
	}
	pos = len(v) - len(rest)
	akms := make([]domain.AKM, count)
	for i := 0; i < count; i++ {
		if pos+4 > len(v) {
			return nil, domain.ErrBadMessage
		}
		a, r, err := parseSuiteAKM(v[pos:], suiteOUI)
		if err != nil {
			return nil, err
		}
		if !domain.ValidAKM(a) {
			return nil, domain.ErrRange
		}
		akms[i] = a
		pos = len(v) - len(r)
	}
	info.AKMs = akms
	if pos == len(v) {
		return &info, nil
	}

	// 5. Capabilities.
	if pos+2 > len(v) {
		return nil, domain.ErrBadMessage
	}
	info.Caps = domain.UnpackCapabilities(binary.LittleEndian.Uint16(v[pos:]))
	info.HasCaps = true
	pos += 2
	if pos == len(v) {
		return &info, nil
	}

	// 6. PMKID list.
	count, rest, err = parseCount(v[pos:])
	if err != nil {
		return nil, err
	}
	pos = len(v) - len(rest)
	if pos+count*16 > len(v) {
		return nil, domain.ErrBadMessage
	}
	pmkids := make([][16]byte, count)
	for i := 0; i < count; i++ {
		copy(pmkids[i][:], v[pos:pos+16])
		pos += 16
	}
	info.PMKIDs = pmkids
	if pos == len(v) {
		return &info, nil
	}

	// 7. Group management cipher.
	if pos+4 > len(v) {
		return nil, domain.ErrBadMessage
	}
	gc, r, err := parseSuiteCipher(v[pos:], suiteOUI)
	if err != nil {
		return nil, err
	}
	if gc != domain.CipherBIP {
		return nil, domain.ErrRange
	}
	info.GroupManagementCipher = &gc
	pos = len(v) - len(r)

	if pos != len(v) {
		return nil, domain.ErrBadMessage
	}
	return &info, nil
}

func parseCount(v []byte) (int, []byte, error) {
	if len(v) < 2 {
		return 0, nil, domain.ErrBadMessage
	}
	return int(binary.LittleEndian.Uint16(v)), v[2:], nil
}

func parseSuiteCipher(v []byte, oui [3]byte) (domain.Cipher, []byte, error) {
	if len(v) < 4 {
		return 0, nil, domain.ErrBadMessage
	}
	if v[0] != oui[0] || v[1] != oui[1] || v[2] != oui[2] {
		return 0, nil, domain.ErrRange
	}
	return domain.Cipher(v[3]), v[4:], nil
}

func parseSuiteAKM(v []byte, oui [3]byte) (domain.AKM, []byte, error) {
	if len(v) < 4 {
		return 0, nil, domain.ErrBadMessage
	}
	if v[0] != oui[0] || v[1] != oui[1] || v[2] != oui[2] {
		return 0, nil, domain.ErrRange
	}
	return domain.AKM(v[3]), v[4:], nil
}

// Length budgets guaranteeing the finished element fits in the 255-byte
// IE body: pos+4 <= 242 for pairwise, <= 248 for AKM, and pos+16 <= 252
// for PMKIDs, measured from the start of the value region.
const (
	pairwiseBudget = 242
	akmBudget      = 248
	pmkidBudget    = 252
)

// BuildRSNE encodes info as a full RSNE element (tag, length, value),
// eliding the capabilities field (and everything after it) when it is the
// all-defaults short-hand case: Caps not explicitly set, no PMKIDs, and no
// group management cipher.
func BuildRSNE(info *domain.RSNInfo) ([]byte, error) {
	inner, err := buildRSNInner(info, ieeeOUI)
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	if err := b.Next(TagRSN); err != nil {
		return nil, err
	}
	if err := b.SetLength(len(inner)); err != nil {
		return nil, err
	}
	copy(b.Data(), inner)
	return b.Finalize(), nil
}

// buildRSNInner encodes the RSNE/WPA-IE field sequence (everything after
// the element's own tag+length, or after the vendor OUI+type prefix for
// WPA-IE) and returns it as a freshly allocated slice.
func buildRSNInner(info *domain.RSNInfo, suiteOUI [3]byte) ([]byte, error) {
	version := info.Version
	if version == 0 {
		version = 1
	}

	elideTrailer := !info.HasCaps && len(info.PMKIDs) == 0 && info.GroupManagementCipher == nil

	size := 2 + 4 + 2 + len(info.PairwiseCiphers)*4 + 2 + len(info.AKMs)*4
	if !elideTrailer {
		size += 2 + 2 + len(info.PMKIDs)*16
		if info.GroupManagementCipher != nil {
			size += 4
		}
	}
	data := make([]byte, size)
	pos := 0
	binary.LittleEndian.PutUint16(data[pos:], version)
	pos += 2

	group := info.GroupCipher
	if group == domain.CipherUseGroupCipher && len(info.PairwiseCiphers) == 0 {
		group = domain.CipherCCMP
	}
	if !group.ValidGroupCipher() {
		return nil, domain.ErrRange
	}
	putSuite(data[pos:], suiteOUI, uint8(group))
	pos += 4

	pairwise := info.PairwiseCiphers
	if len(pairwise) == 0 {
		return nil, domain.ErrInvalid
	}
	binary.LittleEndian.PutUint16(data[pos:], uint16(len(pairwise)))
	pos += 2
	for _, c := range pairwise {
		if !c.ValidPairwiseCipher() {
			return nil, domain.ErrRange
		}
		if pos+4 > pairwiseBudget {
			return nil, domain.ErrMsgSize
		}
		putSuite(data[pos:], suiteOUI, uint8(c))
		pos += 4
	}

	akms := info.AKMs
	if len(akms) == 0 {
		return nil, domain.ErrInvalid
	}
	binary.LittleEndian.PutUint16(data[pos:], uint16(len(akms)))
	pos += 2
	for _, a := range akms {
		if !domain.ValidAKM(a) {
			return nil, domain.ErrRange
		}
		if pos+4 > akmBudget {
			return nil, domain.ErrMsgSize
		}
		putSuite(data[pos:], suiteOUI, uint8(a))
		pos += 4
	}

	if elideTrailer {
		return data, nil
	}

	binary.LittleEndian.PutUint16(data[pos:], info.Caps.Pack())
	pos += 2

	binary.LittleEndian.PutUint16(data[pos:], uint16(len(info.PMKIDs)))
	pos += 2
	for _, p := range info.PMKIDs {
		if pos+16 > pmkidBudget {
			return nil, domain.ErrMsgSize
		}
		copy(data[pos:], p[:])
		pos += 16
	}

	if info.GroupManagementCipher != nil {
		if *info.GroupManagementCipher != domain.CipherBIP {
			return nil, domain.ErrRange
		}
		putSuite(data[pos:], suiteOUI, uint8(*info.GroupManagementCipher))
		pos += 4
	}

	return data, nil
}

func putSuite(dst []byte, oui [3]byte, typ uint8) {
	dst[0], dst[1], dst[2], dst[3] = oui[0], oui[1], oui[2], typ
}
