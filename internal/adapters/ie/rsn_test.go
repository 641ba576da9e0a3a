package ie

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func TestBuildParseRoundTripCCMPPSK(t *testing.T) {
	info := &domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherCCMP},
		AKMs:            []domain.AKM{domain.AKMPSK},
	}
	wire, err := BuildRSNE(info)
	require.NoError(t, err)

	got, err := ParseRSNE(wire)
	require.NoError(t, err)
	require.Equal(t, info, got)

	// parse(build(parse(B))) == parse(B)
	wire2, err := BuildRSNE(got)
	require.NoError(t, err)
	require.Equal(t, wire, wire2)
}

func TestBuildParseRoundTripWithCapsAndPMKIDs(t *testing.T) {
	info := &domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherCCMP, domain.CipherTKIP},
		AKMs:            []domain.AKM{domain.AKM8021X, domain.AKMPSK},
		Caps: domain.Capabilities{
			MFPC:               true,
			PTKSAReplayCounter: 2,
		},
		HasCaps: true,
		PMKIDs:  [][16]byte{{1, 2, 3}, {4, 5, 6}},
	}
	bip := domain.CipherBIP
	info.GroupManagementCipher = &bip

	wire, err := BuildRSNE(info)
	require.NoError(t, err)

	got, err := ParseRSNE(wire)
	require.NoError(t, err)
	require.Equal(t, info, got)
}

// A 4-byte input holding only the version field parses successfully with
// CCMP/CCMP/8021X defaults for everything else.
func TestParseTruncatedRSNE(t *testing.T) {
	raw, err := hex.DecodeString("30020100")
	require.NoError(t, err)

	info, err := ParseRSNE(raw)
	require.NoError(t, err)
	require.Equal(t, uint16(1), info.Version)
	require.Equal(t, domain.CipherCCMP, info.GroupCipher)
	require.Equal(t, []domain.Cipher{domain.CipherCCMP}, info.PairwiseCiphers)
	require.Equal(t, []domain.AKM{domain.AKM8021X}, info.AKMs)
	require.False(t, info.HasCaps)
}

func TestParseRSNEBadVersion(t *testing.T) {
	raw := []byte{TagRSN, 2, 0x02, 0x00} // version 2
	_, err := ParseRSNE(raw)
	require.ErrorIs(t, err, domain.ErrBadMessage)
}

func TestParseRSNEZeroPairwiseCount(t *testing.T) {
	raw := []byte{TagRSN, 8,
		0x01, 0x00, // version
		0x00, 0x0f, 0xac, 0x04, // group CCMP
		0x00, 0x00, // pairwise count 0
	}
	_, err := ParseRSNE(raw)
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestParseRSNETruncatedMidPairwiseList(t *testing.T) {
	raw := []byte{TagRSN, 8,
		0x01, 0x00,
		0x00, 0x0f, 0xac, 0x04,
		0x02, 0x00, // declares 2 pairwise suites, but none follow
	}
	_, err := ParseRSNE(raw)
	require.ErrorIs(t, err, domain.ErrBadMessage)
}

func TestParseRSNEUnknownGroupOUI(t *testing.T) {
	raw := []byte{TagRSN, 6,
		0x01, 0x00,
		0xff, 0xff, 0xff, 0x04,
	}
	_, err := ParseRSNE(raw)
	require.ErrorIs(t, err, domain.ErrRange)
}

func TestParseRSNETrailingByteAfterGroupManagement(t *testing.T) {
	raw := []byte{TagRSN, 21,
		0x01, 0x00,
		0x00, 0x0f, 0xac, 0x04, // group CCMP
		0x01, 0x00, 0x00, 0x0f, 0xac, 0x04, // 1 pairwise, CCMP
		0x01, 0x00, 0x00, 0x0f, 0xac, 0x02, // 1 AKM, PSK
		0x00, 0x00, // caps
		0xff, // trailing extra byte
	}
	_, err := ParseRSNE(raw)
	require.ErrorIs(t, err, domain.ErrBadMessage)
}

// CCMP-group + TKIP-pairwise is rejected in the WPA-IE path (RSNE itself
// has no such restriction).
func TestWPADowngradeRejected(t *testing.T) {
	_, err := BuildWPA(&domain.RSNInfo{
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherTKIP},
		AKMs:            []domain.AKM{domain.AKMPSK},
	})
	require.ErrorIs(t, err, domain.ErrRange)

	raw := []byte{
		TagVendorSpecific, 22,
		0x00, 0x50, 0xf2, 0x01, // microsoft OUI, type 1
		0x01, 0x00, // version
		0x00, 0x50, 0xf2, 0x04, // group CCMP
		0x01, 0x00, 0x00, 0x50, 0xf2, 0x02, // pairwise: TKIP
		0x01, 0x00, 0x00, 0x50, 0xf2, 0x02, // akm: PSK
	}
	_, err = ParseWPA(raw)
	require.ErrorIs(t, err, domain.ErrRange)
}

// WPA-IE round-trip with defaults elsewhere.
func TestWPARoundTrip(t *testing.T) {
	info := &domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherTKIP,
		PairwiseCiphers: []domain.Cipher{domain.CipherTKIP},
		AKMs:            []domain.AKM{domain.AKMPSK},
	}
	wire, err := BuildWPA(info)
	require.NoError(t, err)

	got, err := ParseWPA(wire)
	require.NoError(t, err)
	require.Equal(t, info, got)
}

func TestBuildRSNERejectsEmptyPairwiseList(t *testing.T) {
	_, err := BuildRSNE(&domain.RSNInfo{
		GroupCipher: domain.CipherCCMP,
		AKMs:        []domain.AKM{domain.AKMPSK},
	})
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBuildRSNERejectsEmptyAKMList(t *testing.T) {
	_, err := BuildRSNE(&domain.RSNInfo{
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherCCMP},
	})
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBuildRSNERejectsInvalidSuite(t *testing.T) {
	_, err := BuildRSNE(&domain.RSNInfo{
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{99},
		AKMs:            []domain.AKM{domain.AKMPSK},
	})
	require.ErrorIs(t, err, domain.ErrRange)
}
