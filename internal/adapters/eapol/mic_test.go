package eapol

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// RFC 2202 test case 2 (key "Jefe", data "what do ya want for
// nothing?"). Both messages are far shorter than the EAPoL-Key MIC
// field offset (81 bytes in), so ComputeMIC's zeroing pass is a no-op
// and it reduces to a bare HMAC over the message -- letting these
// well-known vectors exercise versions 1 and 2 through the public API.
func TestComputeMICVersion1HMACMD5Vector(t *testing.T) {
	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")
	want, err := hex.DecodeString("750c783e6ab0b503eaa86e310a5db738")
	require.NoError(t, err)

	got, err := ComputeMIC(1, key, msg)
	require.NoError(t, err)
	require.Equal(t, want, got[:])
}

func TestComputeMICVersion2HMACSHA1Vector(t *testing.T) {
	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")
	want, err := hex.DecodeString("effcdf6ae5eb2fa2d27416d5f184df9c259a7c79")
	require.NoError(t, err)

	got, err := ComputeMIC(2, key, msg)
	require.NoError(t, err)
	require.Equal(t, want[:16], got[:])
}

// NIST SP 800-38B, Appendix D.2 (AES-128), examples 1 and 2.
func TestAESCMACVectorEmptyMessage(t *testing.T) {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	want, _ := hex.DecodeString("bb1d6929e95937287fa37d129b756746"[:32])

	got, err := aesCMAC(key, nil)
	require.NoError(t, err)
	require.Equal(t, want, got[:])
}

func TestAESCMACVectorSingleBlock(t *testing.T) {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	msg, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")
	want, _ := hex.DecodeString("070a16b46b4d4144f79bdd9dd04a287c"[:32])

	got, err := aesCMAC(key, msg)
	require.NoError(t, err)
	require.Equal(t, want, got[:])
}

func TestComputeMICRejectsUnknownVersion(t *testing.T) {
	_, err := ComputeMIC(9, []byte("key"), []byte("msg"))
	require.ErrorIs(t, err, domain.ErrRange)
}

func TestVerifyMICRoundTripAndBitFlipDetection(t *testing.T) {
	kck := make([]byte, 16)
	for i := range kck {
		kck[i] = byte(i)
	}
	f := sampleFrame()
	f.Info = f.Info.Update(0, KeyInfoMIC)
	body := f.Marshal()
	frame := WrapHeader(ProtocolVersion2004, body)

	mic, err := ComputeMIC(2, kck, frame)
	require.NoError(t, err)
	copy(frame[eapolHeaderLen+micOffset:eapolHeaderLen+micOffset+micLen], mic[:])

	ok, err := VerifyMIC(2, kck, frame)
	require.NoError(t, err)
	require.True(t, ok)

	// Flipping one byte of the frame must fail verification.
	frame[eapolHeaderLen+micOffset] ^= 0x01
	ok, err = VerifyMIC(2, kck, frame)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyMICVersion3RoundTrip(t *testing.T) {
	kck := make([]byte, 16)
	for i := range kck {
		kck[i] = byte(0xaa)
	}
	f := sampleFrame()
	body := f.Marshal()
	frame := WrapHeader(ProtocolVersion2010, body)

	mic, err := ComputeMIC(3, kck, frame)
	require.NoError(t, err)
	copy(frame[eapolHeaderLen+micOffset:eapolHeaderLen+micOffset+micLen], mic[:])

	ok, err := VerifyMIC(3, kck, frame)
	require.NoError(t, err)
	require.True(t, ok)
}
