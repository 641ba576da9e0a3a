package eapol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func sampleFrame() *KeyFrame {
	f := &KeyFrame{
		DescriptorType: DescriptorTypeIEEE80211,
		Info:           KeyInfoMIC | KeyInfoACK | KeyInfo(3),
		ReplayCounter:  7,
		Data:           []byte{0xde, 0xad, 0xbe, 0xef},
	}
	for i := range f.Nonce {
		f.Nonce[i] = byte(i)
	}
	f.Length = 32
	return f
}

func TestMarshalParseBodyRoundTrip(t *testing.T) {
	f := sampleFrame()
	body := f.Marshal()

	got, err := ParseBody(body)
	require.NoError(t, err)
	require.Equal(t, f.DescriptorType, got.DescriptorType)
	require.Equal(t, f.Info, got.Info)
	require.Equal(t, f.ReplayCounter, got.ReplayCounter)
	require.Equal(t, f.Nonce, got.Nonce)
	require.Equal(t, f.Data, got.Data)
}

func TestWrapHeaderParseRoundTrip(t *testing.T) {
	f := sampleFrame()
	body := f.Marshal()
	wire := WrapHeader(ProtocolVersion2004, body)

	got, err := Parse(wire)
	require.NoError(t, err)
	require.Equal(t, f.ReplayCounter, got.ReplayCounter)
	require.Equal(t, f.Data, got.Data)
}

func TestParseRejectsBadProtocolVersion(t *testing.T) {
	f := sampleFrame()
	wire := WrapHeader(0x09, f.Marshal())
	_, err := Parse(wire)
	require.ErrorIs(t, err, domain.ErrBadMessage)
}

func TestParseRejectsWrongPacketType(t *testing.T) {
	f := sampleFrame()
	wire := WrapHeader(ProtocolVersion2004, f.Marshal())
	wire[1] = 0x00 // not PacketTypeKey
	_, err := Parse(wire)
	require.ErrorIs(t, err, domain.ErrProto)
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	_, err := Parse([]byte{ProtocolVersion2004, PacketTypeKey, 0, 1})
	require.ErrorIs(t, err, domain.ErrMsgSize)
}

func TestParseRejectsPacketLenBeyondBuffer(t *testing.T) {
	f := sampleFrame()
	body := f.Marshal()
	wire := WrapHeader(ProtocolVersion2004, body)
	wire[2] = 0xff // inflate packet_len beyond actual buffer
	wire[3] = 0xff
	_, err := Parse(wire)
	require.ErrorIs(t, err, domain.ErrMsgSize)
}

func TestParseBodyRejectsDataLenBeyondBuffer(t *testing.T) {
	f := sampleFrame()
	body := f.Marshal()
	body[93] = 0xff // inflate data_length field beyond actual buffer
	body[94] = 0xff
	_, err := ParseBody(body)
	require.ErrorIs(t, err, domain.ErrMsgSize)
}

func TestParseBodyRejectsTruncatedFixedHeader(t *testing.T) {
	_, err := ParseBody(make([]byte, bodyHeaderLen-1))
	require.ErrorIs(t, err, domain.ErrMsgSize)
}

func TestKeyInfoIsSetAndUpdate(t *testing.T) {
	var k KeyInfo
	k = k.Update(0, KeyInfoACK|KeyInfoMIC)
	require.True(t, k.IsSet(KeyInfoACK))
	require.True(t, k.IsSet(KeyInfoMIC))
	require.False(t, k.IsSet(KeyInfoInstall))

	k = k.Update(KeyInfoACK, KeyInfoInstall)
	require.False(t, k.IsSet(KeyInfoACK))
	require.True(t, k.IsSet(KeyInfoInstall))
}

func TestDescriptorVersion(t *testing.T) {
	k := KeyInfo(3) | KeyInfoMIC
	require.Equal(t, uint8(3), k.DescriptorVersion())
}
