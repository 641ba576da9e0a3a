package ie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func TestBSSLoadRoundTrip(t *testing.T) {
	l := &BSSLoad{StationCount: 12, ChannelUtilization: 200, AvailableAdmissionCapacity: 5000}
	wire := BuildBSSLoad(l)
	got, err := ParseBSSLoad(wire)
	require.NoError(t, err)
	require.Equal(t, l, got)
}

func TestParseBSSLoadWrongLength(t *testing.T) {
	_, err := ParseBSSLoad([]byte{TagBSSLoad, 3, 0x01, 0x02, 0x03})
	require.ErrorIs(t, err, domain.ErrBadMessage)
}

func TestParseBSSLoadWrongTag(t *testing.T) {
	_, err := ParseBSSLoad([]byte{0x01, 5, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, domain.ErrProto)
}
