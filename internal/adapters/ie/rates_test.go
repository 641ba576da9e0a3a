package ie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func TestRatesRoundTripSupportedRates(t *testing.T) {
	rates := []Rate{
		{Mbps: 1, Basic: true},
		{Mbps: 2, Basic: true},
		{Mbps: 5.5, Basic: false},
		{Mbps: 11, Basic: false},
	}
	wire, err := BuildRates(rates)
	require.NoError(t, err)
	require.Equal(t, uint8(TagSupportedRates), wire[0])

	got, err := ParseRates(wire)
	require.NoError(t, err)
	require.Equal(t, rates, got)
}

func TestRatesOverflowToExtended(t *testing.T) {
	rates := make([]Rate, 9)
	for i := range rates {
		rates[i] = Rate{Mbps: float64(i+1), Basic: false}
	}
	wire, err := BuildRates(rates)
	require.NoError(t, err)
	require.Equal(t, uint8(TagExtendedSupportedRates), wire[0])

	got, err := ParseRates(wire)
	require.NoError(t, err)
	require.Len(t, got, 9)
}

func TestParseRatesEmptyInput(t *testing.T) {
	_, err := ParseRates(nil)
	require.ErrorIs(t, err, domain.ErrProto)
}

func TestParseRatesWrongTag(t *testing.T) {
	_, err := ParseRates([]byte{0x02, 0x01, 0x82})
	require.ErrorIs(t, err, domain.ErrProto)
}
