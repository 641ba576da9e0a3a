package eapol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func TestGTKKDERoundTrip(t *testing.T) {
	g := &GTK{KeyIndex: 2, Tx: false, Key: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}}
	wire := BuildGTKKDE(g)

	got, err := ExtractGTKKDE(wire)
	require.NoError(t, err)
	require.Equal(t, g, got)
}

func TestGTKKDENotFound(t *testing.T) {
	// An RSNE only, no GTK KDE present.
	keyData := []byte{48, 2, 0x01, 0x00}
	_, err := ExtractGTKKDE(keyData)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGTKKDEIgnoresOtherVendorElements(t *testing.T) {
	other := []byte{221, 6, 0x00, 0x50, 0xf2, 0x04, 0xaa, 0xbb}
	g := &GTK{KeyIndex: 1, Tx: true, Key: []byte{0xde, 0xad, 0xbe, 0xef}}
	gtkWire := BuildGTKKDE(g)

	keyData := append(append([]byte{}, other...), gtkWire...)
	got, err := ExtractGTKKDE(keyData)
	require.NoError(t, err)
	require.Equal(t, g, got)
}
