package eapol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rsna/rsna/internal/core/domain"
)

func TestRC4KeyDataRoundTrip(t *testing.T) {
	kek := bytes.Repeat([]byte{0x11}, 16)
	iv := bytes.Repeat([]byte{0x22}, 16)
	plain := []byte("a decrypted RSNE payload goes here")

	cipher, err := EncryptKeyData(1, kek, iv, plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, cipher)

	got, err := DecryptKeyData(1, kek, iv, cipher)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestAESKeyWrapKeyDataRoundTrip(t *testing.T) {
	kek := bytes.Repeat([]byte{0x33}, 16)
	plain := bytes.Repeat([]byte{0x44}, 16)

	cipher, err := EncryptKeyData(2, kek, nil, plain)
	require.NoError(t, err)
	require.Len(t, cipher, len(plain)+8)

	got, err := DecryptKeyData(2, kek, nil, cipher)
	require.NoError(t, err)
	require.Equal(t, plain, got)

	cipher3, err := EncryptKeyData(3, kek, nil, plain)
	require.NoError(t, err)
	got3, err := DecryptKeyData(3, kek, nil, cipher3)
	require.NoError(t, err)
	require.Equal(t, plain, got3)
}

func TestKeyDataRejectsUnknownVersion(t *testing.T) {
	_, err := DecryptKeyData(9, []byte("k"), nil, []byte("d"))
	require.ErrorIs(t, err, domain.ErrRange)

	_, err = EncryptKeyData(9, []byte("k"), nil, []byte("d"))
	require.ErrorIs(t, err, domain.ErrRange)
}
