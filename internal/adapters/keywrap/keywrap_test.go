package keywrap

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// RFC 3394 §4 test vectors.
func TestWrapUnwrapVectors(t *testing.T) {
	cases := []struct {
		name, kek, data, want string
	}{
		{"128-data-128-kek",
			"000102030405060708090A0B0C0D0E0F",
			"00112233445566778899AABBCCDDEEFF",
			"1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5"},
		{"128-data-192-kek",
			"000102030405060708090A0B0C0D0E0F1011121314151617",
			"00112233445566778899AABBCCDDEEFF",
			"96778B25AE6CA435F92B5B97C050AED2468AB8A17AD84E5D"},
		{"128-data-256-kek",
			"000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			"00112233445566778899AABBCCDDEEFF",
			"64E8C3F9CE0F5BA263E9777905818A2A93C8191E7D6E8AE7"},
		{"192-data-192-kek",
			"000102030405060708090A0B0C0D0E0F1011121314151617",
			"00112233445566778899AABBCCDDEEFF0001020304050607",
			"031D33264E15D33268F24EC260743EDCE1C6C7DDEE725A936BA814915C6762D2"},
		{"192-data-256-kek",
			"000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			"00112233445566778899AABBCCDDEEFF0001020304050607",
			"A8F9BC1612C68B3FF6E6F4FBE30E71E4769C8B80A32CB8958CD5D17D6B254DA1"},
		{"256-data-256-kek",
			"000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			"00112233445566778899AABBCCDDEEFF000102030405060708090A0B0C0D0E0F",
			"28C9F404C4B810F4CBCCB35CFB87F8263F5786E2D80ED326CBC7F0E71A99F43BFB988B9B7A02DD21"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			kek, err := hex.DecodeString(c.kek)
			require.NoError(t, err)
			data, err := hex.DecodeString(c.data)
			require.NoError(t, err)
			want, err := hex.DecodeString(c.want)
			require.NoError(t, err)

			got, err := Wrap(kek, data)
			require.NoError(t, err)
			require.Equal(t, want, got)

			plain, err := Unwrap(kek, want)
			require.NoError(t, err)
			require.Equal(t, data, plain)
		})
	}
}

func TestInvalidKeyLength(t *testing.T) {
	kek, _ := hex.DecodeString("0102030405060708090A0B0C0D0E0F")
	data, _ := hex.DecodeString("00112233445566778899AABBCCDDEEFF")

	_, err := Wrap(kek, data)
	require.ErrorIs(t, err, ErrKeyLength)

	_, err = Unwrap(kek, data)
	require.ErrorIs(t, err, ErrKeyLength)
}

func TestInvalidDataLength(t *testing.T) {
	kek, _ := hex.DecodeString("000102030405060708090A0B0C0D0E0F")
	data, _ := hex.DecodeString("01234567891234560123456789123456012345678912345601234567891234561")

	_, err := Wrap(kek, data)
	require.ErrorIs(t, err, ErrDataLength)

	_, err = Unwrap(kek, data)
	require.ErrorIs(t, err, ErrDataLength)
}

func TestTooShortDataLength(t *testing.T) {
	kek, _ := hex.DecodeString("000102030405060708090A0B0C0D0E0F")
	data, _ := hex.DecodeString("0011223344556677")

	_, err := Wrap(kek, data)
	require.ErrorIs(t, err, ErrDataLength)

	ciphertext, _ := hex.DecodeString("1FA68B0A8112B447AEF34BD8FB5A7B82")
	_, err = Unwrap(kek, ciphertext)
	require.ErrorIs(t, err, ErrDataLength)
}

func TestUnwrapWithWrongKey(t *testing.T) {
	kek, _ := hex.DecodeString("000102030405060708090A0B0C0D0E0F")
	data, _ := hex.DecodeString("00112233445566778899AABBCCDDEEFF")

	ciphertext, err := Wrap(kek, data)
	require.NoError(t, err)

	kek[0] = 0xFF
	_, err = Unwrap(kek, ciphertext)
	require.ErrorIs(t, err, ErrIntegrity)
}
