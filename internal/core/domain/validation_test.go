package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateMAC(t *testing.T) {
	require.NoError(t, ValidateMAC("02:00:00:00:01:00"))
	require.NoError(t, ValidateMAC("AA-BB-CC-DD-EE-FF"))

	for _, mac := range []string{
		"",
		"02:00:00:00:01",       // too short
		"02:00:00:00:01:00:ff", // too long
		"zz:00:00:00:01:00",    // non-hex
		"02.00.00.00.01.00",    // wrong separator
	} {
		require.ErrorIs(t, ValidateMAC(mac), ErrInvalidMAC, mac)
	}
}

func TestValidateInterface(t *testing.T) {
	require.NoError(t, ValidateInterface("wlan0"))
	require.NoError(t, ValidateInterface("wlp3s0-mon_1"))

	for _, name := range []string{
		"",
		strings.Repeat("w", MaxInterfaceNameLength+1),
		"wlan0; rm -rf /",
		"wlan 0",
	} {
		require.ErrorIs(t, ValidateInterface(name), ErrInvalidInterfaceName, name)
	}
}

func TestValidateSSID(t *testing.T) {
	require.NoError(t, ValidateSSID("IEEE"))
	require.NoError(t, ValidateSSID(strings.Repeat("s", MaxSSIDLength)))

	require.ErrorIs(t, ValidateSSID(""), ErrRange)
	require.ErrorIs(t, ValidateSSID(strings.Repeat("s", MaxSSIDLength+1)), ErrRange)
}
