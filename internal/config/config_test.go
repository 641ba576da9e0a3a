package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags gives each test a fresh flag.CommandLine, since Load()
// registers its flags against the package-level default set and flag
// panics on a duplicate registration.
func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(args[0], flag.ContinueOnError)
	os.Args = args
}

func TestLoadDefaults(t *testing.T) {
	resetFlags(t, "rsnasim")
	for _, key := range []string{"RSNA_INTERFACE", "RSNA_PROTOCOL_VERSION", "RSNA_DEBUG", "RSNA_SPA", "RSNA_AA"} {
		t.Setenv(key, "") // register restore, then clear so LookupEnv misses
		os.Unsetenv(key)
	}

	cfg := Load()
	require.Equal(t, "wlan0", cfg.Interface)
	require.Equal(t, 2, cfg.ProtocolVersion)
	require.False(t, cfg.Debug)
	require.Equal(t, [6]byte{0x02, 0x00, 0x00, 0x00, 0x01, 0x00}, cfg.SPA)
	require.Equal(t, [6]byte{0x02, 0x00, 0x00, 0x00, 0x02, 0x00}, cfg.AA)
}

func TestLoadEnvOverride(t *testing.T) {
	resetFlags(t, "rsnasim")
	t.Setenv("RSNA_INTERFACE", "mon0")
	t.Setenv("RSNA_PROTOCOL_VERSION", "1")
	t.Setenv("RSNA_DEBUG", "true")

	cfg := Load()
	require.Equal(t, "mon0", cfg.Interface)
	require.Equal(t, 1, cfg.ProtocolVersion)
	require.True(t, cfg.Debug)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	resetFlags(t, "rsnasim", "-i", "wlp3s0", "-protocol-version", "1")
	t.Setenv("RSNA_INTERFACE", "mon0")
	t.Setenv("RSNA_PROTOCOL_VERSION", "2")

	cfg := Load()
	require.Equal(t, "wlp3s0", cfg.Interface)
	require.Equal(t, 1, cfg.ProtocolVersion)
}

func TestLoadMACOverrides(t *testing.T) {
	resetFlags(t, "rsnasim", "-spa", "AA:BB:CC:DD:EE:FF", "-aa", "11:22:33:44:55:66")

	cfg := Load()
	require.Equal(t, [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, cfg.SPA)
	require.Equal(t, [6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}, cfg.AA)
}
