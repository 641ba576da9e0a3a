// Package config parses the flag-plus-environment-variable configuration
// for the demo binaries (cmd/rsnadump, cmd/rsnasim). Flags take
// precedence over environment variables; there is no file-based layer,
// the parameters are few and in-memory.
package config

import (
	"flag"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// Config holds the parameters shared by the demo binaries.
type Config struct {
	Interface       string
	ProtocolVersion int // 1 (802.1X-2001) or 2 (802.1X-2004)
	Debug           bool
	SPA             [6]byte // supplicant (station) address
	AA              [6]byte // authenticator (AP) address
}

// Load parses command line flags and environment variables into a Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	cfg.Interface = getEnv("RSNA_INTERFACE", "wlan0")
	cfg.ProtocolVersion = int(getEnvFloat("RSNA_PROTOCOL_VERSION", 2))
	cfg.Debug = getEnvBool("RSNA_DEBUG", false)
	spaStr := getEnv("RSNA_SPA", "02:00:00:00:01:00")
	aaStr := getEnv("RSNA_AA", "02:00:00:00:02:00")

	flag.StringVar(&cfg.Interface, "i", cfg.Interface, "Network interface to use")
	flag.IntVar(&cfg.ProtocolVersion, "protocol-version", cfg.ProtocolVersion, "802.1X protocol version (1 or 2)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
	flag.StringVar(&spaStr, "spa", spaStr, "Supplicant (station) MAC address")
	flag.StringVar(&aaStr, "aa", aaStr, "Authenticator (AP) MAC address")

	flag.Parse()

	if !domain.IsValidInterface(cfg.Interface) {
		log.Fatalf("config: invalid interface name %q", cfg.Interface)
	}
	cfg.SPA = mustParseMAC(spaStr)
	cfg.AA = mustParseMAC(aaStr)

	return cfg
}

// mustParseMAC validates mac with domain.IsValidMAC before handing it to
// net.ParseMAC, so a malformed override fails with the domain's own error
// rather than a stdlib parse error.
func mustParseMAC(mac string) [6]byte {
	if !domain.IsValidMAC(mac) {
		log.Fatalf("config: invalid MAC address %q", mac)
	}
	hw, err := net.ParseMAC(mac)
	if err != nil {
		log.Fatalf("config: invalid MAC address %q: %v", mac, err)
	}
	var out [6]byte
	copy(out[:], hw)
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
