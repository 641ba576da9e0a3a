// Package nonce provides the default ports.NonceSource, backed by
// crypto/rand.
package nonce

import (
	"crypto/rand"
)

// Source fills nonces from the operating system's CSPRNG. The zero value
// is ready to use.
type Source struct{}

// Nonce implements ports.NonceSource. It returns false only if the
// system randomness source fails or returns short.
func (Source) Nonce(out *[32]byte) bool {
	n, err := rand.Read(out[:])
	return err == nil && n == len(out)
}
