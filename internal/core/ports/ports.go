// Package ports declares the capability record the handshake state machine
// is constructed with. Transport, nonce, and install effects are modeled
// as narrow interfaces injected per SM instance, keeping every hook
// substitutable in tests without a process-wide registry of callbacks.
package ports

import (
	"context"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// FrameTransport delivers a built EAPOL-Key frame as an 802.1X PAE frame
// (EtherType 0x888E) from spa to aa on the given interface. The returned
// error is observability only: the state machine does not retry.
type FrameTransport interface {
	Send(ctx context.Context, ifindex int, aa, spa [6]byte, frame []byte) error
}

// NonceSource supplies cryptographically strong randomness for SNonce
// generation. Returns false if it cannot fill out with 32 bytes of
// randomness.
type NonceSource interface {
	Nonce(out *[32]byte) bool
}

// KeyInstaller receives the one-shot install effects produced by the
// handshake. Implementations must tolerate InstallTK
// being called at most once per association — the state machine itself
// enforces this, but a defensive implementation should too.
type KeyInstaller interface {
	InstallTK(ctx context.Context, ifindex int, aa [6]byte, tk []byte, cipher domain.Cipher) error
	InstallGTK(ctx context.Context, ifindex int, keyIndex uint8, gtk []byte, rsc [8]byte, cipher domain.Cipher) error
}

// Deauthenticator terminates the association. Invoked when the
// handshake cannot proceed (downgrade detection, nonce mismatch, fatal
// protocol error); the SM destroys itself immediately afterward.
type Deauthenticator interface {
	Deauthenticate(ctx context.Context, ifindex int, aa, spa [6]byte, reasonCode uint16) error
}

// Capabilities bundles the four injected collaborators plus opaque
// per-direction user data, scoped to one SM instance.
type Capabilities struct {
	Transport    FrameTransport
	Nonce        NonceSource
	Installer    KeyInstaller
	Deauth       Deauthenticator
	UserData     any
	TxUserData   any
}
