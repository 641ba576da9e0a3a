// rsnasim drives a complete 4-Way Handshake and Group Key Handshake
// in-process against the handshake.SM supplicant implementation, playing
// the authenticator's half by hand. It doubles as a live exerciser of
// the observability stack: Prometheus counters and an OpenTelemetry trace
// per inbound frame.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/go-rsna/rsna/internal/adapters/eapol"
	"github.com/go-rsna/rsna/internal/adapters/ie"
	"github.com/go-rsna/rsna/internal/adapters/nonce"
	"github.com/go-rsna/rsna/internal/config"
	"github.com/go-rsna/rsna/internal/core/crypto"
	"github.com/go-rsna/rsna/internal/core/domain"
	"github.com/go-rsna/rsna/internal/core/ports"
	"github.com/go-rsna/rsna/internal/core/services/handshake"
	"github.com/go-rsna/rsna/internal/telemetry"
)

// fixedNonce is a ports.NonceSource that always returns the same bytes,
// pinned once from the real nonce.Source so the demo's transcript is
// internally consistent even if a handler runs twice.
type fixedNonce [32]byte

func (n fixedNonce) Nonce(out *[32]byte) bool { *out = n; return true }

// memTransport records the last frame handed to Send so the demo's
// authenticator stand-in can react to it synchronously.
type memTransport struct{ last []byte }

func (t *memTransport) Send(_ context.Context, _ int, _, _ [6]byte, frame []byte) error {
	t.last = frame
	return nil
}

type logInstaller struct{}

func (logInstaller) InstallTK(_ context.Context, ifindex int, aa [6]byte, tk []byte, cipher domain.Cipher) error {
	log.Printf("rsnasim: install_tk ifindex=%d aa=%x cipher=%s tk=%s", ifindex, aa, cipher, hex.EncodeToString(tk))
	return nil
}

func (logInstaller) InstallGTK(_ context.Context, ifindex int, keyIndex uint8, gtk []byte, rsc [8]byte, cipher domain.Cipher) error {
	log.Printf("rsnasim: install_gtk ifindex=%d index=%d cipher=%s gtk=%s", ifindex, keyIndex, cipher, hex.EncodeToString(gtk))
	return nil
}

type logDeauth struct{}

func (logDeauth) Deauthenticate(_ context.Context, ifindex int, aa, spa [6]byte, reason uint16) error {
	log.Printf("rsnasim: deauthenticate ifindex=%d aa=%x spa=%x reason=%d", ifindex, aa, spa, reason)
	return nil
}

func main() {
	cfg := config.Load()

	shutdownTracer, err := telemetry.InitTracer("rsnasim", "1.0.0")
	if err != nil {
		log.Fatalf("rsnasim: tracer init failed: %v", err)
	}
	defer shutdownTracer(context.Background())

	handshake.InitMetrics()
	go serveObservability(cfg.Debug)

	runHandshake(cfg)
}

// serveObservability exposes /metrics and /healthz over HTTP, routed with
// gorilla/mux and wrapped in an OpenTelemetry span per request.
func serveObservability(debug bool) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	handler := otelhttp.NewHandler(r, "rsnasim-observability")
	if debug {
		log.Printf("rsnasim: observability server listening on :9300")
	}
	if err := http.ListenAndServe(":9300", handler); err != nil && err != http.ErrServerClosed {
		log.Printf("rsnasim: observability server exited: %v", err)
	}
}

// runHandshake plays both ends of one 4-Way Handshake and one Group Key
// Handshake (CCMP/PSK, hand-picked ANonce/GTK so the transcript is
// reproducible), then prints the negotiated parameters.
func runHandshake(cfg *config.Config) {
	pmk := make([]byte, 32)
	for i := range pmk {
		pmk[i] = 0x0a
	}
	spa := cfg.SPA
	aa := cfg.AA

	var aNonce [32]byte
	for i := range aNonce {
		aNonce[i] = byte(i + 1)
	}

	ownRSN, err := ie.BuildRSNE(&domain.RSNInfo{
		Version:         1,
		GroupCipher:     domain.CipherCCMP,
		PairwiseCiphers: []domain.Cipher{domain.CipherCCMP},
		AKMs:            []domain.AKM{domain.AKMPSK},
	})
	if err != nil {
		log.Fatalf("rsnasim: build own RSNE failed: %v", err)
	}
	beaconRSN := ownRSN // AP advertises the same RSNE the STA will echo back

	transport := &memTransport{}
	sm := handshake.New(handshake.Config{
		Ifindex:        1,
		AA:             aa,
		SPA:            spa,
		PMK:            pmk,
		PairwiseCipher: domain.CipherCCMP,
		GroupCipher:    domain.CipherCCMP,
		AKM:            domain.AKMPSK,
		OwnRSNBytes:    ownRSN,
		BeaconRSNBytes: beaconRSN,
		Debug:          cfg.Debug,
	}, ports.Capabilities{
		Transport: transport,
		Nonce:     fixedNonce(mustDrawNonce()),
		Installer: logInstaller{},
		Deauth:    logDeauth{},
	})

	ctx := context.Background()

	msg1 := authBuildMessage1(1, aNonce)
	if err := sm.HandleFrame(ctx, msg1); err != nil {
		log.Fatalf("rsnasim: message 1/4 rejected: %v", err)
	}
	msg2 := transport.last
	fmt.Printf("supplicant sent message 2/4 (%d bytes)\n", len(msg2))

	gtk := make([]byte, 16)
	for i := range gtk {
		gtk[i] = 0x5a
	}
	aPTK := recomputeAuthenticatorPTK(pmk, spa, aa, aNonce, msg2)
	msg3 := authBuildMessage3(2, aNonce, aPTK, beaconRSN, gtk, 1)
	if err := sm.HandleFrame(ctx, msg3); err != nil {
		log.Fatalf("rsnasim: message 3/4 rejected: %v", err)
	}
	fmt.Printf("supplicant sent message 4/4 (%d bytes); pairwise cipher=%s group cipher=%s\n",
		len(transport.last), sm.PairwiseCipher(), sm.GroupCipher())

	newGTK := make([]byte, 16)
	for i := range newGTK {
		newGTK[i] = 0xa5
	}
	group1 := authBuildGroup1(3, aPTK, newGTK, 2)
	if err := sm.HandleFrame(ctx, group1); err != nil {
		log.Fatalf("rsnasim: group 1/2 rejected: %v", err)
	}
	fmt.Printf("supplicant sent group 2/2; final state=%s\n", sm.State())

	time.Sleep(200 * time.Millisecond) // let the batch span exporter flush
}

func mustDrawNonce() [32]byte {
	var b [32]byte
	if !(nonce.Source{}).Nonce(&b) {
		log.Fatalf("rsnasim: system randomness source failed")
	}
	return b
}

// recomputeAuthenticatorPTK derives the same PTK the supplicant did, by
// parsing the SNonce back out of its message 2/4 reply. This is the
// authenticator's half of the derivation, played here purely for the
// demo; it is not part of the SM itself.
func recomputeAuthenticatorPTK(pmk []byte, spa, aa [6]byte, aNonce [32]byte, msg2 []byte) *crypto.PTK {
	kf, err := eapol.Parse(msg2)
	if err != nil {
		log.Fatalf("rsnasim: failed to parse message 2/4: %v", err)
	}
	return crypto.DeriveKeys(pmk, spa[:], aa[:], aNonce[:], kf.Nonce[:], 16, false)
}

func authBuildMessage1(replay uint64, aNonce [32]byte) []byte {
	f := &eapol.KeyFrame{
		DescriptorType: eapol.DescriptorTypeIEEE80211,
		Info:           eapol.KeyInfo(2) | eapol.KeyInfoType | eapol.KeyInfoACK,
		ReplayCounter:  replay,
		Nonce:          aNonce,
	}
	return eapol.WrapHeader(eapol.ProtocolVersion2004, f.Marshal())
}

func authBuildMessage3(replay uint64, aNonce [32]byte, ptk *crypto.PTK, rsn, gtk []byte, gtkIndex uint8) []byte {
	keyData := append(append([]byte{}, rsn...), eapol.BuildGTKKDE(&eapol.GTK{KeyIndex: gtkIndex, Key: gtk})...)
	f := &eapol.KeyFrame{
		DescriptorType: eapol.DescriptorTypeIEEE80211,
		Info:           eapol.KeyInfo(2) | eapol.KeyInfoType | eapol.KeyInfoACK | eapol.KeyInfoMIC | eapol.KeyInfoInstall | eapol.KeyInfoSecure,
		ReplayCounter:  replay,
		Nonce:          aNonce,
		Data:           keyData,
	}
	signAuthFrame(f, ptk.KCK)
	return eapol.WrapHeader(eapol.ProtocolVersion2004, f.Marshal())
}

func authBuildGroup1(replay uint64, ptk *crypto.PTK, gtk []byte, gtkIndex uint8) []byte {
	keyData := eapol.BuildGTKKDE(&eapol.GTK{KeyIndex: gtkIndex, Key: gtk})
	f := &eapol.KeyFrame{
		DescriptorType: eapol.DescriptorTypeIEEE80211,
		Info:           eapol.KeyInfo(2) | eapol.KeyInfoACK | eapol.KeyInfoMIC | eapol.KeyInfoSecure,
		ReplayCounter:  replay,
		Data:           keyData,
	}
	signAuthFrame(f, ptk.KCK)
	return eapol.WrapHeader(eapol.ProtocolVersion2004, f.Marshal())
}

func signAuthFrame(f *eapol.KeyFrame, kck []byte) {
	wire := eapol.WrapHeader(eapol.ProtocolVersion2004, f.Marshal())
	mic, err := eapol.ComputeMIC(2, kck, wire)
	if err != nil {
		log.Fatalf("rsnasim: MIC computation failed: %v", err)
	}
	f.MIC = mic
}
