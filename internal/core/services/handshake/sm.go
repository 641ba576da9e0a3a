// Package handshake drives the 4-Way Handshake and Group Key Handshake
// from the supplicant side (IEEE 802.11-2016 §12.7.6, §12.7.7). Transport,
// nonce generation, and key installation are injected per instance via
// ports.Capabilities, so every effect the state machine produces is
// substitutable in tests.
package handshake

import (
	"bytes"
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/go-rsna/rsna/internal/adapters/eapol"
	"github.com/go-rsna/rsna/internal/adapters/ie"
	"github.com/go-rsna/rsna/internal/core/crypto"
	"github.com/go-rsna/rsna/internal/core/domain"
	"github.com/go-rsna/rsna/internal/core/ports"
)

// State is the SM's coarse lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePTKStart
	StatePTKGroup
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePTKStart:
		return "ptk-start"
	case StatePTKGroup:
		return "ptk-group"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 802.11 reason codes used by the deauthenticate callback.
const (
	ReasonUnspecified     uint16 = 1
	ReasonInvalidIE       uint16 = 17
)

// Config carries the per-association parameters an SM is constructed
// with: addressing, the PMK, the negotiated suites, and the two RSN
// element byte strings the handshake needs verbatim (the IE echoed as
// message 2/4 key-data, and the beacon IE compared against message 3/4's).
type Config struct {
	Ifindex         int
	AA, SPA         [6]byte
	PMK             []byte
	PairwiseCipher  domain.Cipher
	GroupCipher     domain.Cipher
	AKM             domain.AKM
	OwnRSNBytes     []byte // sent verbatim as message 2/4 key-data
	BeaconRSNBytes  []byte // compared verbatim against message 3/4's RSN IE
	Debug           bool
}

// SM is one 4-Way/Group Key Handshake instance. It is not safe for
// concurrent use; the caller's single-threaded event loop must be the
// only caller of HandleFrame for a given SM.
type SM struct {
	id     uuid.UUID
	cfg    Config
	caps   ports.Capabilities
	state  State

	protocolVersion   uint8
	descriptorVersion uint8
	descriptorType    uint8

	aNonce [32]byte
	sNonce [32]byte
	ptk    *crypto.PTK

	lastRx    uint64
	hasLastRx bool

	msg3Counter  uint64
	hasMsg3Rx    bool
	cachedMsg4   []byte

	groupCounter   uint64
	hasGroupRx     bool
	cachedGroup2   []byte

	installedTK bool
	startedAt   time.Time
}

func (s *SM) ifindexLabel() string { return strconv.Itoa(s.cfg.Ifindex) }

// New constructs an idle SM from cfg and caps. PMK is retained by
// reference; callers that need to zeroize their own copy should do so
// only after Cancel/Zeroize has run.
func New(cfg Config, caps ports.Capabilities) *SM {
	return &SM{
		id:    uuid.New(),
		cfg:   cfg,
		caps:  caps,
		state: StateIdle,
	}
}

// ID returns the session identifier used to tag logs, metrics, and spans
// for this association.
func (s *SM) ID() uuid.UUID { return s.id }

// State reports the SM's current lifecycle position.
func (s *SM) State() State { return s.state }

// PairwiseCipher, GroupCipher, and OwnRSNBytes expose the negotiated
// parameters for diagnostics once a handshake has run.
func (s *SM) PairwiseCipher() domain.Cipher { return s.cfg.PairwiseCipher }
func (s *SM) GroupCipher() domain.Cipher    { return s.cfg.GroupCipher }
func (s *SM) OwnRSNBytes() []byte           { return s.cfg.OwnRSNBytes }

// Zeroize clears the SM's secret material: PMK, PTK parts, and both
// nonces. Call on destroy or cancellation.
func (s *SM) Zeroize() {
	zero(s.cfg.PMK)
	if s.ptk != nil {
		zero(s.ptk.KCK)
		zero(s.ptk.KEK)
		zero(s.ptk.TK)
	}
	for i := range s.aNonce {
		s.aNonce[i] = 0
	}
	for i := range s.sNonce {
		s.sNonce[i] = 0
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// HandleFrame parses raw as an 802.1X EAPoL-Key frame and dispatches it
// to the matching message handler. Frames that do not match any of the
// six message-class flag patterns are rejected with ErrProto. HandleFrame
// is idempotent for repeated inbound frames at the same replay counter:
// a retransmitted peer message is answered with the cached reply.
func (s *SM) HandleFrame(ctx context.Context, raw []byte) error {
	if s.state == StateFailed || s.state == StateDone {
		return domain.ErrProto
	}
	if len(raw) < 1 {
		return domain.ErrMsgSize
	}
	protocolVersion := raw[0]

	kf, err := eapol.Parse(raw)
	if err != nil {
		return err
	}

	switch {
	case eapol.VerifyPTK1of4(kf.Info):
		ctx, span := s.traceFrame(ctx, "rsna.handshake.message1")
		defer span.End()
		return s.handleMessage1(ctx, protocolVersion, kf)
	case eapol.VerifyPTK3of4(kf.Info):
		ctx, span := s.traceFrame(ctx, "rsna.handshake.message3")
		defer span.End()
		return s.handleMessage3(ctx, protocolVersion, kf)
	case eapol.VerifyGTK1of2(kf.Info):
		ctx, span := s.traceFrame(ctx, "rsna.handshake.group1")
		defer span.End()
		return s.handleGroup1(ctx, protocolVersion, kf)
	default:
		return domain.ErrProto
	}
}

// handleMessage1 accepts message 1/4, derives the PTK, and replies with
// message 2/4 carrying the SNonce and the supplicant's own RSN element.
func (s *SM) handleMessage1(ctx context.Context, protocolVersion uint8, kf *eapol.KeyFrame) error {
	if s.hasLastRx && kf.ReplayCounter <= s.lastRx {
		s.logf("message 1/4 dropped: replay counter %d <= last_rx %d", kf.ReplayCounter, s.lastRx)
		ReplayDrops.WithLabelValues(s.ifindexLabel()).Inc()
		return nil
	}
	HandshakesStarted.WithLabelValues(s.ifindexLabel()).Inc()
	s.startedAt = time.Now()

	var sNonce [32]byte
	if !s.caps.Nonce.Nonce(&sNonce) {
		return s.fail(ctx, ReasonUnspecified)
	}

	s.protocolVersion = protocolVersion
	s.descriptorVersion = kf.Info.DescriptorVersion()
	s.descriptorType = kf.DescriptorType
	s.aNonce = kf.Nonce
	s.sNonce = sNonce

	tkLen := crypto.TKLen(s.cfg.PairwiseCipher == domain.CipherTKIP)
	s.ptk = crypto.DeriveKeys(s.cfg.PMK, s.cfg.SPA[:], s.cfg.AA[:], s.aNonce[:], s.sNonce[:], tkLen, s.cfg.AKM.SHA256())

	info := eapol.KeyInfo(s.descriptorVersion) | eapol.KeyInfoType | eapol.KeyInfoMIC
	frame := &eapol.KeyFrame{
		DescriptorType: s.descriptorType,
		Info:           info,
		ReplayCounter:  kf.ReplayCounter,
		Nonce:          s.sNonce,
		Data:           s.cfg.OwnRSNBytes,
	}
	if err := s.sign(frame); err != nil {
		return err
	}
	if err := s.send(ctx, frame); err != nil {
		s.logf("message 2/4 send failed: %v", err)
	}

	s.lastRx, s.hasLastRx = kf.ReplayCounter, true
	s.state = StatePTKStart
	return nil
}

// handleMessage3 verifies message 3/4 (counter, ANonce, MIC, and the
// echoed RSN element), replies with 4/4, and installs the pairwise key
// exactly once.
func (s *SM) handleMessage3(ctx context.Context, protocolVersion uint8, kf *eapol.KeyFrame) error {
	if s.hasMsg3Rx && kf.ReplayCounter == s.msg3Counter && s.cachedMsg4 != nil {
		s.logf("message 3/4 retransmission at counter %d: resending cached 4/4", kf.ReplayCounter)
		return s.caps.Transport.Send(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, s.cachedMsg4)
	}
	if kf.ReplayCounter <= s.lastRx {
		s.logf("message 3/4 dropped: replay counter %d <= last_rx %d", kf.ReplayCounter, s.lastRx)
		ReplayDrops.WithLabelValues(s.ifindexLabel()).Inc()
		return nil
	}
	if kf.Nonce != s.aNonce {
		return s.fail(ctx, ReasonUnspecified)
	}

	wire := eapol.WrapHeader(protocolVersion, kf.Marshal())
	ok, err := eapol.VerifyMIC(s.descriptorVersion, s.ptk.KCK, wire)
	if err != nil || !ok {
		s.logf("message 3/4 dropped: MIC verification failed")
		MICFailures.WithLabelValues(s.ifindexLabel()).Inc()
		return nil
	}

	data := kf.Data
	if kf.Info.IsSet(eapol.KeyInfoEncryptedKeyData) {
		data, err = eapol.DecryptKeyData(s.descriptorVersion, s.ptk.KEK, kf.IV[:], kf.Data)
		if err != nil {
			return s.fail(ctx, ReasonUnspecified)
		}
	}

	if peerRSN, ok := rawElement(data, ie.TagRSN); !ok || !bytes.Equal(peerRSN, s.cfg.BeaconRSNBytes) {
		var got []byte
		if ok {
			got = peerRSN
		}
		s.state = StateFailed
		HandshakesFailed.WithLabelValues(s.ifindexLabel(), strconv.Itoa(int(ReasonInvalidIE))).Inc()
		_ = s.caps.Deauth.Deauthenticate(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, ReasonInvalidIE)
		return &domain.DowngradeError{Beacon: s.cfg.BeaconRSNBytes, KeyData: got}
	}

	info := eapol.KeyInfo(s.descriptorVersion) | eapol.KeyInfoType | eapol.KeyInfoMIC | eapol.KeyInfoSecure
	reply := &eapol.KeyFrame{
		DescriptorType: s.descriptorType,
		Info:           info,
		ReplayCounter:  kf.ReplayCounter,
	}
	if err := s.sign(reply); err != nil {
		return err
	}
	replyWire := eapol.WrapHeader(s.protocolVersion, reply.Marshal())
	if err := s.caps.Transport.Send(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, replyWire); err != nil {
		s.logf("message 4/4 send failed: %v", err)
	}

	s.msg3Counter, s.hasMsg3Rx = kf.ReplayCounter, true
	s.cachedMsg4 = replyWire
	s.lastRx = kf.ReplayCounter

	if !s.installedTK {
		if err := s.caps.Installer.InstallTK(ctx, s.cfg.Ifindex, s.cfg.AA, s.ptk.TK, s.cfg.PairwiseCipher); err != nil {
			s.logf("install_tk failed: %v", err)
		}
		s.installedTK = true
	}
	if gtk, err := eapol.ExtractGTKKDE(data); err == nil {
		if err := s.caps.Installer.InstallGTK(ctx, s.cfg.Ifindex, gtk.KeyIndex, gtk.Key, kf.RSC, s.cfg.GroupCipher); err != nil {
			s.logf("install_gtk failed: %v", err)
		}
	}

	s.state = StatePTKGroup
	return nil
}

// handleGroup1 verifies Group Key message 1/2, extracts the GTK from the
// encrypted key-data, replies with 2/2, and installs the group key.
func (s *SM) handleGroup1(ctx context.Context, protocolVersion uint8, kf *eapol.KeyFrame) error {
	if s.hasGroupRx && kf.ReplayCounter == s.groupCounter && s.cachedGroup2 != nil {
		s.logf("group 1/2 retransmission at counter %d: resending cached 2/2", kf.ReplayCounter)
		return s.caps.Transport.Send(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, s.cachedGroup2)
	}
	if kf.ReplayCounter <= s.lastRx {
		s.logf("group 1/2 dropped: replay counter %d <= last_rx %d", kf.ReplayCounter, s.lastRx)
		ReplayDrops.WithLabelValues(s.ifindexLabel()).Inc()
		return nil
	}

	wire := eapol.WrapHeader(protocolVersion, kf.Marshal())
	ok, err := eapol.VerifyMIC(s.descriptorVersion, s.ptk.KCK, wire)
	if err != nil || !ok {
		s.logf("group 1/2 dropped: MIC verification failed")
		MICFailures.WithLabelValues(s.ifindexLabel()).Inc()
		return nil
	}

	data := kf.Data
	if kf.Info.IsSet(eapol.KeyInfoEncryptedKeyData) {
		data, err = eapol.DecryptKeyData(s.descriptorVersion, s.ptk.KEK, kf.IV[:], kf.Data)
		if err != nil {
			return s.fail(ctx, ReasonUnspecified)
		}
	}
	gtk, err := eapol.ExtractGTKKDE(data)
	if err != nil {
		return s.fail(ctx, ReasonUnspecified)
	}

	info := eapol.KeyInfo(s.descriptorVersion) | eapol.KeyInfoMIC | eapol.KeyInfoSecure
	reply := &eapol.KeyFrame{
		DescriptorType: s.descriptorType,
		Info:           info,
		ReplayCounter:  kf.ReplayCounter,
	}
	if err := s.sign(reply); err != nil {
		return err
	}
	replyWire := eapol.WrapHeader(s.protocolVersion, reply.Marshal())
	if err := s.caps.Transport.Send(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, replyWire); err != nil {
		s.logf("group 2/2 send failed: %v", err)
	}

	s.groupCounter, s.hasGroupRx = kf.ReplayCounter, true
	s.cachedGroup2 = replyWire
	s.lastRx = kf.ReplayCounter

	if err := s.caps.Installer.InstallGTK(ctx, s.cfg.Ifindex, gtk.KeyIndex, gtk.Key, kf.RSC, s.cfg.GroupCipher); err != nil {
		s.logf("install_gtk failed: %v", err)
	}

	s.state = StateDone
	HandshakesCompleted.WithLabelValues(s.ifindexLabel()).Inc()
	if !s.startedAt.IsZero() {
		HandshakeDuration.WithLabelValues(s.ifindexLabel()).Observe(time.Since(s.startedAt).Seconds())
	}
	return nil
}

// fail transitions the SM to the failed state and invokes the
// deauthenticate capability.
func (s *SM) fail(ctx context.Context, reason uint16) error {
	s.state = StateFailed
	HandshakesFailed.WithLabelValues(s.ifindexLabel(), strconv.Itoa(int(reason))).Inc()
	_ = s.caps.Deauth.Deauthenticate(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, reason)
	return domain.ErrProto
}

// sign computes f's MIC in place under the current PTK and descriptor
// version, over the frame with the MIC field zeroed.
func (s *SM) sign(f *eapol.KeyFrame) error {
	wire := eapol.WrapHeader(s.protocolVersion, f.Marshal())
	mic, err := eapol.ComputeMIC(s.descriptorVersion, s.ptk.KCK, wire)
	if err != nil {
		return err
	}
	f.MIC = mic
	return nil
}

// send marshals and transmits f.
func (s *SM) send(ctx context.Context, f *eapol.KeyFrame) error {
	wire := eapol.WrapHeader(s.protocolVersion, f.Marshal())
	return s.caps.Transport.Send(ctx, s.cfg.Ifindex, s.cfg.AA, s.cfg.SPA, wire)
}

func (s *SM) logf(format string, args ...any) {
	if s.cfg.Debug {
		log.Printf("rsna: sm %s: "+format, append([]any{s.id}, args...)...)
	}
}

// rawElement re-derives the tag+length+value bytes of the first element
// matching tag, for byte-exact comparison against the RSN element observed
// in the beacon (downgrade detection). The reconstructed
// header is always canonical (length == len(value) <= 255), which matches
// any wire encoding a conforming parser would have produced.
func rawElement(buf []byte, tag uint8) ([]byte, bool) {
	value, ok := ie.Find(buf, tag)
	if !ok {
		return nil, false
	}
	out := make([]byte, 2+len(value))
	out[0] = tag
	out[1] = byte(len(value))
	copy(out[2:], value)
	return out, true
}
