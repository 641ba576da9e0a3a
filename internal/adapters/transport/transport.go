// Package transport provides the default ports.FrameTransport: an
// 802.1X PAE frame sender built on gopacket/pcap live injection.
package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/go-rsna/rsna/internal/core/domain"
)

// PcapTransport sends EAPoL-Key frames over a single live pcap handle.
type PcapTransport struct {
	handle *pcap.Handle
}

// NewPcapTransport opens iface for packet injection.
func NewPcapTransport(iface string) (*PcapTransport, error) {
	handle, err := pcap.OpenLive(iface, 1600, false, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("rsna: pcap open failed: %w", err)
	}
	return &PcapTransport{handle: handle}, nil
}

// Close releases the underlying pcap handle.
func (t *PcapTransport) Close() {
	t.handle.Close()
}

// Send implements ports.FrameTransport: it wraps frame (an already
// marshaled EAPoL-Key wire frame, header included) in an Ethernet header
// addressed spa->aa with EtherType 0x888E and injects it.
func (t *PcapTransport) Send(ctx context.Context, ifindex int, aa, spa [6]byte, frame []byte) error {
	wire, err := BuildEthernetFrame(aa, spa, frame)
	if err != nil {
		return err
	}
	return t.handle.WritePacketData(wire)
}

// BuildEthernetFrame wraps an EAPoL-Key wire frame in an Ethernet header
// addressed spa->aa with EtherType 0x888E.
func BuildEthernetFrame(aa, spa [6]byte, eapolFrame []byte) ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr(spa[:]),
		DstMAC:       net.HardwareAddr(aa[:]),
		EthernetType: layers.EthernetTypeEAPOL,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload(eapolFrame)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadMessage, err)
	}
	return buf.Bytes(), nil
}
