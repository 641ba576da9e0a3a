package ie

import (
	"github.com/go-rsna/rsna/internal/core/domain"
)

// TagSupportedRates and TagExtendedSupportedRates are the two elements
// that together carry a BSS's rate set (802.11 §9.4.2.3/.13); a station
// advertising more than 8 rates splits the list across both.
const (
	TagSupportedRates         = 1
	TagExtendedSupportedRates = 50
)

// Rate is one supported-rate entry: the raw 500 kb/s units value plus
// whether the basic-rate bit (bit 7) was set.
type Rate struct {
	Mbps  float64
	Basic bool
}

// ParseRates decodes a Supported Rates or Extended Supported Rates
// element into its constituent rates.
func ParseRates(b []byte) ([]Rate, error) {
	if len(b) < 2 {
		return nil, domain.ErrProto
	}
	tag := b[0]
	if tag != TagSupportedRates && tag != TagExtendedSupportedRates {
		return nil, domain.ErrProto
	}
	n := int(b[1])
	if 2+n > len(b) {
		return nil, domain.ErrMsgSize
	}
	v := b[2 : 2+n]
	rates := make([]Rate, len(v))
	for i, raw := range v {
		rates[i] = Rate{
			Mbps:  float64(raw&0x7f) * 0.5,
			Basic: raw&0x80 != 0,
		}
	}
	return rates, nil
}

// BuildRates encodes rates as a Supported Rates element if it holds 8 or
// fewer entries, or an Extended Supported Rates element otherwise.
func BuildRates(rates []Rate) ([]byte, error) {
	tag := uint8(TagSupportedRates)
	if len(rates) > 8 {
		tag = TagExtendedSupportedRates
	}
	if len(rates) > 255 {
		return nil, domain.ErrMsgSize
	}
	b := NewBuilder()
	if err := b.Next(tag); err != nil {
		return nil, err
	}
	if err := b.SetLength(len(rates)); err != nil {
		return nil, err
	}
	data := b.Data()
	for i, r := range rates {
		raw := uint8(r.Mbps/0.5 + 0.5)
		if r.Basic {
			raw |= 0x80
		}
		data[i] = raw
	}
	return b.Finalize(), nil
}
