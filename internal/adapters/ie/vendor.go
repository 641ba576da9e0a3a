package ie

import (
	"github.com/go-rsna/rsna/internal/core/domain"
)

// TagVendorSpecific is the 802.11 vendor-specific element tag (221).
const TagVendorSpecific = 221

// vendorChunk is the maximum payload carried by one vendor-specific element
// after its 4-byte OUI+type prefix: 255 (max IE body) − 3 (OUI) − 1 (type).
const vendorChunk = 251

// ConcatVendor matches every top-level VendorSpecific element in buf whose
// first 4 bytes equal oui‖typ, and returns the concatenation of everything
// after that prefix, preserving input order. It fails with ErrNotFound if
// no element matches.
func ConcatVendor(buf []byte, oui [3]byte, typ byte) ([]byte, error) {
	var out []byte
	matched := false
	it := NewIterator(buf)
	for it.Next() {
		if it.Tag() != TagVendorSpecific {
			continue
		}
		v := it.Value()
		if len(v) < 4 || v[0] != oui[0] || v[1] != oui[1] || v[2] != oui[2] || v[3] != typ {
			continue
		}
		matched = true
		out = append(out, v[4:]...)
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// EncapsulateVendor splits payload into 251-byte chunks and wraps each as a
// VendorSpecific element prefixed with oui‖typ, returning a contiguous
// sequence of fully-formed TLVs.
func EncapsulateVendor(payload []byte, oui [3]byte, typ byte) ([]byte, error) {
	n := len(payload)
	chunks := 1
	if n > 0 {
		chunks = (n + vendorChunk - 1) / vendorChunk
	}
	overhead := chunks * 6 // 2-byte TLV header + 4-byte OUI/type per chunk
	b := NewBuilderSize(n + overhead)

	pos := 0
	for i := 0; i < chunks; i++ {
		end := pos + vendorChunk
		if end > n {
			end = n
		}
		if err := b.Next(TagVendorSpecific); err != nil {
			return nil, err
		}
		if err := b.SetLength(4 + (end - pos)); err != nil {
			return nil, err
		}
		data := b.Data()
		data[0], data[1], data[2], data[3] = oui[0], oui[1], oui[2], typ
		copy(data[4:], payload[pos:end])
		pos = end
	}
	return b.Finalize(), nil
}
