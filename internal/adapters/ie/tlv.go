// Package ie implements the 802.11 Information Element codec: generic
// TLV iteration and construction, plus the RSNE, WPA-IE, BSS Load,
// Supported Rates, and Mobility Domain element parsers/builders. Every
// function here is pure: no state, no I/O, and the iterator borrows
// slices over the caller's buffer rather than allocating.
package ie

import (
	"github.com/go-rsna/rsna/internal/core/domain"
)

// Iterator walks a sequence of (tag uint8, length uint8, value []byte)
// elements without allocating: a cursor plus the borrowed slice of the
// current element.
type Iterator struct {
	buf []byte
	pos int

	tag  uint8
	data []byte
}

// NewIterator initializes an Iterator over buf. buf is never copied; every
// slice the iterator yields is a sub-slice of it.
func NewIterator(buf []byte) *Iterator {
	return &Iterator{buf: buf}
}

// Next advances to the next element. It returns false once there are no
// more bytes to consume or the next element is malformed (tag+length
// would read past the end of buf) — in the latter case iteration ends
// without yielding a partial element, and observable state (Tag/Value) is
// unchanged from the last successful Next.
func (it *Iterator) Next() bool {
	if it.pos+2 > len(it.buf) {
		return false
	}
	tag := it.buf[it.pos]
	length := int(it.buf[it.pos+1])
	start := it.pos + 2
	if start+length > len(it.buf) {
		return false
	}
	it.tag = tag
	it.data = it.buf[start : start+length]
	it.pos = start + length
	return true
}

// Tag returns the tag of the current element.
func (it *Iterator) Tag() uint8 { return it.tag }

// Length returns the length of the current element's value.
func (it *Iterator) Length() int { return len(it.data) }

// Value returns a borrowed slice over the current element's value. The
// slice is only valid as long as the backing buffer passed to NewIterator
// is; callers that need to retain it past the iteration must copy it.
func (it *Iterator) Value() []byte { return it.data }

// Recurse reinterprets the current element's value as a nested TLV
// stream, used for vendor IEs that embed sub-elements.
func (it *Iterator) Recurse() *Iterator {
	return NewIterator(it.data)
}

// Each is a convenience wrapper for simple scans; it calls fn for every
// well-formed element and stops at the first malformed one.
func Each(buf []byte, fn func(tag uint8, value []byte)) {
	it := NewIterator(buf)
	for it.Next() {
		fn(it.Tag(), it.Value())
	}
}

// Find returns the value of the first element with the given tag, or nil
// with ok=false if none matches.
func Find(buf []byte, tag uint8) (value []byte, ok bool) {
	it := NewIterator(buf)
	for it.Next() {
		if it.Tag() == tag {
			return it.Value(), true
		}
	}
	return nil, false
}

const (
	defaultBuilderSize = 256
	headerLen          = 2
)

// Builder constructs a TLV element sequence over a fixed backing buffer.
// The zero Builder is not usable; call NewBuilder.
type Builder struct {
	buf    []byte
	pos    int
	tag    int // -1 once no element has been started
	length int
	parent *Builder
}

// NewBuilder allocates a Builder with the default 256-byte capacity (a
// 2-byte header plus the maximum 255-byte IE body).
func NewBuilder() *Builder {
	return NewBuilderSize(defaultBuilderSize)
}

// NewBuilderSize allocates a Builder with an explicit backing capacity.
func NewBuilderSize(size int) *Builder {
	return &Builder{buf: make([]byte, size), tag: -1}
}

func (b *Builder) writeHeader() {
	b.buf[b.pos] = byte(b.tag)
	b.buf[b.pos+1] = byte(b.length)
}

// SetLength reserves n bytes of payload for the current element, failing
// if that would overflow the builder's capacity. It also propagates the
// new total size up through any parent builder created via Recurse.
func (b *Builder) SetLength(n int) error {
	newPos := b.pos + headerLen + n
	if newPos > len(b.buf) {
		return domain.ErrMsgSize
	}
	if b.parent != nil {
		if err := b.parent.SetLength(newPos); err != nil {
			return err
		}
	}
	b.length = n
	return nil
}

// Next commits the current element (if any) and starts a new one with the
// given tag.
func (b *Builder) Next(tag uint8) error {
	if b.tag != -1 {
		b.writeHeader()
		b.pos += headerLen + b.length
	}
	if err := b.SetLength(0); err != nil {
		return err
	}
	b.tag = int(tag)
	return nil
}

// Data returns the writable payload region for the current element, sized
// to whatever was last passed to SetLength.
func (b *Builder) Data() []byte {
	start := b.pos + headerLen
	return b.buf[start : start+b.length]
}

// Recurse opens a nested Builder over the current element's payload
// region; finalizing it (or any further Next/SetLength on it) updates
// this builder's length automatically.
func (b *Builder) Recurse() *Builder {
	start := b.pos + headerLen
	return &Builder{buf: b.buf[start:], tag: -1, parent: b}
}

// Finalize writes the header for the last open element and returns the
// total bytes written so far, which for a Recurse()'d child is relative
// to the parent's payload start.
func (b *Builder) Finalize() []byte {
	if b.tag != -1 {
		b.writeHeader()
	}
	total := b.pos + headerLen + b.length
	return b.buf[:total]
}
