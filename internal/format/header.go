package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Header is a decoded copy of a block header.
type Header struct {
	Offset   int    // Offset of the header within the arena
	Size     uint32 // Usable data-segment size
	BackSize uint32 // Usable size of the physical predecessor
	Free     bool
	BackFree bool
	Next     uint32 // Free-list successor or NilOffset
	Prev     uint32 // Free-list predecessor or NilOffset
}

// IsSentinel reports whether the header terminates the physical chain.
func (h Header) IsSentinel() bool { return h.Size == 0 }

// DataOffset returns the offset of the data segment that follows the header.
func (h Header) DataOffset() int { return h.Offset + HeaderSize }

// End returns the offset of the physically following header.
func (h Header) End() int { return h.Offset + HeaderSize + int(h.Size) }

// ParseHeader decodes the header stored at off.
func ParseHeader(b []byte, off int) (Header, error) {
	if !buf.Has(b, off, HeaderSize) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	if !IsAligned(off) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrMisaligned)
	}
	return Header{
		Offset:   off,
		Size:     ReadU32(b, off+SizeOffset),
		BackSize: ReadU32(b, off+BackSizeOffset),
		Free:     ReadFlag(b, off+FreeOffset),
		BackFree: ReadFlag(b, off+BackFreeOffset),
		Next:     ReadU32(b, off+NextOffset),
		Prev:     ReadU32(b, off+PrevOffset),
	}, nil
}

// PutHeader writes every field of h at h.Offset, zeroing the reserved word.
func PutHeader(b []byte, h Header) error {
	if !buf.Has(b, h.Offset, HeaderSize) {
		return fmt.Errorf("header at %d: %w", h.Offset, ErrTruncated)
	}
	off := h.Offset
	PutU32(b, off+SizeOffset, h.Size)
	PutU32(b, off+BackSizeOffset, h.BackSize)
	PutFlag(b, off+FreeOffset, h.Free)
	PutFlag(b, off+BackFreeOffset, h.BackFree)
	PutU32(b, off+NextOffset, h.Next)
	PutU32(b, off+PrevOffset, h.Prev)
	PutU32(b, off+ReservedOffset, 0)
	return nil
}

// NextHeader decodes the header at off and returns it together with the offset
// of its physical successor. A sentinel returns its own offset as next.
func NextHeader(b []byte, off int) (Header, int, error) {
	h, err := ParseHeader(b, off)
	if err != nil {
		return Header{}, 0, err
	}
	if h.IsSentinel() {
		return h, off, nil
	}
	next := h.End()
	if !buf.Has(b, next, HeaderSize) {
		return Header{}, 0, fmt.Errorf("header at %d: size %d runs past arena (len=%d): %w",
			off, h.Size, len(b), ErrTruncated)
	}
	return h, next, nil
}
