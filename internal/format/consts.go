// Package format houses the byte layout of the arena: block header field
// offsets, size constants, alignment and little-endian accessors. Higher-level
// packages only touch arena bytes through the helpers defined here.
package format

// Block header layout (little-endian). Offsets are relative to the start of
// the block header:
//
//	0x00  u32  size       usable data-segment size, header excluded
//	0x04  u32  back size  usable size of the physical predecessor
//	0x08  u16  free       1 when the block is free
//	0x0A  u16  back free  1 when the physical predecessor is free
//	0x0C  u32  next       free-list successor (NilOffset when none)
//	0x10  u32  prev       free-list predecessor (NilOffset when none)
//	0x14  u32  reserved   always zero, pads the header to Align
const (
	SizeOffset     = 0x00
	BackSizeOffset = 0x04
	FreeOffset     = 0x08
	BackFreeOffset = 0x0A
	NextOffset     = 0x0C
	PrevOffset     = 0x10
	ReservedOffset = 0x14

	// HeaderSize is the number of bytes preceding every data segment.
	HeaderSize = 0x18
)

const (
	// Align is the alignment quantum for block sizes and data segments.
	Align = 8

	// AlignMask is the bitmask used for aligning to Align (Align - 1).
	AlignMask = Align - 1

	// MinSize is the smallest usable size a block may have. Requests below
	// it are rounded up, and splits never leave a remainder smaller than it.
	MinSize = 8

	// DefaultCapacity is the arena size used when no capacity is configured.
	DefaultCapacity = 64 * 1024

	// MinCapacity fits one minimal block plus the sentinel.
	MinCapacity = 2*HeaderSize + MinSize

	// MaxCapacity keeps every offset below NilOffset and within int32.
	MaxCapacity = 1<<31 - Align

	// NilOffset marks an absent free-list link.
	NilOffset = 0xFFFFFFFF
)

// Flag values stored in the u16 free / back-free fields.
const (
	FlagUsed = 0
	FlagFree = 1
)
