package heap

import "github.com/joshuapare/heapkit/internal/format"

// Block is a view of one block header inside the arena buffer. It is a small
// value; reads and writes go straight to the underlying bytes.
type Block struct {
	data []byte
	off  uint32
}

// Off returns the offset of the block header.
func (b Block) Off() uint32 { return b.off }

// DataOff returns the offset of the block's data segment.
func (b Block) DataOff() uint32 { return b.off + format.HeaderSize }

func (b Block) Size() uint32     { return format.ReadU32(b.data, int(b.off)+format.SizeOffset) }
func (b Block) BackSize() uint32 { return format.ReadU32(b.data, int(b.off)+format.BackSizeOffset) }
func (b Block) Free() bool       { return format.ReadFlag(b.data, int(b.off)+format.FreeOffset) }
func (b Block) BackFree() bool   { return format.ReadFlag(b.data, int(b.off)+format.BackFreeOffset) }
func (b Block) Next() uint32     { return format.ReadU32(b.data, int(b.off)+format.NextOffset) }
func (b Block) Prev() uint32     { return format.ReadU32(b.data, int(b.off)+format.PrevOffset) }

func (b Block) SetSize(v uint32)     { format.PutU32(b.data, int(b.off)+format.SizeOffset, v) }
func (b Block) SetBackSize(v uint32) { format.PutU32(b.data, int(b.off)+format.BackSizeOffset, v) }
func (b Block) SetFree(v bool)       { format.PutFlag(b.data, int(b.off)+format.FreeOffset, v) }
func (b Block) SetBackFree(v bool)   { format.PutFlag(b.data, int(b.off)+format.BackFreeOffset, v) }
func (b Block) SetNext(v uint32)     { format.PutU32(b.data, int(b.off)+format.NextOffset, v) }
func (b Block) SetPrev(v uint32)     { format.PutU32(b.data, int(b.off)+format.PrevOffset, v) }

// IsSentinel reports whether this is the zero-size block ending the arena.
func (b Block) IsSentinel() bool { return b.Size() == 0 }

// End returns the offset of the physically following block.
func (b Block) End() uint32 { return b.off + format.HeaderSize + b.Size() }

// Data returns the data segment. Its capacity is clipped to the block so an
// append can never spill into the next header.
func (b Block) Data() []byte {
	start := int(b.DataOff())
	end := start + int(b.Size())
	return b.data[start:end:end]
}

// Header returns a decoded copy of the header fields.
func (b Block) Header() format.Header {
	return format.Header{
		Offset:   int(b.off),
		Size:     b.Size(),
		BackSize: b.BackSize(),
		Free:     b.Free(),
		BackFree: b.BackFree(),
		Next:     b.Next(),
		Prev:     b.Prev(),
	}
}
