package heap

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/internal/format"
)

// BlockIterator walks the physical block chain from offset 0 to the sentinel.
type BlockIterator struct {
	a    *Arena
	off  int
	done bool
}

// Blocks returns an iterator over every non-sentinel block in address order.
func (a *Arena) Blocks() *BlockIterator {
	return &BlockIterator{a: a, done: a.data == nil}
}

// Next returns the next block, or io.EOF once the sentinel is reached. A
// header that runs past the arena, or a zero-size block anywhere other than
// the sentinel slot, is reported as an error.
func (it *BlockIterator) Next() (Block, error) {
	if it.done {
		return Block{}, io.EOF
	}

	data := it.a.data
	h, next, err := format.NextHeader(data, it.off)
	if err != nil {
		it.done = true
		return Block{}, fmt.Errorf("heap: walk: %w", err)
	}

	if h.IsSentinel() {
		it.done = true
		if it.off != len(data)-format.HeaderSize {
			return Block{}, fmt.Errorf("heap: zero-size block at %d before end of arena (len=%d)", it.off, len(data))
		}
		return Block{}, io.EOF
	}

	it.off = next
	return Block{data: data, off: uint32(h.Offset)}, nil
}
