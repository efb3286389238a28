package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/verify"
)

// FreeListLen returns the number of free-list entries. It is 1 right after Init.
func (a *Allocator) FreeListLen() int {
	n := 0
	a.each(func(heap.Block) bool {
		n++
		return true
	})
	return n
}

// FreeSizes returns the usable sizes of the free-list entries in list order.
func (a *Allocator) FreeSizes() []int {
	var sizes []int
	a.each(func(b heap.Block) bool {
		sizes = append(sizes, int(b.Size()))
		return true
	})
	return sizes
}

// Check verifies the arena layout, boundary tags, free-list links and
// membership. Under CoalesceImmediate it also verifies that no two free
// blocks are adjacent.
func (a *Allocator) Check() error {
	if err := verify.AllInvariants(a.arena, a.head); err != nil {
		return err
	}
	if a.cfg.Coalesce == CoalesceImmediate {
		return verify.NoAdjacentFree(a.arena)
	}
	return nil
}

// MustCheck panics when Check fails. A broken arena cannot be repaired.
func (a *Allocator) MustCheck() {
	if err := a.Check(); err != nil {
		panic(fmt.Sprintf("alloc: heap corruption: %v", err))
	}
}
