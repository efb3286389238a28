package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// insert pushes b on the list front.
func (a *Allocator) insert(b heap.Block) {
	b.SetPrev(format.NilOffset)
	b.SetNext(a.head)
	if a.head != format.NilOffset {
		a.arena.At(a.head).SetPrev(b.Off())
	}
	a.head = b.Off()
}

// detach unlinks b and resets its links. b must be on the list.
func (a *Allocator) detach(b heap.Block) {
	prev, next := b.Prev(), b.Next()
	if prev == format.NilOffset {
		a.head = next
	} else {
		a.arena.At(prev).SetNext(next)
	}
	if next != format.NilOffset {
		a.arena.At(next).SetPrev(prev)
	}
	b.SetNext(format.NilOffset)
	b.SetPrev(format.NilOffset)
}

// firstFit returns the first list entry with at least usable bytes.
func (a *Allocator) firstFit(usable uint32) (heap.Block, bool) {
	for off := a.head; off != format.NilOffset; {
		a.stats.SearchSteps++
		b := a.arena.At(off)
		if b.Size() >= usable {
			return b, true
		}
		off = b.Next()
	}
	return heap.Block{}, false
}

// each calls fn for every list entry in order until fn returns false.
func (a *Allocator) each(fn func(heap.Block) bool) {
	if !a.arena.Initialized() {
		return
	}
	for off := a.head; off != format.NilOffset; {
		b := a.arena.At(off)
		if !fn(b) {
			return
		}
		off = b.Next()
	}
}
