package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// coalesce merges the just-freed block b with free physical neighbors and
// returns the merged block. b is not on the list; merged neighbors are
// detached. The merged block's successor gets fresh back tags.
func (a *Allocator) coalesce(b heap.Block) heap.Block {
	// The sentinel is never free, so next is always a real block here.
	if next := a.arena.After(b); next.Free() {
		a.detach(next)
		b.SetSize(b.Size() + format.HeaderSize + next.Size())
		a.arena.After(b).SetBackSize(b.Size())
		a.stats.CoalesceForward++
		if logAlloc {
			a.logger().Debug("alloc: coalesce forward", "block", b.Off(), "absorbed", next.Off(), "size", b.Size())
		}
	}

	if b.BackFree() {
		if prev, ok := a.arena.Before(b); ok {
			a.detach(prev)
			prev.SetSize(prev.Size() + format.HeaderSize + b.Size())
			succ := a.arena.After(prev)
			succ.SetBackSize(prev.Size())
			succ.SetBackFree(true)
			a.stats.CoalesceBackward++
			if logAlloc {
				a.logger().Debug("alloc: coalesce backward", "block", prev.Off(), "absorbed", b.Off(), "size", prev.Size())
			}
			b = prev
		}
	}
	return b
}
