package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes the first invariant violation found by a check.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants runs Layout, BoundaryTags, FreeList and Membership in order.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(a *heap.Arena, head uint32) error {
	if err := Layout(a); err != nil {
		return err
	}
	if err := BoundaryTags(a); err != nil {
		return err
	}
	if err := FreeList(a, head); err != nil {
		return err
	}
	if err := Membership(a, head); err != nil {
		return err
	}
	return nil
}

// walk visits every non-sentinel header in address order. It stops at the
// sentinel slot, or with an error when the chain leaves the arena.
func walk(kind string, a *heap.Arena, fn func(h format.Header, next int) error) error {
	if err := a.Ready(); err != nil {
		return &ValidationError{Type: kind, Message: err.Error(), Offset: -1}
	}
	data := a.Bytes()
	end := len(data) - format.HeaderSize

	off := 0
	for {
		h, next, err := format.NextHeader(data, off)
		if err != nil {
			return &ValidationError{
				Type:    kind,
				Message: fmt.Sprintf("physical walk broken: %v", err),
				Offset:  off,
			}
		}
		if h.IsSentinel() {
			if off != end {
				return &ValidationError{
					Type:    kind,
					Message: "zero-size block before end of arena",
					Offset:  off,
					Details: map[string]interface{}{"sentinel": end},
				}
			}
			return nil
		}
		if h.Size < format.MinSize {
			return &ValidationError{
				Type:    kind,
				Message: fmt.Sprintf("block size %d below minimum %d", h.Size, format.MinSize),
				Offset:  off,
			}
		}
		if err := fn(h, next); err != nil {
			return err
		}
		off = next
	}
}

// Layout validates the physical chain: every block is aligned, at least
// MinSize, inside the arena, and the walk ends on a non-free sentinel in the
// last header slot.
func Layout(a *heap.Arena) error {
	err := walk("Layout", a, func(h format.Header, _ int) error {
		if !format.IsAligned(int(h.Size)) {
			return &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("block size %d not a multiple of %d", h.Size, format.Align),
				Offset:  h.Offset,
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s := a.Sentinel()
	if s.Free() {
		return &ValidationError{
			Type:    "Layout",
			Message: "sentinel marked free",
			Offset:  int(s.Off()),
		}
	}
	return nil
}

// BoundaryTags validates that every block's back tags mirror its physical
// predecessor, and that the first block has clean back tags.
func BoundaryTags(a *heap.Arena) error {
	if err := a.Ready(); err != nil {
		return &ValidationError{Type: "BoundaryTags", Message: err.Error(), Offset: -1}
	}
	data := a.Bytes()

	first := a.First()
	if first.BackSize() != 0 || first.BackFree() {
		return &ValidationError{
			Type:    "BoundaryTags",
			Message: "first block has non-zero back tags",
			Offset:  0,
			Details: map[string]interface{}{
				"back_size": first.BackSize(),
				"back_free": first.BackFree(),
			},
		}
	}

	return walk("BoundaryTags", a, func(h format.Header, next int) error {
		succ, err := format.ParseHeader(data, next)
		if err != nil {
			return &ValidationError{Type: "BoundaryTags", Message: err.Error(), Offset: next}
		}
		if succ.BackSize != h.Size || succ.BackFree != h.Free {
			return &ValidationError{
				Type:    "BoundaryTags",
				Message: "back tags do not mirror predecessor",
				Offset:  next,
				Details: map[string]interface{}{
					"predecessor":    h.Offset,
					"size":           h.Size,
					"free":           h.Free,
					"back_size":      succ.BackSize,
					"back_free":      succ.BackFree,
					"successor_free": succ.Free,
				},
			}
		}
		return nil
	})
}

// FreeList validates the list starting at head: every entry is an in-bounds,
// aligned, non-sentinel header marked free whose prev link points at the
// entry before it, and the list has no cycle.
func FreeList(a *heap.Arena, head uint32) error {
	_, err := listEntries(a, head)
	return err
}

func listEntries(a *heap.Arena, head uint32) (map[uint32]struct{}, error) {
	if err := a.Ready(); err != nil {
		return nil, &ValidationError{Type: "FreeList", Message: err.Error(), Offset: -1}
	}
	seen := make(map[uint32]struct{})
	sentinel := a.SentinelOffset()

	prev := uint32(format.NilOffset)
	for off := head; off != format.NilOffset; {
		if off >= sentinel || !format.IsAligned(int(off)) {
			return nil, &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("entry out of bounds or misaligned (sentinel=0x%X)", sentinel),
				Offset:  int(off),
				Details: map[string]interface{}{"index": len(seen), "prev": prev},
			}
		}
		if _, dup := seen[off]; dup {
			return nil, &ValidationError{
				Type:    "FreeList",
				Message: "cycle detected",
				Offset:  int(off),
				Details: map[string]interface{}{"index": len(seen)},
			}
		}
		b := a.At(off)
		if !b.Free() {
			return nil, &ValidationError{
				Type:    "FreeList",
				Message: "entry not marked free",
				Offset:  int(off),
				Details: map[string]interface{}{"index": len(seen)},
			}
		}
		if b.Prev() != prev {
			return nil, &ValidationError{
				Type:    "FreeList",
				Message: "prev link does not match predecessor",
				Offset:  int(off),
				Details: map[string]interface{}{"prev": b.Prev(), "want": prev},
			}
		}
		seen[off] = struct{}{}
		prev = off
		off = b.Next()
	}
	return seen, nil
}

// Membership validates that the free blocks found by a physical walk are
// exactly the entries of the free list.
func Membership(a *heap.Arena, head uint32) error {
	listed, err := listEntries(a, head)
	if err != nil {
		return err
	}

	free := 0
	err = walk("Membership", a, func(h format.Header, _ int) error {
		if !h.Free {
			return nil
		}
		free++
		if _, ok := listed[uint32(h.Offset)]; !ok {
			return &ValidationError{
				Type:    "Membership",
				Message: "free block missing from free list",
				Offset:  h.Offset,
				Details: map[string]interface{}{"size": h.Size},
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if free != len(listed) {
		return &ValidationError{
			Type:    "Membership",
			Message: fmt.Sprintf("free list has %d entries but arena has %d free blocks", len(listed), free),
			Offset:  -1,
		}
	}
	return nil
}

// NoAdjacentFree validates that no two physically adjacent blocks are both
// free. Only allocators that coalesce on free maintain this.
func NoAdjacentFree(a *heap.Arena) error {
	prevFree := false
	prevOff := -1
	return walk("NoAdjacentFree", a, func(h format.Header, _ int) error {
		if h.Free && prevFree {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: "adjacent free blocks not coalesced",
				Offset:  h.Offset,
				Details: map[string]interface{}{"predecessor": prevOff},
			}
		}
		prevFree = h.Free
		prevOff = h.Offset
		return nil
	})
}
