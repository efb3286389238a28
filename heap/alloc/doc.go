// Package alloc provides first-fit block allocation over a single heap arena.
//
// # Overview
//
// The allocator manages one fixed-size arena (see package heap). Free blocks
// are threaded on an unordered doubly-linked list whose links live in the
// block headers themselves, so the allocator needs no memory beyond the arena
// and a single head offset.
//
// # Allocation
//
// Alloc rounds the request up to a usable size (at least 8 bytes, a multiple
// of 8) and walks the free list from the head, taking the first block that is
// large enough:
//
//   - If the block can hold the request plus another header and a minimal
//     data segment, it is split. The leading part stays free at the same
//     offset and is moved to the list front; the trailing part is returned.
//   - Otherwise the whole block is handed out and its excess stays internal.
//
// There is no growth path. When no block fits, Alloc returns ErrOutOfMemory.
//
// # Deallocation
//
// Free maps a Ref back to its header by fixed offset, flips the block to free,
// updates its successor's boundary tag and pushes it on the list front. The
// coalescing policy decides what happens in between:
//
//	CoalesceNone       freed blocks are never merged
//	CoalesceImmediate  merge with free physical neighbors on both sides
//
// Both neighbors are found in O(1): the successor by size arithmetic and the
// predecessor by the back_size tag every header carries.
//
// # Usage Example
//
//	a := alloc.New(nil)
//	if err := a.Init(); err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, buf, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	if err := a.Free(ref); err != nil {
//	    return err
//	}
//
// # Concurrency
//
// An Allocator is not safe for concurrent use. Wrap it in Locked to share it
// between goroutines.
//
// # Debugging
//
// Set HEAP_LOG_ALLOC=1 to log splits, merges and exhaustion at debug level,
// and HEAP_LOG=debug to send debug records to stderr. Check verifies every
// structural invariant, and Dump prints the free list and the physical arena.
package alloc
