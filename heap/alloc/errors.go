package alloc

import (
	"errors"

	"github.com/joshuapare/heapkit/heap"
)

var (
	// ErrOutOfMemory indicates that no free block is large enough for the request.
	ErrOutOfMemory = heap.ErrOutOfMemory

	// ErrAlreadyInitialized indicates a repeated Init.
	ErrAlreadyInitialized = heap.ErrAlreadyInitialized

	// ErrNotInitialized indicates Alloc or Free before Init.
	ErrNotInitialized = heap.ErrNotInitialized

	// ErrInvalidConfig indicates a capacity or policy the allocator cannot use.
	ErrInvalidConfig = heap.ErrInvalidConfig

	// ErrInvalidRequest indicates a request size of zero or less.
	ErrInvalidRequest = errors.New("alloc: request size must be positive")

	// ErrBadRef indicates a reference outside the arena, misaligned, or at the sentinel.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNotAllocated indicates a Free of a block that is already free.
	ErrNotAllocated = errors.New("alloc: block not allocated")
)
