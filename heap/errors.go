package heap

import "errors"

var (
	// ErrOutOfMemory indicates resource exhaustion: the OS refused to reserve
	// the arena, or no free block is large enough for a request.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrAlreadyInitialized indicates a second Init on an arena that already
	// owns its region. The existing layout is left untouched.
	ErrAlreadyInitialized = errors.New("heap: arena already initialized")

	// ErrNotInitialized indicates use of an arena before Init.
	ErrNotInitialized = errors.New("heap: arena not initialized")

	// ErrClosed indicates use of an arena after Close.
	ErrClosed = errors.New("heap: arena closed")

	// ErrInvalidConfig indicates an arena capacity that cannot hold the layout.
	ErrInvalidConfig = errors.New("heap: invalid config")

	// ErrBadOffset indicates an out-of-bounds or misaligned block offset.
	ErrBadOffset = errors.New("heap: bad block offset")
)
