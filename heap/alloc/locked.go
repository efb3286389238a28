package alloc

import (
	"io"
	"sync"
)

// Locked is a mutex-protected wrapper around Allocator for concurrent access.
// Every call takes one lock for its whole duration. Data slices returned by
// Alloc are not protected; callers own them until they Free the ref.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

// NewLocked wraps a new Allocator built from cfg and opts.
func NewLocked(cfg *Config, opts ...Option) *Locked {
	return &Locked{a: New(cfg, opts...)}
}

// Init thread-safely reserves the arena.
func (l *Locked) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Init()
}

// Close thread-safely releases the arena.
func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}

// Alloc thread-safely allocates size bytes.
func (l *Locked) Alloc(size int) (Ref, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

// Free thread-safely frees ref.
func (l *Locked) Free(ref Ref) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free(ref)
}

// Bytes thread-safely returns the data segment behind ref.
func (l *Locked) Bytes(ref Ref) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Bytes(ref)
}

// UsableSize thread-safely reports the usable size behind ref.
func (l *Locked) UsableSize(ref Ref) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.UsableSize(ref)
}

// Check thread-safely verifies every invariant.
func (l *Locked) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Check()
}

// Stats thread-safely snapshots the counters.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// FreeListLen thread-safely counts free-list entries.
func (l *Locked) FreeListLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.FreeListLen()
}

// FreeSizes thread-safely lists free block sizes.
func (l *Locked) FreeSizes() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.FreeSizes()
}

// Dump thread-safely prints the free list and the arena.
func (l *Locked) Dump(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Dump(w)
}
