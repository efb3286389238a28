package alloc

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Runtime debug flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// Allocator is a first-fit, explicit free-list allocator over one arena.
// The free-list head is the only state kept outside the arena.
type Allocator struct {
	arena *heap.Arena
	cfg   Config
	head  uint32
	stats Stats
	log   *slog.Logger
}

// New returns an allocator whose arena is not yet reserved. A nil cfg selects
// DefaultConfig. Call Init before Alloc or Free.
func New(cfg *Config, opts ...Option) *Allocator {
	if cfg == nil {
		c := DefaultConfig
		cfg = &c
	}
	a := &Allocator{
		cfg:  *cfg,
		head: format.NilOffset,
	}
	for _, opt := range opts {
		opt(a)
	}

	var arenaOpts []heap.Option
	if a.log != nil {
		arenaOpts = append(arenaOpts, heap.WithLogger(a.log))
	}
	a.arena = heap.New(&a.cfg.Arena, arenaOpts...)
	return a
}

func (a *Allocator) logger() *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.L
}

// Init reserves and lays out the arena and seeds the free list with its
// single initial block. A second Init returns ErrAlreadyInitialized and
// changes nothing.
func (a *Allocator) Init() error {
	if a.arena.Initialized() {
		return a.arena.Init()
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if err := a.arena.Init(); err != nil {
		return err
	}
	a.head = format.NilOffset
	a.insert(a.arena.First())
	return nil
}

// Close releases the arena. Every Ref and data slice handed out becomes invalid.
func (a *Allocator) Close() error {
	a.head = format.NilOffset
	return a.arena.Close()
}

// Arena exposes the underlying arena for inspection.
func (a *Allocator) Arena() *heap.Arena { return a.arena }

// Head returns the offset of the first free-list entry, or NilOffset.
func (a *Allocator) Head() uint32 { return a.head }

// Policy returns the coalescing policy fixed at construction.
func (a *Allocator) Policy() CoalescePolicy { return a.cfg.Coalesce }

// Alloc returns a block with at least size usable bytes. The slice is the
// block's data segment; its length is the usable size. Contents are not
// zeroed.
func (a *Allocator) Alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return NilRef, nil, fmt.Errorf("%w: %d", ErrInvalidRequest, size)
	}
	if err := a.arena.Ready(); err != nil {
		return NilRef, nil, err
	}
	a.stats.AllocCalls++

	if size > a.arena.Capacity() {
		a.stats.AllocFailures++
		return NilRef, nil, fmt.Errorf("%w: request %d exceeds arena capacity %d",
			ErrOutOfMemory, size, a.arena.Capacity())
	}
	usable := uint32(format.Usable(size))

	b, ok := a.firstFit(usable)
	if !ok {
		a.stats.AllocFailures++
		if logAlloc {
			a.logger().Debug("alloc: no fit",
				"request", size,
				"usable", usable,
				"free_blocks", a.FreeListLen())
		}
		return NilRef, nil, fmt.Errorf("%w: no free block of %d bytes", ErrOutOfMemory, usable)
	}

	if b.Size() >= usable+format.HeaderSize+format.MinSize {
		b = a.split(b, usable)
	} else {
		a.detach(b)
		b.SetFree(false)
		a.arena.After(b).SetBackFree(false)
	}

	a.stats.BytesAllocated += int64(b.Size())
	return b.DataOff(), b.Data(), nil
}

// split carves usable bytes off the tail of free block b. The leading
// remainder keeps b's offset, stays free and moves to the list front. The
// returned tail block is allocated.
func (a *Allocator) split(b heap.Block, usable uint32) heap.Block {
	rsize := b.Size() - usable - format.HeaderSize

	a.detach(b)
	b.SetSize(rsize)
	a.insert(b)

	tail := a.arena.After(b)
	// The tail header lands inside b's old data segment; write every field.
	_ = format.PutHeader(a.arena.Bytes(), format.Header{
		Offset:   int(tail.Off()),
		Size:     usable,
		BackSize: rsize,
		BackFree: true,
		Next:     format.NilOffset,
		Prev:     format.NilOffset,
	})

	succ := a.arena.After(tail)
	succ.SetBackSize(usable)
	succ.SetBackFree(false)

	a.stats.Splits++
	if logAlloc {
		a.logger().Debug("alloc: split",
			"block", b.Off(),
			"remainder", rsize,
			"tail", tail.Off(),
			"usable", usable)
	}
	return tail
}

// Free returns the block behind ref to the free list. NilRef is ignored.
// Refs outside the arena, misaligned or addressing the sentinel return
// ErrBadRef; a block that is already free returns ErrNotAllocated. Any other
// ref that Alloc did not return corrupts the arena.
func (a *Allocator) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}
	b, err := a.block(ref)
	if err != nil {
		return err
	}
	if b.Free() {
		return fmt.Errorf("%w: ref %d", ErrNotAllocated, ref)
	}

	a.stats.FreeCalls++
	a.stats.BytesFreed += int64(b.Size())

	b.SetFree(true)
	a.arena.After(b).SetBackFree(true)

	if a.cfg.Coalesce == CoalesceImmediate {
		b = a.coalesce(b)
	}
	a.insert(b)
	return nil
}

// Bytes returns the data segment of the live allocation behind ref.
func (a *Allocator) Bytes(ref Ref) ([]byte, error) {
	b, err := a.live(ref)
	if err != nil {
		return nil, err
	}
	return b.Data(), nil
}

// UsableSize returns the usable size of the live allocation behind ref. It is
// never smaller than the size passed to Alloc.
func (a *Allocator) UsableSize(ref Ref) (int, error) {
	b, err := a.live(ref)
	if err != nil {
		return 0, err
	}
	return int(b.Size()), nil
}

func (a *Allocator) live(ref Ref) (heap.Block, error) {
	b, err := a.block(ref)
	if err != nil {
		return heap.Block{}, err
	}
	if b.Free() {
		return heap.Block{}, fmt.Errorf("%w: ref %d", ErrNotAllocated, ref)
	}
	return b, nil
}

func (a *Allocator) block(ref Ref) (heap.Block, error) {
	if ref == NilRef {
		return heap.Block{}, fmt.Errorf("%w: nil ref", ErrBadRef)
	}
	b, err := a.arena.BlockFromData(ref)
	if errors.Is(err, heap.ErrBadOffset) {
		return heap.Block{}, fmt.Errorf("%w: %w", ErrBadRef, err)
	}
	return b, err
}
