package heap

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
	"github.com/joshuapare/heapkit/internal/mmfile"
)

func init() {
	logger.FromEnv()
}

// Arena is a single fixed-size region reserved from the OS once, laid out as
// a chain of blocks terminated by a zero-size sentinel. It is never grown.
type Arena struct {
	cfg     Config
	data    []byte
	release func() error
	closed  bool
	log     *slog.Logger
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger routes arena log records to l instead of the package default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		a.log = l
	}
}

// New returns an uninitialized arena. A nil cfg selects DefaultConfig.
func New(cfg *Config, opts ...Option) *Arena {
	if cfg == nil {
		c := DefaultConfig
		cfg = &c
	}
	a := &Arena{cfg: *cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open builds and initializes an arena in one step.
func Open(cfg *Config, opts ...Option) (*Arena, error) {
	a := New(cfg, opts...)
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) logger() *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.L
}

// Init reserves the region and writes the initial layout: one free block
// spanning everything but the first header and the sentinel.
func (a *Arena) Init() error {
	if a.closed {
		return ErrClosed
	}
	if a.data != nil {
		a.logger().Warn("heap: init called on initialized arena", "capacity", len(a.data))
		return ErrAlreadyInitialized
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	data, release, err := mmfile.MapAnon(a.cfg.Capacity)
	if err != nil {
		return fmt.Errorf("%w: reserve %d bytes: %w", ErrOutOfMemory, a.cfg.Capacity, err)
	}
	a.data = data
	a.release = release

	if err := a.layout(); err != nil {
		_ = a.Close()
		return err
	}

	a.logger().Debug("heap: arena initialized",
		"capacity", a.cfg.Capacity,
		"free", a.cfg.InitialFreeSize())
	return nil
}

func (a *Arena) layout() error {
	sentinel := len(a.data) - format.HeaderSize
	usable := uint32(a.cfg.InitialFreeSize())

	if err := format.PutHeader(a.data, format.Header{
		Offset: 0,
		Size:   usable,
		Free:   true,
		Next:   format.NilOffset,
		Prev:   format.NilOffset,
	}); err != nil {
		return err
	}
	return format.PutHeader(a.data, format.Header{
		Offset:   sentinel,
		BackSize: usable,
		BackFree: true,
		Next:     format.NilOffset,
		Prev:     format.NilOffset,
	})
}

// Close returns the region to the OS. Outstanding Block views and data
// slices become invalid. Close is idempotent.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.data = nil
	if a.release == nil {
		return nil
	}
	release := a.release
	a.release = nil
	return release()
}

// Capacity returns the configured arena size in bytes.
func (a *Arena) Capacity() int { return a.cfg.Capacity }

// Bytes exposes the raw arena buffer, nil before Init or after Close.
func (a *Arena) Bytes() []byte { return a.data }

// Initialized reports whether the arena owns a live region.
func (a *Arena) Initialized() bool { return a.data != nil }

// Ready returns nil when the arena can be used, or the reason it cannot.
func (a *Arena) Ready() error {
	switch {
	case a.closed:
		return ErrClosed
	case a.data == nil:
		return ErrNotInitialized
	}
	return nil
}

// SentinelOffset returns the header offset of the terminating sentinel.
func (a *Arena) SentinelOffset() uint32 {
	return uint32(len(a.data) - format.HeaderSize)
}

// First returns the block at offset 0.
func (a *Arena) First() Block { return a.At(0) }

// Sentinel returns the terminating zero-size block.
func (a *Arena) Sentinel() Block { return a.At(a.SentinelOffset()) }

// At returns a view of the header at off without checking it. Callers that
// hold offsets from the free list or the physical chain use this.
func (a *Arena) At(off uint32) Block {
	return Block{data: a.data, off: off}
}

// Block returns a checked view of the header at off. The sentinel slot is
// accepted.
func (a *Arena) Block(off uint32) (Block, error) {
	if err := a.Ready(); err != nil {
		return Block{}, err
	}
	if !format.IsAligned(int(off)) {
		return Block{}, fmt.Errorf("%w: %d misaligned", ErrBadOffset, off)
	}
	if _, err := buf.CheckSpan(len(a.data), int(off), format.HeaderSize); err != nil {
		return Block{}, fmt.Errorf("%w: header at %d: %w", ErrBadOffset, off, err)
	}
	return a.At(off), nil
}

// BlockFromData maps a data-segment offset back to its block. Offsets that
// could not have been handed out (before the first data segment, misaligned,
// at or past the sentinel) return ErrBadOffset.
func (a *Arena) BlockFromData(dataOff uint32) (Block, error) {
	if err := a.Ready(); err != nil {
		return Block{}, err
	}
	if dataOff < format.HeaderSize || !format.IsAligned(int(dataOff)) {
		return Block{}, fmt.Errorf("%w: data offset %d", ErrBadOffset, dataOff)
	}
	off := dataOff - format.HeaderSize
	if off >= a.SentinelOffset() {
		return Block{}, fmt.Errorf("%w: data offset %d beyond last block", ErrBadOffset, dataOff)
	}
	return a.At(off), nil
}

// After returns the physical successor of b. b must not be the sentinel.
func (a *Arena) After(b Block) Block {
	return a.At(b.End())
}

// Before returns the physical predecessor of b using its back tag. The
// second result is false for the block at offset 0.
func (a *Arena) Before(b Block) (Block, bool) {
	if b.off == 0 {
		return Block{}, false
	}
	return a.At(b.off - b.BackSize() - format.HeaderSize), true
}
