package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Layout constants re-exported for callers outside the module.
const (
	HeaderSize      = format.HeaderSize
	Align           = format.Align
	MinSize         = format.MinSize
	DefaultCapacity = format.DefaultCapacity
	MinCapacity     = format.MinCapacity
	MaxCapacity     = format.MaxCapacity
	NilOffset       = format.NilOffset
)

// Config describes the fixed shape of an arena. It is read once by Init.
type Config struct {
	// Capacity is the total arena size in bytes, headers and sentinel included.
	// Must be a multiple of Align within [MinCapacity, MaxCapacity].
	Capacity int
}

// DefaultConfig reserves a 64 KiB arena.
var DefaultConfig = Config{Capacity: DefaultCapacity}

// Validate reports whether the capacity can hold one minimal block plus the sentinel.
func (c Config) Validate() error {
	switch {
	case c.Capacity < MinCapacity:
		return fmt.Errorf("%w: capacity %d below minimum %d", ErrInvalidConfig, c.Capacity, MinCapacity)
	case c.Capacity > MaxCapacity:
		return fmt.Errorf("%w: capacity %d above maximum %d", ErrInvalidConfig, c.Capacity, MaxCapacity)
	case !format.IsAligned(c.Capacity):
		return fmt.Errorf("%w: capacity %d not a multiple of %d", ErrInvalidConfig, c.Capacity, Align)
	}
	return nil
}

// InitialFreeSize is the usable size of the single free block a fresh arena
// of this capacity starts with.
func (c Config) InitialFreeSize() int {
	return c.Capacity - 2*HeaderSize
}
