package alloc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/heap"
)

// Config fixes an allocator's arena shape and free policy.
type Config struct {
	Arena    heap.Config
	Coalesce CoalescePolicy
}

var (
	// ConfigClassic never coalesces. Long-running workloads fragment the
	// arena into ever smaller free blocks.
	ConfigClassic = Config{Arena: heap.DefaultConfig, Coalesce: CoalesceNone}

	// ConfigCoalescing merges neighbors on every Free.
	ConfigCoalescing = Config{Arena: heap.DefaultConfig, Coalesce: CoalesceImmediate}

	// DefaultConfig is used when New is given a nil config.
	DefaultConfig = ConfigCoalescing
)

// Validate checks the arena shape and the policy value.
func (c Config) Validate() error {
	if c.Coalesce != CoalesceImmediate && c.Coalesce != CoalesceNone {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Coalesce)
	}
	return c.Arena.Validate()
}

// Option configures an Allocator at construction.
type Option func(*Allocator)

// WithLogger routes allocator and arena log records to l.
func WithLogger(l *slog.Logger) Option {
	return func(a *Allocator) {
		a.log = l
	}
}
