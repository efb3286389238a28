package alloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// ============================================================================
// Allocator Setup
// ============================================================================

func newTestAllocator(t testing.TB, capacity int, policy CoalescePolicy) *Allocator {
	t.Helper()
	a := New(&Config{Arena: heap.Config{Capacity: capacity}, Coalesce: policy})
	require.NoError(t, a.Init(), "Init should succeed")
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// ============================================================================
// Invariant Checks
// ============================================================================

// assertInvariants fails the test with a full dump when any structural
// invariant is broken.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	if err := a.Check(); err != nil {
		var sb strings.Builder
		_ = a.Dump(&sb)
		t.Fatalf("invariant violated: %v\n%s", err, sb.String())
	}
}

// blockOf returns the header view behind a live ref.
func blockOf(t testing.TB, a *Allocator, ref Ref) heap.Block {
	t.Helper()
	b, err := a.Arena().BlockFromData(ref)
	require.NoError(t, err)
	return b
}

// fill writes a pattern derived from seed into buf.
func fill(buf []byte, seed byte) {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

// intact reports whether buf still holds the pattern written by fill.
func intact(buf []byte, seed byte) bool {
	for i := range buf {
		if buf[i] != seed+byte(i) {
			return false
		}
	}
	return true
}

var policies = []CoalescePolicy{CoalesceImmediate, CoalesceNone}
