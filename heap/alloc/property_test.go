package alloc

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

type liveBlock struct {
	ref  Ref
	req  int
	seed byte
}

// runWorkload drives a seeded mix of allocations and frees, checking every
// invariant after each call. It frees everything before returning.
func runWorkload(t *testing.T, a *Allocator, seed int64, ops, maxSize int) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var live []liveBlock

	release := func(i int) {
		lb := live[i]
		buf, err := a.Bytes(lb.ref)
		require.NoError(t, err)
		require.True(t, intact(buf, lb.seed), "data of ref %d overwritten", lb.ref)
		require.NoError(t, a.Free(lb.ref))
		live[i] = live[len(live)-1]
		live = live[:len(live)-1]
	}

	for op := range ops {
		if len(live) == 0 || rng.Intn(100) < 55 {
			n := 1 + rng.Intn(maxSize)
			ref, buf, err := a.Alloc(n)
			if err != nil {
				require.ErrorIs(t, err, ErrOutOfMemory, "op %d", op)
				assertInvariants(t, a)
				continue
			}
			require.GreaterOrEqual(t, len(buf), n, "usable size below request")
			s := byte(rng.Intn(256))
			fill(buf, s)
			live = append(live, liveBlock{ref: ref, req: n, seed: s})
		} else {
			release(rng.Intn(len(live)))
		}
		assertInvariants(t, a)
	}

	for len(live) > 0 {
		release(len(live) - 1)
		assertInvariants(t, a)
	}
}

// TestProperty_RandomSequences verifies boundary tags, list membership and
// data isolation hold after every call of seeded random workloads.
func TestProperty_RandomSequences(t *testing.T) {
	seeds := []int64{1, 2, 3, 42, 1206}
	for _, p := range policies {
		for _, seed := range seeds {
			t.Run(fmt.Sprintf("%s/seed=%d", p, seed), func(t *testing.T) {
				a := newTestAllocator(t, 16*1024, p)
				runWorkload(t, a, seed, 1500, 512)
				if p == CoalesceImmediate {
					assert.Equal(t, []int{16*1024 - 48}, a.FreeSizes(),
						"freeing everything must restore the initial block")
				}
			})
		}
	}
}

// TestFragmentation_PolicyComparison runs the same workload under both
// policies. Coalescing folds the arena back into one block; the classic
// policy leaves it permanently split.
func TestFragmentation_PolicyComparison(t *testing.T) {
	const capacity = heap.DefaultCapacity
	results := make(map[CoalescePolicy]Fragmentation)

	for _, p := range policies {
		a := newTestAllocator(t, capacity, p)
		runWorkload(t, a, 7, 3000, 256)

		f, err := a.Fragmentation()
		require.NoError(t, err)
		assert.Equal(t, 0, f.UsedBlocks)
		results[p] = f
	}

	c := results[CoalesceImmediate]
	assert.Equal(t, 1, c.FreeBlocks)
	assert.Equal(t, capacity-48, c.FreeBytes)
	assert.Equal(t, capacity-48, c.LargestFree)
	assert.Zero(t, c.Ratio)

	n := results[CoalesceNone]
	assert.Greater(t, n.FreeBlocks, 1, "classic policy never merges")
	assert.Less(t, n.LargestFree, capacity-48)
	assert.Greater(t, n.Ratio, 0.0)
	assert.Less(t, n.FreeBytes, c.FreeBytes, "headers of split blocks are lost to the classic policy")
}

// FuzzAllocFree decodes each input byte as an operation: even bytes allocate
// (value*4)+1 bytes, odd bytes free the live block at value % len(live).
func FuzzAllocFree(f *testing.F) {
	f.Add([]byte{0, 2, 4, 1, 3, 5})
	f.Add([]byte{200, 200, 200, 1, 1, 1, 254})
	f.Add([]byte{10, 11, 12, 13, 14, 15, 16, 17})

	f.Fuzz(func(t *testing.T, ops []byte) {
		for _, p := range policies {
			a := New(&Config{Arena: heap.Config{Capacity: 4096}, Coalesce: p})
			require.NoError(t, a.Init())

			var live []Ref
			for _, op := range ops {
				if op%2 == 0 {
					ref, _, err := a.Alloc(int(op)*4 + 1)
					if err == nil {
						live = append(live, ref)
					} else {
						require.ErrorIs(t, err, ErrOutOfMemory)
					}
				} else if len(live) > 0 {
					i := int(op) % len(live)
					require.NoError(t, a.Free(live[i]))
					live = append(live[:i], live[i+1:]...)
				}
				assertInvariants(t, a)
			}
			require.NoError(t, a.Close())
		}
	})
}
