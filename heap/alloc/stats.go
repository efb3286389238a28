package alloc

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/heap"
)

// Stats holds allocator counters since construction.
type Stats struct {
	AllocCalls       int   // Alloc calls with a positive size on a live arena
	AllocFailures    int   // Alloc calls that returned ErrOutOfMemory
	FreeCalls        int   // Successful non-nil Free calls
	Splits           int   // Blocks split to serve a request
	CoalesceForward  int   // Merges with a free physical successor
	CoalesceBackward int   // Merges with a free physical predecessor
	BytesAllocated   int64 // Usable bytes handed out
	BytesFreed       int64 // Usable bytes returned, before merging
	SearchSteps      int64 // Free-list entries inspected by first fit
}

// Stats returns a snapshot of the counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Fragmentation summarizes the physical arena at one point in time.
type Fragmentation struct {
	FreeBlocks  int
	FreeBytes   int
	LargestFree int
	UsedBlocks  int
	UsedBytes   int
	// Ratio is 1 - LargestFree/FreeBytes: 0 when all free space is one block,
	// approaching 1 as free space scatters. 0 when nothing is free.
	Ratio float64
}

// Fragmentation walks the arena and reports how free space is spread.
func (a *Allocator) Fragmentation() (Fragmentation, error) {
	var f Fragmentation
	it := a.arena.Blocks()
	for {
		b, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Fragmentation{}, err
		}
		size := int(b.Size())
		if b.Free() {
			f.FreeBlocks++
			f.FreeBytes += size
			f.LargestFree = max(f.LargestFree, size)
		} else {
			f.UsedBlocks++
			f.UsedBytes += size
		}
	}
	if f.FreeBytes > 0 {
		f.Ratio = 1 - float64(f.LargestFree)/float64(f.FreeBytes)
	}
	return f, nil
}

// Dump prints the free list in list order followed by every block in
// address order.
func (a *Allocator) Dump(w io.Writer) error {
	if err := a.arena.Ready(); err != nil {
		return err
	}

	fmt.Fprintf(w, "FREELIST (head=%s)\n", fmtOff(a.head))
	a.each(func(b heap.Block) bool {
		dumpBlock(w, b)
		return true
	})

	fmt.Fprintf(w, "ARENA (capacity=%d)\n", a.arena.Capacity())
	it := a.arena.Blocks()
	for {
		b, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		dumpBlock(w, b)
	}
	s := a.arena.Sentinel()
	fmt.Fprintf(w, "  0x%08X  sentinel  bsize=%d bfree=%t\n", s.Off(), s.BackSize(), s.BackFree())
	return nil
}

func dumpBlock(w io.Writer, b heap.Block) {
	state := "used"
	if b.Free() {
		state = "free"
	}
	fmt.Fprintf(w, "  0x%08X  %s  size=%d bsize=%d bfree=%t next=%s prev=%s\n",
		b.Off(), state, b.Size(), b.BackSize(), b.BackFree(), fmtOff(b.Next()), fmtOff(b.Prev()))
}

func fmtOff(off uint32) string {
	if off == heap.NilOffset {
		return "nil"
	}
	return fmt.Sprintf("0x%X", off)
}

// PrintStats writes the counters and a fragmentation summary to w.
func (a *Allocator) PrintStats(w io.Writer) {
	s := a.stats
	fmt.Fprintf(w, "=== ALLOCATOR STATISTICS ===\n")
	fmt.Fprintf(w, "Policy:             %s\n", a.cfg.Coalesce)
	fmt.Fprintf(w, "Alloc calls:        %d (failed: %d)\n", s.AllocCalls, s.AllocFailures)
	fmt.Fprintf(w, "Free calls:         %d\n", s.FreeCalls)
	fmt.Fprintf(w, "Bytes allocated:    %d\n", s.BytesAllocated)
	fmt.Fprintf(w, "Bytes freed:        %d\n", s.BytesFreed)
	fmt.Fprintf(w, "Block splits:       %d\n", s.Splits)
	fmt.Fprintf(w, "Coalesce fwd:       %d\n", s.CoalesceForward)
	fmt.Fprintf(w, "Coalesce back:      %d\n", s.CoalesceBackward)
	fmt.Fprintf(w, "Search steps:       %d\n", s.SearchSteps)

	if f, err := a.Fragmentation(); err == nil && a.arena.Initialized() {
		fmt.Fprintf(w, "\nFragmentation:\n")
		fmt.Fprintf(w, "  Free blocks:      %d\n", f.FreeBlocks)
		fmt.Fprintf(w, "  Free bytes:       %d\n", f.FreeBytes)
		fmt.Fprintf(w, "  Largest free:     %d\n", f.LargestFree)
		fmt.Fprintf(w, "  Used blocks:      %d\n", f.UsedBlocks)
		fmt.Fprintf(w, "  Ratio:            %.3f\n", f.Ratio)
	}
	fmt.Fprintf(w, "============================\n")
}
