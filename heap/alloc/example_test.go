package alloc_test

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

func Example() {
	a := alloc.New(&alloc.Config{Arena: heap.Config{Capacity: 4096}})
	if err := a.Init(); err != nil {
		fmt.Println(err)
		return
	}
	defer a.Close()

	ref, buf, err := a.Alloc(10)
	if err != nil {
		fmt.Println(err)
		return
	}
	copy(buf, "hello")
	fmt.Println(len(buf), a.FreeListLen())

	if err := a.Free(ref); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(a.FreeSizes())
	// Output:
	// 16 1
	// [4048]
}

func ExampleAllocator_Alloc_outOfMemory() {
	a := alloc.New(&alloc.Config{Arena: heap.Config{Capacity: 256}})
	_ = a.Init()
	defer a.Close()

	_, _, err := a.Alloc(1024)
	fmt.Println(errors.Is(err, alloc.ErrOutOfMemory))
	// Output: true
}

func ExampleConfigClassic() {
	cfg := alloc.ConfigClassic
	cfg.Arena.Capacity = 1024
	a := alloc.New(&cfg)
	_ = a.Init()
	defer a.Close()

	r1, _, _ := a.Alloc(16)
	r2, _, _ := a.Alloc(16)
	_ = a.Free(r1)
	_ = a.Free(r2)
	fmt.Println(a.Policy(), a.FreeSizes())
	// Output: none [16 16 896]
}
