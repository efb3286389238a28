package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var (
	infoCapacity int
	infoPolicy   string
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().IntVar(&infoCapacity, "capacity", heap.DefaultCapacity, "Arena capacity in bytes")
	cmd.Flags().StringVar(&infoPolicy, "policy", "coalesce", "Coalescing policy: coalesce or none")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show layout constants and a fresh arena",
		Long: `The info command initializes an arena and prints the header layout
constants, the initial free block, the sentinel and the free list.

Example:
  heapctl info
  heapctl info --capacity 4096 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

type blockInfo struct {
	Offset   uint32 `json:"offset"`
	Size     uint32 `json:"size"`
	BackSize uint32 `json:"back_size"`
	Free     bool   `json:"free"`
	BackFree bool   `json:"back_free"`
}

type arenaInfo struct {
	Capacity   int       `json:"capacity"`
	Policy     string    `json:"policy"`
	HeaderSize int       `json:"header_size"`
	Align      int       `json:"align"`
	MinSize    int       `json:"min_size"`
	First      blockInfo `json:"first"`
	Sentinel   blockInfo `json:"sentinel"`
	FreeList   []int     `json:"free_list"`
}

func describe(b heap.Block) blockInfo {
	return blockInfo{
		Offset:   b.Off(),
		Size:     b.Size(),
		BackSize: b.BackSize(),
		Free:     b.Free(),
		BackFree: b.BackFree(),
	}
}

func runInfo() error {
	a, err := openAllocator(infoCapacity, infoPolicy)
	if err != nil {
		return err
	}
	defer a.Close()

	arena := a.Arena()
	info := arenaInfo{
		Capacity:   arena.Capacity(),
		Policy:     a.Policy().String(),
		HeaderSize: heap.HeaderSize,
		Align:      heap.Align,
		MinSize:    heap.MinSize,
		First:      describe(arena.First()),
		Sentinel:   describe(arena.Sentinel()),
		FreeList:   a.FreeSizes(),
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Arena\n")
	printInfo("  Capacity:     %d bytes\n", info.Capacity)
	printInfo("  Policy:       %s\n", info.Policy)
	printInfo("  Header size:  %d\n", info.HeaderSize)
	printInfo("  Alignment:    %d\n", info.Align)
	printInfo("  Min size:     %d\n", info.MinSize)
	printInfo("\nInitial block\n")
	printInfo("  Offset %d, size %d, free %t\n", info.First.Offset, info.First.Size, info.First.Free)
	printInfo("Sentinel\n")
	printInfo("  Offset %d, back size %d, back free %t\n",
		info.Sentinel.Offset, info.Sentinel.BackSize, info.Sentinel.BackFree)
	printInfo("\n%s\n", freeListSummary(a))
	return nil
}
