package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	runCapacity int
	runPolicy   string
	runVerify   bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runCapacity, "capacity", heap.DefaultCapacity, "Arena capacity in bytes")
	cmd.Flags().StringVar(&runPolicy, "policy", "coalesce", "Coalescing policy: coalesce or none")
	cmd.Flags().BoolVar(&runVerify, "check", false, "Verify every invariant after each op")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <op>...",
		Short: "Execute an allocation script",
		Long: `The run command executes a sequence of ops against a fresh allocator:

  a<N>   allocate N bytes
  f<K>   free the K-th allocation of the script (1-based)
  d      dump the free list and the arena

Allocation failures are reported and the script continues.

Example:
  heapctl run a10 a20 f1 a8
  heapctl run a100 a100 f1 f2 d --policy none
  heapctl run a64 f1 --check --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

type opKind byte

const (
	opAlloc opKind = 'a'
	opFree  opKind = 'f'
	opDump  opKind = 'd'
)

type op struct {
	kind opKind
	arg  int
}

// parseOp decodes one script token.
func parseOp(s string) (op, error) {
	if s == "d" {
		return op{kind: opDump}, nil
	}
	if len(s) < 2 || (s[0] != 'a' && s[0] != 'f') {
		return op{}, fmt.Errorf("invalid op %q (want a<N>, f<K> or d)", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 {
		return op{}, fmt.Errorf("invalid op %q: argument must be a positive integer", s)
	}
	return op{kind: opKind(s[0]), arg: n}, nil
}

type opResult struct {
	Op     string `json:"op"`
	Ref    uint32 `json:"ref,omitempty"`
	Usable int    `json:"usable,omitempty"`
	Error  string `json:"error,omitempty"`
}

type runReport struct {
	Policy   string      `json:"policy"`
	Capacity int         `json:"capacity"`
	Ops      []opResult  `json:"ops"`
	FreeList []int       `json:"free_list"`
	Stats    alloc.Stats `json:"stats"`
}

func runRun(args []string) error {
	ops := make([]op, 0, len(args))
	for _, s := range args {
		o, err := parseOp(s)
		if err != nil {
			return err
		}
		ops = append(ops, o)
	}

	a, err := openAllocator(runCapacity, runPolicy)
	if err != nil {
		return err
	}
	defer a.Close()

	report := runReport{Policy: a.Policy().String(), Capacity: runCapacity}
	var refs []alloc.Ref

	for i, o := range ops {
		res := opResult{Op: args[i]}
		switch o.kind {
		case opAlloc:
			ref, buf, err := a.Alloc(o.arg)
			if err != nil {
				res.Error = err.Error()
				refs = append(refs, alloc.NilRef)
				break
			}
			refs = append(refs, ref)
			res.Ref, res.Usable = ref, len(buf)

		case opFree:
			if o.arg > len(refs) {
				res.Error = fmt.Sprintf("no allocation #%d yet", o.arg)
				break
			}
			ref := refs[o.arg-1]
			if ref == alloc.NilRef {
				res.Error = fmt.Sprintf("allocation #%d failed", o.arg)
				break
			}
			res.Ref = ref
			if err := a.Free(ref); err != nil {
				res.Error = err.Error()
			}

		case opDump:
			if !jsonOut && !quiet {
				if err := a.Dump(os.Stdout); err != nil {
					return err
				}
			}
		}

		if runVerify {
			if err := a.Check(); err != nil {
				return fmt.Errorf("after op %d (%s): %w", i+1, args[i], err)
			}
		}
		report.Ops = append(report.Ops, res)
		if !jsonOut {
			printOpResult(res)
		}
	}

	report.FreeList = a.FreeSizes()
	report.Stats = a.Stats()

	if jsonOut {
		return printJSON(report)
	}
	printInfo("%s\n", freeListSummary(a))
	printVerbose("stats: %+v\n", report.Stats)
	return nil
}

func printOpResult(r opResult) {
	switch {
	case r.Op == "d":
	case r.Error != "":
		printError("%s: %s\n", r.Op, r.Error)
	case r.Op[0] == 'a':
		printInfo("%-6s -> ref=%d usable=%d\n", r.Op, r.Ref, r.Usable)
	default:
		printInfo("%-6s -> freed ref=%d\n", r.Op, r.Ref)
	}
}

// isOOM reports whether err is an allocation failure a workload may continue past.
func isOOM(err error) bool {
	return errors.Is(err, alloc.ErrOutOfMemory)
}
