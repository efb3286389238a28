package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	fragSeed     int64
	fragRounds   int
	fragMax      int
	fragCapacity int
)

func init() {
	cmd := newFragCmd()
	cmd.Flags().Int64Var(&fragSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&fragRounds, "rounds", 10000, "Number of alloc/free operations")
	cmd.Flags().IntVar(&fragMax, "max", 512, "Largest request size in bytes")
	cmd.Flags().IntVar(&fragCapacity, "capacity", heap.DefaultCapacity, "Arena capacity in bytes")
	rootCmd.AddCommand(cmd)
}

func newFragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frag",
		Short: "Compare fragmentation across coalescing policies",
		Long: `The frag command runs the same seeded random workload under each
coalescing policy and reports allocation failures, free-list length, the
largest free block and the external fragmentation ratio.

Example:
  heapctl frag
  heapctl frag --seed 7 --rounds 50000 --max 1024 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrag()
		},
	}
	return cmd
}

type fragReport struct {
	Policy        string              `json:"policy"`
	Workload      workloadResult      `json:"workload"`
	FreeListLen   int                 `json:"free_list_len"`
	Fragmentation alloc.Fragmentation `json:"fragmentation"`
}

func runFrag() error {
	if err := (workload{rounds: fragRounds, max: fragMax}).validate("rounds"); err != nil {
		return err
	}

	var reports []fragReport
	for _, policy := range []string{"coalesce", "none"} {
		r, err := fragRun(policy)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	if jsonOut {
		return printJSON(reports)
	}

	printInfo("seed=%d rounds=%d max=%d capacity=%d\n\n", fragSeed, fragRounds, fragMax, fragCapacity)
	printInfo("%-10s %8s %8s %10s %12s %8s\n", "POLICY", "FAILED", "LIVE", "FREE LIST", "LARGEST", "RATIO")
	for _, r := range reports {
		printInfo("%-10s %8d %8d %10d %12d %8.3f\n",
			r.Policy, r.Workload.Failures, r.Workload.Live, r.FreeListLen,
			r.Fragmentation.LargestFree, r.Fragmentation.Ratio)
	}
	return nil
}

func fragRun(policy string) (fragReport, error) {
	a, err := openAllocator(fragCapacity, policy)
	if err != nil {
		return fragReport{}, err
	}
	defer a.Close()

	w := workload{seed: fragSeed, rounds: fragRounds, max: fragMax}
	res, err := w.run(a)
	if err != nil {
		return fragReport{}, err
	}
	f, err := a.Fragmentation()
	if err != nil {
		return fragReport{}, err
	}
	printVerbose("%s: %+v\n", policy, a.Stats())

	return fragReport{
		Policy:        a.Policy().String(),
		Workload:      res,
		FreeListLen:   a.FreeListLen(),
		Fragmentation: f,
	}, nil
}
