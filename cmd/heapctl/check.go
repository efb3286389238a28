package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkSeed     int64
	checkOps      int
	checkMax      int
	checkCapacity int
	checkPolicy   string
)

func init() {
	cmd := newCheckCmd()
	cmd.Flags().Int64Var(&checkSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&checkOps, "ops", 2000, "Number of alloc/free operations")
	cmd.Flags().IntVar(&checkMax, "max", 512, "Largest request size in bytes")
	cmd.Flags().IntVar(&checkCapacity, "capacity", 16*1024, "Arena capacity in bytes")
	cmd.Flags().StringVar(&checkPolicy, "policy", "coalesce", "Coalescing policy: coalesce or none")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a workload verifying every invariant after each op",
		Long: `The check command runs a seeded random workload and verifies the
arena layout, boundary tags, free-list links and membership after every
operation. It exits non-zero on the first violation.

Example:
  heapctl check
  heapctl check --policy none --ops 100000 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
	return cmd
}

type checkReport struct {
	Policy   string         `json:"policy"`
	Seed     int64          `json:"seed"`
	Workload workloadResult `json:"workload"`
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
}

func runCheck() error {
	if err := (workload{rounds: checkOps, max: checkMax}).validate("ops"); err != nil {
		return err
	}

	a, err := openAllocator(checkCapacity, checkPolicy)
	if err != nil {
		return err
	}
	defer a.Close()

	report := checkReport{Policy: a.Policy().String(), Seed: checkSeed}
	w := workload{
		seed:   checkSeed,
		rounds: checkOps,
		max:    checkMax,
		after:  mustCheck(a.MustCheck),
	}
	report.Workload, err = w.run(a)
	if err != nil {
		report.Error = err.Error()
	}
	report.OK = err == nil

	if jsonOut {
		if jerr := printJSON(report); jerr != nil {
			return jerr
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("invariant check failed after %d allocs, %d frees: %w",
			report.Workload.Allocs, report.Workload.Frees, err)
	}
	printInfo("OK: %d ops (%d allocs, %d frees, %d failed), %d live, policy %s\n",
		checkOps, report.Workload.Allocs, report.Workload.Frees,
		report.Workload.Failures, report.Workload.Live, report.Policy)
	return nil
}

// mustCheck turns a panicking check into an error-returning one.
func mustCheck(check func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		check()
		return nil
	}
}

