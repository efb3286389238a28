package main

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// workload drives a seeded random mix of allocations and frees.
type workload struct {
	seed   int64
	rounds int
	max    int
	// after runs once per round; a non-nil error stops the workload.
	after func() error
}

type workloadResult struct {
	Allocs   int `json:"allocs"`
	Frees    int `json:"frees"`
	Failures int `json:"failures"`
	Live     int `json:"live"`
}

// validate rejects parameters the generator cannot draw from. roundsFlag
// names the flag that set rounds.
func (w workload) validate(roundsFlag string) error {
	if w.max <= 0 {
		return fmt.Errorf("--max must be positive, got %d", w.max)
	}
	if w.rounds < 0 {
		return fmt.Errorf("--%s must not be negative, got %d", roundsFlag, w.rounds)
	}
	return nil
}

// run executes the workload against a. Live blocks are left allocated so
// callers can inspect the fragmented arena.
func (w workload) run(a *alloc.Allocator) (workloadResult, error) {
	var res workloadResult
	if err := w.validate("rounds"); err != nil {
		return res, err
	}
	rng := rand.New(rand.NewSource(w.seed))
	var live []alloc.Ref

	for range w.rounds {
		if len(live) == 0 || rng.Intn(100) < 55 {
			ref, _, err := a.Alloc(1 + rng.Intn(w.max))
			switch {
			case err == nil:
				live = append(live, ref)
				res.Allocs++
			case isOOM(err):
				res.Failures++
			default:
				return res, err
			}
		} else {
			i := rng.Intn(len(live))
			if err := a.Free(live[i]); err != nil {
				return res, err
			}
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			res.Frees++
		}
		if w.after != nil {
			if err := w.after(); err != nil {
				return res, err
			}
		}
	}
	res.Live = len(live)
	return res, nil
}
