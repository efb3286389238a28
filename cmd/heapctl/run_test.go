package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in      string
		want    op
		wantErr bool
	}{
		{in: "a10", want: op{kind: opAlloc, arg: 10}},
		{in: "f3", want: op{kind: opFree, arg: 3}},
		{in: "d", want: op{kind: opDump}},
		{in: "a", wantErr: true},
		{in: "a0", wantErr: true},
		{in: "a-5", wantErr: true},
		{in: "fx", wantErr: true},
		{in: "x10", wantErr: true},
		{in: "", wantErr: true},
		{in: "dd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseOp(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		policy         string
		capacity       int
		check          bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:   "reuse freed block",
			args:   []string{"a10", "a20", "f1", "a8"},
			policy: "coalesce",
			wantContain: []string{
				"a10    -> ref=65496 usable=16",
				"a20    -> ref=65448 usable=24",
				"f1     -> freed ref=65496",
				"a8     -> ref=65496 usable=16",
				"free list: 1 block(s) [65400]",
			},
		},
		{
			name:        "coalesce restores arena",
			args:        []string{"a100", "a100", "f1", "f2"},
			policy:      "coalesce",
			check:       true,
			wantContain: []string{"free list: 1 block(s) [65488]"},
		},
		{
			name:        "classic keeps fragments",
			args:        []string{"a100", "a100", "f1", "f2"},
			policy:      "none",
			check:       true,
			wantContain: []string{"free list: 3 block(s) [104 104 65232]"},
		},
		{
			name:        "dump",
			args:        []string{"a16", "d"},
			capacity:    1024,
			policy:      "coalesce",
			wantContain: []string{"FREELIST (head=0x0)", "ARENA (capacity=1024)", "sentinel"},
		},
		{
			name:           "out of memory continues",
			args:           []string{"a2000", "a8"},
			capacity:       1024,
			policy:         "coalesce",
			wantContain:    []string{"a8     -> ref=992 usable=8"},
			wantNotContain: []string{"a2000  -> ref="},
		},
		{
			name:           "free of failed allocation",
			args:           []string{"a2000", "f1", "a8"},
			capacity:       1024,
			policy:         "coalesce",
			wantContain:    []string{"a8     -> ref=992 usable=8"},
			wantNotContain: []string{"freed ref=0"},
		},
		{
			name:    "invalid op",
			args:    []string{"a10", "z"},
			policy:  "coalesce",
			wantErr: true,
		},
		{
			name:    "invalid policy",
			args:    []string{"a10"},
			policy:  "sometimes",
			wantErr: true,
		},
		{
			name:     "invalid capacity",
			args:     []string{"a10"},
			policy:   "none",
			capacity: 1001,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			runPolicy = tt.policy
			runVerify = tt.check
			runCapacity = tt.capacity
			if runCapacity == 0 {
				runCapacity = 64 * 1024
			}

			output, err := captureOutput(t, func() error {
				return runRun(tt.args)
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runRun() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
			if tt.wantErr {
				return
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	defer resetFlags()
	runPolicy, runVerify, runCapacity = "none", true, 4096

	output, err := captureOutput(t, func() error {
		return runRun([]string{"a10", "a20", "f1", "f9", "d"})
	})
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}
	assertJSON(t, output)
	assertNotContains(t, output, []string{"FREELIST"})

	var report runReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Policy != "none" || len(report.Ops) != 5 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Ops[0].Usable != 16 || report.Ops[1].Usable != 24 {
		t.Errorf("usable sizes = %d, %d; want 16, 24", report.Ops[0].Usable, report.Ops[1].Usable)
	}
	if !strings.Contains(report.Ops[3].Error, "no allocation #9") {
		t.Errorf("f9 error = %q", report.Ops[3].Error)
	}
	if got := report.FreeList; len(got) != 2 || got[0] != 16 {
		t.Errorf("free list = %v, want [16 ...]", got)
	}
	if report.Stats.Splits != 2 {
		t.Errorf("splits = %d, want 2", report.Stats.Splits)
	}
}

func TestRunCommand_FreeFailedAllocation(t *testing.T) {
	resetFlags()
	jsonOut = true
	defer resetFlags()
	runPolicy, runVerify, runCapacity = "coalesce", true, 1024

	output, err := captureOutput(t, func() error {
		return runRun([]string{"a2000", "f1"})
	})
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}

	var report runReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if len(report.Ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(report.Ops))
	}
	if got := report.Ops[1]; got.Error != "allocation #1 failed" || got.Ref != 0 {
		t.Errorf("f1 = %+v, want error %q", got, "allocation #1 failed")
	}
	if report.Stats.FreeCalls != 0 {
		t.Errorf("free calls = %d, want 0", report.Stats.FreeCalls)
	}
}
