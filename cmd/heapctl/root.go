package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Drive and inspect a fixed-arena free-list allocator",
	Long: `heapctl runs allocation scripts and workloads against a single-arena,
boundary-tag allocator, printing the free list, the physical block layout,
fragmentation figures and invariant checks along the way.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit debug logs as JSON (with --verbose)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns the logger handed to the allocator: debug records on
// stderr with --verbose, discarded otherwise.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openAllocator builds and initializes an allocator from CLI settings.
func openAllocator(capacity int, policy string) (*alloc.Allocator, error) {
	p, err := alloc.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	a := alloc.New(&alloc.Config{
		Arena:    heap.Config{Capacity: capacity},
		Coalesce: p,
	}, alloc.WithLogger(newLogger()))
	if err := a.Init(); err != nil {
		return nil, fmt.Errorf("init arena: %w", err)
	}
	return a, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// freeListSummary renders free-list sizes the way every command prints them.
func freeListSummary(a *alloc.Allocator) string {
	return fmt.Sprintf("free list: %d block(s) %v", a.FreeListLen(), a.FreeSizes())
}
