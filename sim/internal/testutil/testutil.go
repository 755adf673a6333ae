// Package testutil provides shared test infrastructure for the paging
// simulator: a hand-written trace builder and assertion helpers used across
// sim/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/trace"
)

// TraceBuilder assembles small, exact traces for kernel tests. Accesses and
// terminations take one step each; starts and working-set changes share the
// current step.
type TraceBuilder struct {
	step   int64
	config sim.WorkloadConfig
	events []trace.Event
}

// NewTraceBuilder starts an empty trace at step 0.
func NewTraceBuilder() *TraceBuilder {
	return &TraceBuilder{config: sim.DefaultWorkloadConfig()}
}

// WithWorkingSetSize sets the working-set size recorded in the trace config.
func (b *TraceBuilder) WithWorkingSetSize(n int) *TraceBuilder {
	b.config.WorkingSetSize = n
	return b
}

// Start adds a ProcessStart for pid at the current step.
func (b *TraceBuilder) Start(pid, pages int) *TraceBuilder {
	b.events = append(b.events, &trace.ProcessStart{At: b.step, Process: pid, VirtualPageCount: pages})
	return b
}

// WorkingSet adds a WorkingSetChange for pid at the current step.
func (b *TraceBuilder) WorkingSet(pid int, pages ...int) *TraceBuilder {
	b.events = append(b.events, &trace.WorkingSetChange{At: b.step, Process: pid, WorkingSet: pages})
	return b
}

// Read adds a read of page by pid and advances the step.
func (b *TraceBuilder) Read(pid, page int) *TraceBuilder {
	return b.access(pid, page, false)
}

// Write adds a write of page by pid and advances the step.
func (b *TraceBuilder) Write(pid, page int) *TraceBuilder {
	return b.access(pid, page, true)
}

// Reads adds one read per listed page.
func (b *TraceBuilder) Reads(pid int, pages ...int) *TraceBuilder {
	for _, p := range pages {
		b.Read(pid, p)
	}
	return b
}

// Terminate adds a ProcessTerminate for pid at the current step and advances
// the step, so later events replay after the process's frames are freed.
func (b *TraceBuilder) Terminate(pid int) *TraceBuilder {
	b.events = append(b.events, &trace.ProcessTerminate{At: b.step, Process: pid})
	b.step++
	return b
}

// Build returns the trace in replay order.
func (b *TraceBuilder) Build() *trace.WorkloadTrace {
	events := append([]trace.Event(nil), b.events...)
	return trace.NewWorkloadTrace(b.config, events)
}

func (b *TraceBuilder) access(pid, page int, write bool) *TraceBuilder {
	b.events = append(b.events, &trace.MemoryAccess{At: b.step, Process: pid, Page: page, Write: write})
	b.step++
	return b
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
