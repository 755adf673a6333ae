package trace

import (
	"sort"

	"github.com/paging-sim/paging-sim/sim"
)

// WorkloadTrace is an ordered event sequence plus the config that produced it.
type WorkloadTrace struct {
	Config sim.WorkloadConfig
	Events []Event
}

// NewWorkloadTrace sorts events into replay order and wraps them.
func NewWorkloadTrace(config sim.WorkloadConfig, events []Event) *WorkloadTrace {
	SortEvents(events)
	return &WorkloadTrace{Config: config, Events: events}
}

// Len returns the number of events.
func (t *WorkloadTrace) Len() int {
	return len(t.Events)
}

// AccessCount returns the number of MemoryAccess events.
func (t *WorkloadTrace) AccessCount() int {
	n := 0
	for _, ev := range t.Events {
		if ev.Kind() == KindMemoryAccess {
			n++
		}
	}
	return n
}

// Less reports whether a must be replayed before b.
func Less(a, b Event) bool {
	if a.Step() != b.Step() {
		return a.Step() < b.Step()
	}
	return a.Kind() < b.Kind()
}

// SortEvents orders events by (step, kind rank) in place. The sort is stable,
// so events of equal step and kind keep their emission order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}
