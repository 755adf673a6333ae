package trace

import "fmt"

// TraceSummary aggregates event counts from a WorkloadTrace.
type TraceSummary struct {
	TotalEvents       int
	Starts            int
	Terminates        int
	WorkingSetChanges int
	Accesses          int
	Writes            int
	Processes         int // distinct pids seen
	LastStep          int64
}

// Summarize computes aggregate statistics from a WorkloadTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *WorkloadTrace) *TraceSummary {
	summary := &TraceSummary{}
	if t == nil {
		return summary
	}

	pids := make(map[int]struct{})
	for _, ev := range t.Events {
		summary.TotalEvents++
		pids[ev.PID()] = struct{}{}
		if ev.Step() > summary.LastStep {
			summary.LastStep = ev.Step()
		}
		switch e := ev.(type) {
		case *ProcessStart:
			summary.Starts++
		case *ProcessTerminate:
			summary.Terminates++
		case *WorkingSetChange:
			summary.WorkingSetChanges++
		case *MemoryAccess:
			summary.Accesses++
			if e.Write {
				summary.Writes++
			}
		default:
			panic(fmt.Sprintf("trace.Summarize: unhandled event %T", ev))
		}
	}
	summary.Processes = len(pids)
	return summary
}
