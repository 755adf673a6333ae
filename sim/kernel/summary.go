package kernel

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/paging-sim/paging-sim/sim/memory"
)

// MaxFaultSamples caps the page faults retained in Summary.SampleFaults.
const MaxFaultSamples = 25

// ProcessStats are one process's counters. They only ever increase.
type ProcessStats struct {
	PID            int
	Accesses       int64
	PageFaults     int64
	Writes         int64
	DirtyEvictions int64
}

// FaultRate returns PageFaults / Accesses, or 0 with no accesses.
func (p ProcessStats) FaultRate() float64 {
	if p.Accesses == 0 {
		return 0
	}
	return float64(p.PageFaults) / float64(p.Accesses)
}

// VictimInfo describes the page a replacement evicted.
type VictimInfo struct {
	Frame memory.FrameID
	PID   int
	Page  int
	Dirty bool
}

// PageFaultRecord is a snapshot of one page fault.
type PageFaultRecord struct {
	Step   int64
	PID    int
	Page   int
	Write  bool
	Victim *VictimInfo // nil when the fault was served from the free queue
}

// Summary is the read-only result of one kernel run.
// DiskWrites == DirtyEvictions by construction.
type Summary struct {
	Algorithm      string
	PhysicalFrames int
	WorkingSetSize int

	TotalAccesses     int64
	PageFaults        int64
	FreeFrameFaults   int64
	Replacements      int64
	DiskWrites        int64
	CleanEvictions    int64
	DirtyEvictions    int64
	WorkingSetChanges int64
	PageFaultRate     float64

	Processes    []ProcessStats    // live and terminated, sorted by pid
	SampleFaults []PageFaultRecord // first MaxFaultSamples faults
}

// Print renders the summary as a human-readable report.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Paging Summary: %s (frames=%d, working set=%d) ===\n",
		s.Algorithm, s.PhysicalFrames, s.WorkingSetSize)
	fmt.Fprintf(w, "Total Accesses       : %d\n", s.TotalAccesses)
	fmt.Fprintf(w, "Page Faults          : %d (rate %.4f)\n", s.PageFaults, s.PageFaultRate)
	fmt.Fprintf(w, "  Free-frame Faults  : %d\n", s.FreeFrameFaults)
	fmt.Fprintf(w, "  Replacements       : %d\n", s.Replacements)
	fmt.Fprintf(w, "Evictions            : %d clean, %d dirty\n", s.CleanEvictions, s.DirtyEvictions)
	fmt.Fprintf(w, "Disk Writes          : %d\n", s.DiskWrites)
	fmt.Fprintf(w, "Working-set Changes  : %d\n", s.WorkingSetChanges)

	if len(s.Processes) > 0 {
		fmt.Fprintln(w, "--- Per-process ---")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "PID\tAccesses\tFaults\tWrites\tDirty Evictions\tFault Rate\t")
		for _, p := range s.Processes {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.4f\t\n",
				p.PID, p.Accesses, p.PageFaults, p.Writes, p.DirtyEvictions, p.FaultRate())
		}
		tw.Flush()
	}

	if len(s.SampleFaults) > 0 {
		fmt.Fprintf(w, "--- Sample page faults (first %d) ---\n", len(s.SampleFaults))
		for _, f := range s.SampleFaults {
			fmt.Fprintf(w, "step %d: pid %d page %d", f.Step, f.PID, f.Page)
			if f.Victim == nil {
				fmt.Fprintln(w, " -> free frame")
				continue
			}
			state := "clean"
			if f.Victim.Dirty {
				state = "dirty"
			}
			fmt.Fprintf(w, " -> evicted frame %d (pid %d page %d, %s)\n",
				f.Victim.Frame, f.Victim.PID, f.Victim.Page, state)
		}
	}
}
