package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintComparison renders one row per result plus, for each working-set size,
// the policy with the fewest faults.
func PrintComparison(w io.Writer, results []*Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No scenarios run.")
		return
	}
	fmt.Fprintf(w, "=== Policy Comparison (frames=%d) ===\n", results[0].Summary.PhysicalFrames)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WS\tPolicy\tAccesses\tFaults\tFault Rate\tReplacements\tDisk Writes\t")
	for _, r := range results {
		s := r.Summary
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.4f\t%d\t%d\t\n",
			r.WorkingSetSize, r.Algorithm, s.TotalAccesses, s.PageFaults, s.PageFaultRate, s.Replacements, s.DiskWrites)
	}
	tw.Flush()

	for _, best := range Best(results) {
		fmt.Fprintf(w, "ws=%d: fewest faults with %s (%d)\n", best.WorkingSetSize, best.Algorithm, best.Summary.PageFaults)
	}
}

// Best returns, per working-set size in first-seen order, the result with the
// fewest page faults. Ties keep the earlier result.
func Best(results []*Result) []*Result {
	var (
		order []int
		best  = make(map[int]*Result)
	)
	for _, r := range results {
		cur, seen := best[r.WorkingSetSize]
		if !seen {
			order = append(order, r.WorkingSetSize)
		}
		if !seen || r.Summary.PageFaults < cur.Summary.PageFaults {
			best[r.WorkingSetSize] = r
		}
	}
	out := make([]*Result, 0, len(order))
	for _, ws := range order {
		out = append(out, best[ws])
	}
	return out
}
