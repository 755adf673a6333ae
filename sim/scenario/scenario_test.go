package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/kernel"
)

func smallWorkload() sim.WorkloadConfig {
	cfg := sim.DefaultWorkloadConfig()
	cfg.ProcessCount = 3
	cfg.VirtualPagesPerProcess = 24
	cfg.TotalCPUAccesses = 3000
	cfg.WorkingSetChangeInterval = 100
	return cfg
}

func TestMatrix_Scenarios_Order(t *testing.T) {
	m := Matrix{Workload: smallWorkload(), Algorithms: []string{"random", "clock"}, WorkingSetSizes: []int{4, 8}}
	assert.Equal(t, []Scenario{
		{"random", 4}, {"clock", 4},
		{"random", 8}, {"clock", 8},
	}, m.Scenarios())
}

func TestMatrix_Scenarios_Defaults(t *testing.T) {
	cfg := smallWorkload()
	m := Matrix{Workload: cfg}
	assert.Equal(t, []Scenario{
		{"clock", cfg.WorkingSetSize}, {"random", cfg.WorkingSetSize},
	}, m.Scenarios())
}

func TestMatrix_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Matrix)
	}{
		{"zero frames", func(m *Matrix) { m.PhysicalFrames = 0 }},
		{"unknown algorithm", func(m *Matrix) { m.Algorithms = []string{"clock", "fifo"} }},
		{"working set larger than address space", func(m *Matrix) { m.WorkingSetSizes = []int{4, 25} }},
		{"zero working set", func(m *Matrix) { m.WorkingSetSizes = []int{0} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Matrix{Workload: smallWorkload(), PhysicalFrames: 8}
			tc.mutate(&m)
			_, err := Compare(m)
			assert.ErrorIs(t, err, sim.ErrInvalidConfig)
		})
	}
}

func TestCompare_SameTracePerWorkingSetSize(t *testing.T) {
	// GIVEN two policies over two working-set sizes
	m := Matrix{
		Workload:        smallWorkload(),
		PhysicalFrames:  10,
		Algorithms:      []string{"clock", "random"},
		WorkingSetSizes: []int{3, 6},
	}

	// WHEN compared
	results, err := Compare(m)
	require.NoError(t, err)

	// THEN there is one result per cell, in matrix order
	require.Len(t, results, 4)
	for i, s := range m.Scenarios() {
		assert.Equal(t, s, results[i].Scenario)
		assert.Equal(t, 10, results[i].Summary.PhysicalFrames)
		assert.Equal(t, s.WorkingSetSize, results[i].Summary.WorkingSetSize)
		assert.Equal(t, results[i].Summary.DiskWrites, results[i].Summary.DirtyEvictions)
	}

	// AND policies sharing a working-set size replayed the identical trace
	for i := 0; i < 4; i += 2 {
		assert.Equal(t, results[i].Trace, results[i+1].Trace)
		assert.Equal(t, results[i].Summary.TotalAccesses, results[i+1].Summary.TotalAccesses)
		assert.Equal(t, int64(results[i].Trace.Accesses), results[i].Summary.TotalAccesses)
	}
}

func TestCompare_Deterministic(t *testing.T) {
	m := Matrix{Workload: smallWorkload(), PhysicalFrames: 6, WorkingSetSizes: []int{4}}
	a, err := Compare(m)
	require.NoError(t, err)
	b, err := Compare(m)
	require.NoError(t, err)
	require.Len(t, a, len(b))
	for i := range a {
		assert.Equal(t, a[i].Summary, b[i].Summary, a[i].Scenario.String())
	}
}

func TestRun_SingleScenario(t *testing.T) {
	r, err := Run(smallWorkload(), sim.SimulationConfig{PhysicalFrames: 8, Algorithm: "clock"})
	require.NoError(t, err)
	assert.Equal(t, Scenario{Algorithm: "clock", WorkingSetSize: smallWorkload().WorkingSetSize}, r.Scenario)
	assert.Equal(t, r.Trace.Processes, len(r.Summary.Processes))
}

func TestRun_InvalidWorkload(t *testing.T) {
	cfg := smallWorkload()
	cfg.ProcessCount = 0
	_, err := Run(cfg, sim.SimulationConfig{PhysicalFrames: 8, Algorithm: "clock"})
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func result(alg string, ws int, faults int64) *Result {
	return &Result{
		Scenario: Scenario{Algorithm: alg, WorkingSetSize: ws},
		Summary:  &kernel.Summary{Algorithm: alg, PhysicalFrames: 4, WorkingSetSize: ws, PageFaults: faults},
	}
}

func TestBest_FewestFaultsPerWorkingSet(t *testing.T) {
	results := []*Result{
		result("clock", 4, 10), result("random", 4, 12),
		result("clock", 8, 30), result("random", 8, 25),
		result("clock", 2, 5), result("random", 2, 5),
	}
	best := Best(results)
	require.Len(t, best, 3)
	assert.Equal(t, results[0], best[0])
	assert.Equal(t, results[3], best[1])
	assert.Equal(t, results[4], best[2], "ties keep the earlier result")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	PrintComparison(&buf, []*Result{result("clock", 4, 10), result("random", 4, 12)})
	out := buf.String()
	assert.Contains(t, out, "Policy Comparison (frames=4)")
	assert.Contains(t, out, "random")
	assert.Contains(t, out, "ws=4: fewest faults with clock (10)")

	buf.Reset()
	PrintComparison(&buf, nil)
	assert.Equal(t, "No scenarios run.\n", buf.String())
}
