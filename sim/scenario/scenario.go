// Package scenario runs the paging kernel over a matrix of
// (working-set size, replacement policy) scenarios. Each working-set size gets
// one generated trace, and every policy replays that same trace on its own
// kernel.
package scenario

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/kernel"
	"github.com/paging-sim/paging-sim/sim/policy"
	"github.com/paging-sim/paging-sim/sim/trace"
	"github.com/paging-sim/paging-sim/sim/workload"
)

// Scenario identifies one cell of a comparison.
type Scenario struct {
	Algorithm      string
	WorkingSetSize int
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s/ws=%d", s.Algorithm, s.WorkingSetSize)
}

// Result bundles the outputs of one scenario run.
type Result struct {
	Scenario
	Summary  *kernel.Summary
	Trace    *trace.TraceSummary
	WallTime time.Duration // wall-clock duration of kernel.Run, informational only
}

// Matrix describes a comparison. Empty Algorithms means every registered
// policy; empty WorkingSetSizes means Workload.WorkingSetSize alone.
type Matrix struct {
	Workload        sim.WorkloadConfig
	PhysicalFrames  int
	Algorithms      []string
	WorkingSetSizes []int
}

// Scenarios expands the matrix in (working-set size, algorithm) order.
func (m Matrix) Scenarios() []Scenario {
	algorithms := m.Algorithms
	if len(algorithms) == 0 {
		algorithms = policy.Names()
	}
	sizes := m.WorkingSetSizes
	if len(sizes) == 0 {
		sizes = []int{m.Workload.WorkingSetSize}
	}
	out := make([]Scenario, 0, len(sizes)*len(algorithms))
	for _, ws := range sizes {
		for _, a := range algorithms {
			out = append(out, Scenario{Algorithm: a, WorkingSetSize: ws})
		}
	}
	return out
}

// Validate checks every scenario's workload and simulation config up front so
// a bad cell fails before any run starts.
func (m Matrix) Validate() error {
	sc := sim.SimulationConfig{PhysicalFrames: m.PhysicalFrames}
	if err := sc.Validate(); err != nil {
		return err
	}
	for _, s := range m.Scenarios() {
		if !policy.IsValidName(s.Algorithm) {
			return fmt.Errorf("%w: unknown replacement policy %q; valid policies: %v", sim.ErrInvalidConfig, s.Algorithm, policy.Names())
		}
		cfg := m.Workload
		cfg.WorkingSetSize = s.WorkingSetSize
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s, err)
		}
	}
	return nil
}

// Run generates a trace from cfg and replays it under sc.
func Run(cfg sim.WorkloadConfig, sc sim.SimulationConfig) (*Result, error) {
	tr, err := workload.Generate(cfg)
	if err != nil {
		return nil, err
	}
	return replay(tr, sc)
}

// Compare runs every scenario in m and returns results in
// (working-set size, algorithm) order.
func Compare(m Matrix) ([]*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var (
		results []*Result
		tr      *trace.WorkloadTrace
	)
	for _, s := range m.Scenarios() {
		if tr == nil || tr.Config.WorkingSetSize != s.WorkingSetSize {
			cfg := m.Workload
			cfg.WorkingSetSize = s.WorkingSetSize
			var err error
			if tr, err = workload.Generate(cfg); err != nil {
				return nil, fmt.Errorf("scenario %s: %w", s, err)
			}
		}
		r, err := replay(tr, sim.SimulationConfig{PhysicalFrames: m.PhysicalFrames, Algorithm: s.Algorithm})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s, err)
		}
		results = append(results, r)
	}
	logrus.Infof("scenario: completed %d runs", len(results))
	return results, nil
}

func replay(tr *trace.WorkloadTrace, sc sim.SimulationConfig) (*Result, error) {
	k, err := kernel.New(sc)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	summary, err := k.Run(tr)
	if err != nil {
		return nil, err
	}
	return &Result{
		Scenario: Scenario{Algorithm: summary.Algorithm, WorkingSetSize: tr.Config.WorkingSetSize},
		Summary:  summary,
		Trace:    trace.Summarize(tr),
		WallTime: time.Since(start),
	}, nil
}
