package workload

import (
	"fmt"
	"sort"

	"github.com/paging-sim/paging-sim/sim"
)

// Built-in scenario presets for common paging patterns.
// Each returns a valid WorkloadConfig ready for use with Generate.

// ScenarioHighLocality keeps almost every access inside a small working set.
func ScenarioHighLocality(seed int64) sim.WorkloadConfig {
	cfg := sim.DefaultWorkloadConfig()
	cfg.Seed = seed
	cfg.WorkingSetSize = 4
	cfg.LocalityProbability = 0.98
	cfg.WorkingSetChangeInterval = 1000
	return cfg
}

// ScenarioThrashing spreads accesses over large, fast-rotating working sets.
func ScenarioThrashing(seed int64) sim.WorkloadConfig {
	cfg := sim.DefaultWorkloadConfig()
	cfg.Seed = seed
	cfg.ProcessCount = 8
	cfg.WorkingSetSize = 32
	cfg.LocalityProbability = 0.6
	cfg.WorkingSetChangeInterval = 50
	return cfg
}

// ScenarioWriteHeavy makes most accesses writes, so most evictions are dirty.
func ScenarioWriteHeavy(seed int64) sim.WorkloadConfig {
	cfg := sim.DefaultWorkloadConfig()
	cfg.Seed = seed
	cfg.WriteProbability = 0.8
	return cfg
}

// ScenarioShortLived runs many small processes, each alive for a short slice
// of the trace, so frames are freed and reused throughout the run. Lifetimes
// stay close to the per-process share to keep the trace at least a third of
// the requested accesses.
func ScenarioShortLived(seed int64) sim.WorkloadConfig {
	cfg := sim.DefaultWorkloadConfig()
	cfg.Seed = seed
	cfg.ProcessCount = 24
	cfg.VirtualPagesPerProcess = 32
	cfg.MinLifetimeFraction = 0.8
	cfg.MaxLifetimeFraction = 0.9
	return cfg
}

var scenarios = map[string]func(seed int64) sim.WorkloadConfig{
	"high-locality": ScenarioHighLocality,
	"thrashing":     ScenarioThrashing,
	"write-heavy":   ScenarioWriteHeavy,
	"short-lived":   ScenarioShortLived,
}

// ScenarioNames returns the preset names, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario returns the named preset with the given seed.
func Scenario(name string, seed int64) (sim.WorkloadConfig, error) {
	f, ok := scenarios[name]
	if !ok {
		return sim.WorkloadConfig{}, fmt.Errorf("%w: unknown workload preset %q; valid presets: %v", sim.ErrInvalidConfig, name, ScenarioNames())
	}
	return f(seed), nil
}
