package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/workload"
)

var (
	// Workload generator flags
	seed               int64   // Seed for trace generation
	processCount       int     // Number of simulated processes
	pagesPerProcess    int     // Virtual pages per process
	workingSetSize     int     // Pages in each process's working set
	wsChangeInterval   int     // Accesses by a process between working-set rotations
	totalAccesses      int     // Requested number of memory accesses
	localityProb       float64 // Probability an access targets the working set
	writeProb          float64 // Probability an access is a write
	minLifetime        float64 // Lower bound of the lifetime fraction
	maxLifetime        float64 // Upper bound of the lifetime fraction
	workloadConfigPath string  // YAML workload file; explicit flags override it
	preset             string  // Built-in workload preset; explicit flags override it

	// Kernel flags
	physicalFrames int      // Frames of physical memory
	algorithm      string   // Replacement policy for `run`
	algorithms     []string // Replacement policies for `compare` (empty = all)
	wsSizes        []int    // Working-set sizes for `compare` (empty = --working-set)

	// Output flags
	dbPath   string // SQLite file to record summaries to (empty = no recording)
	logLevel string // Log verbosity level
)

// registerWorkloadFlags binds the generator flags to fs with defaults taken
// from sim.DefaultWorkloadConfig.
func registerWorkloadFlags(fs *pflag.FlagSet) {
	d := sim.DefaultWorkloadConfig()
	fs.Int64Var(&seed, "seed", d.Seed, "Seed for trace generation")
	fs.IntVar(&processCount, "processes", d.ProcessCount, "Number of simulated processes")
	fs.IntVar(&pagesPerProcess, "pages", d.VirtualPagesPerProcess, "Virtual pages per process")
	fs.IntVar(&workingSetSize, "working-set", d.WorkingSetSize, "Working-set size in pages")
	fs.IntVar(&wsChangeInterval, "ws-interval", d.WorkingSetChangeInterval, "Accesses by a process between working-set rotations")
	fs.IntVar(&totalAccesses, "accesses", d.TotalCPUAccesses, "Requested number of memory accesses")
	fs.Float64Var(&localityProb, "locality", d.LocalityProbability, "Probability an access targets the working set")
	fs.Float64Var(&writeProb, "write-prob", d.WriteProbability, "Probability an access is a write")
	fs.Float64Var(&minLifetime, "min-lifetime", d.MinLifetimeFraction, "Minimum process lifetime as a fraction of the per-process access share")
	fs.Float64Var(&maxLifetime, "max-lifetime", d.MaxLifetimeFraction, "Maximum process lifetime as a fraction of the per-process access share")
	fs.StringVar(&workloadConfigPath, "workload-config", "", "YAML workload file; flags set explicitly take precedence")
	fs.StringVar(&preset, "preset", "", "Built-in workload preset ("+strings.Join(workload.ScenarioNames(), ", ")+"); flags set explicitly take precedence")
}

// registerKernelFlags binds the kernel and output flags to fs.
func registerKernelFlags(fs *pflag.FlagSet) {
	fs.IntVar(&physicalFrames, "frames", 16, "Number of physical frames")
	fs.StringVar(&dbPath, "db", "", "SQLite database to record summaries to")
}

// workloadConfig resolves the generator config: defaults, then the preset or
// the YAML file if one was given, then every flag set explicitly on the
// command line.
func workloadConfig(fs *pflag.FlagSet) (sim.WorkloadConfig, error) {
	cfg := sim.DefaultWorkloadConfig()
	switch {
	case preset != "" && workloadConfigPath != "":
		return cfg, fmt.Errorf("%w: --preset and --workload-config are mutually exclusive", sim.ErrInvalidConfig)
	case preset != "":
		p, err := workload.Scenario(preset, seed)
		if err != nil {
			return cfg, err
		}
		cfg = p
	case workloadConfigPath != "":
		loaded, err := workload.LoadWorkloadConfig(workloadConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"seed", func() { cfg.Seed = seed }},
		{"processes", func() { cfg.ProcessCount = processCount }},
		{"pages", func() { cfg.VirtualPagesPerProcess = pagesPerProcess }},
		{"working-set", func() { cfg.WorkingSetSize = workingSetSize }},
		{"ws-interval", func() { cfg.WorkingSetChangeInterval = wsChangeInterval }},
		{"accesses", func() { cfg.TotalCPUAccesses = totalAccesses }},
		{"locality", func() { cfg.LocalityProbability = localityProb }},
		{"write-prob", func() { cfg.WriteProbability = writeProb }},
		{"min-lifetime", func() { cfg.MinLifetimeFraction = minLifetime }},
		{"max-lifetime", func() { cfg.MaxLifetimeFraction = maxLifetime }},
	}
	for _, o := range overrides {
		if fs.Changed(o.flag) {
			o.apply()
		}
	}
	return cfg, cfg.Validate()
}
