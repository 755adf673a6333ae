package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/kernel"
	"github.com/paging-sim/paging-sim/sim/policy"
	"github.com/paging-sim/paging-sim/sim/recorder"
	"github.com/paging-sim/paging-sim/sim/scenario"
	"github.com/paging-sim/paging-sim/sim/trace"
	"github.com/paging-sim/paging-sim/sim/workload"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Deterministic virtual-memory paging simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd replays one generated trace under a single replacement policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the paging simulation with one replacement policy",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := workloadConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
		sc := sim.SimulationConfig{PhysicalFrames: physicalFrames, Algorithm: algorithm}
		if err := runSingle(cmd.OutOrStdout(), cfg, sc); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// compareCmd replays traces for every (working-set size, policy) pair
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare replacement policies across working-set sizes",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := workloadConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
		m := scenario.Matrix{
			Workload:        cfg,
			PhysicalFrames:  physicalFrames,
			Algorithms:      algorithms,
			WorkingSetSizes: wsSizes,
		}
		if err := runCompare(cmd.OutOrStdout(), m); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		logrus.Info("Comparison complete.")
	},
}

// generateCmd builds a trace and reports its statistics without replaying it
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a workload trace and print its statistics",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := workloadConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
		if err := runGenerate(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

func runSingle(w io.Writer, cfg sim.WorkloadConfig, sc sim.SimulationConfig) error {
	rec, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeRecorder(rec)

	r, err := scenario.Run(cfg, sc)
	if err != nil {
		return err
	}
	r.Summary.Print(w)
	record(rec, r.Summary)
	return nil
}

func runCompare(w io.Writer, m scenario.Matrix) error {
	rec, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeRecorder(rec)

	results, err := scenario.Compare(m)
	if err != nil {
		return err
	}
	scenario.PrintComparison(w, results)
	for _, r := range results {
		record(rec, r.Summary)
	}
	return nil
}

func runGenerate(w io.Writer, cfg sim.WorkloadConfig) error {
	tr, err := workload.Generate(cfg)
	if err != nil {
		return err
	}
	printTraceSummary(w, cfg, trace.Summarize(tr))
	return nil
}

func printTraceSummary(w io.Writer, cfg sim.WorkloadConfig, s *trace.TraceSummary) {
	fmt.Fprintf(w, "=== Workload Trace (seed=%d) ===\n", cfg.Seed)
	fmt.Fprintf(w, "Processes            : %d\n", s.Processes)
	fmt.Fprintf(w, "Events               : %d\n", s.TotalEvents)
	fmt.Fprintf(w, "Memory Accesses      : %d of %d requested\n", s.Accesses, cfg.TotalCPUAccesses)
	fmt.Fprintf(w, "Writes               : %d\n", s.Writes)
	fmt.Fprintf(w, "Working-set Changes  : %d\n", s.WorkingSetChanges)
	fmt.Fprintf(w, "Last Step            : %d\n", s.LastStep)
}

// openRecorder returns nil when --db is unset.
func openRecorder() (*recorder.Recorder, error) {
	if dbPath == "" {
		return nil, nil
	}
	return recorder.New(dbPath)
}

func record(rec *recorder.Recorder, s *kernel.Summary) {
	if rec == nil {
		return
	}
	id := rec.Record(s)
	logrus.Infof("Recorded %s run as %s", s.Algorithm, id)
}

func closeRecorder(rec *recorder.Recorder) {
	if rec == nil {
		return
	}
	if err := rec.Close(); err != nil {
		logrus.Errorf("Recording to %s failed: %v", rec.Path(), err)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	registerWorkloadFlags(rootCmd.PersistentFlags())
	registerKernelFlags(rootCmd.PersistentFlags())

	valid := strings.Join(policy.Names(), ", ")
	runCmd.Flags().StringVar(&algorithm, "algorithm", "clock", "Replacement policy ("+valid+")")
	compareCmd.Flags().StringSliceVar(&algorithms, "algorithms", nil, "Replacement policies to compare (default all: "+valid+")")
	compareCmd.Flags().IntSliceVar(&wsSizes, "ws-sizes", nil, "Working-set sizes to compare (default --working-set)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(generateCmd)
}
