// Package sim holds the configuration and deterministic randomness shared by
// the virtual-memory paging simulator.
//
// # Reading Guide
//
// The simulation is a two-stage pipeline:
//   - sim/workload: turns a WorkloadConfig and seed into a WorkloadTrace
//   - sim/kernel: replays a trace through a frame table and per-process page
//     tables, consulting a replacement policy on every fault with no free frame
//
// # Architecture
//
//   - sim/trace: immutable event records and the ordered trace container
//   - sim/memory: frame and page-table-entry records; the Memory arena keeps
//     each frame and its entry linked by index, never by pointer
//   - sim/policy: replacement policies (random, clock) behind ReplacementPolicy
//   - sim/scenario: runs one trace through several kernels for comparison
//   - sim/recorder: optional SQLite persistence of run summaries
//
// All randomness flows through PartitionedRNG. Nothing in a run reads the
// wall clock, so a (config, seed, algorithm) triple always yields the same
// summary.
package sim
