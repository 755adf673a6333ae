// Package kernel replays a workload trace through a simulated MMU: per-process
// page tables, a fixed frame table, a FIFO free-frame queue and a pluggable
// replacement policy.
package kernel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/memory"
	"github.com/paging-sim/paging-sim/sim/policy"
	"github.com/paging-sim/paging-sim/sim/trace"
)

// ErrMalformedTrace is returned when a trace breaks the process lifecycle:
// an event for a pid that is not live, a repeated start, or an access
// outside the process's address space.
var ErrMalformedTrace = errors.New("malformed trace")

// Kernel is the state of one replay. It is single-use: build a new Kernel per
// (trace, algorithm) run.
type Kernel struct {
	config    sim.SimulationConfig
	memory    *memory.Memory
	freeQueue []memory.FrameID
	policy    policy.ReplacementPolicy
	processes map[int]*ProcessStats
	completed map[int]ProcessStats
	summary   Summary
	hasRun    bool
}

// New creates a kernel using the policy named by config.Algorithm.
func New(config sim.SimulationConfig) (*Kernel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	factory, err := policy.Lookup(config.Algorithm)
	if err != nil {
		return nil, err
	}
	return NewWithPolicy(config, factory)
}

// NewWithPolicy creates a kernel whose policy is built by factory over the
// kernel's own frame table. config.Algorithm is only used as a label; when
// empty the policy's Name is used.
func NewWithPolicy(config sim.SimulationConfig, factory policy.Factory) (*Kernel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	mem := memory.NewMemory(config.PhysicalFrames)
	free := make([]memory.FrameID, config.PhysicalFrames)
	for i := range free {
		free[i] = memory.FrameID(i)
	}
	p := factory(mem)
	if config.Algorithm == "" {
		config.Algorithm = p.Name()
	}
	return &Kernel{
		config:    config,
		memory:    mem,
		freeQueue: free,
		policy:    p,
		processes: make(map[int]*ProcessStats),
		completed: make(map[int]ProcessStats),
	}, nil
}

// Run replays tr in order and returns the run's summary.
// Panics if called more than once, or if the frame/page-table links are
// found broken.
func (k *Kernel) Run(tr *trace.WorkloadTrace) (*Summary, error) {
	if k.hasRun {
		panic("Kernel.Run() called more than once")
	}
	k.hasRun = true

	var events []trace.Event
	if tr != nil {
		events = tr.Events
		k.summary.WorkingSetSize = tr.Config.WorkingSetSize
	}
	logrus.Infof("kernel[%s]: replaying %d events over %d frames", k.config.Algorithm, len(events), k.config.PhysicalFrames)

	for _, ev := range events {
		if err := k.handle(ev); err != nil {
			return nil, fmt.Errorf("kernel[%s] step %d: %w", k.config.Algorithm, ev.Step(), err)
		}
	}

	s := k.finalize()
	logrus.Infof("kernel[%s]: %d accesses, %d faults (rate %.4f), %d replacements",
		s.Algorithm, s.TotalAccesses, s.PageFaults, s.PageFaultRate, s.Replacements)
	return s, nil
}

func (k *Kernel) handle(ev trace.Event) error {
	switch e := ev.(type) {
	case *trace.ProcessStart:
		return k.startProcess(e)
	case *trace.ProcessTerminate:
		return k.terminateProcess(e)
	case *trace.WorkingSetChange:
		k.summary.WorkingSetChanges++
		return nil
	case *trace.MemoryAccess:
		return k.access(e)
	default:
		panic(fmt.Sprintf("kernel: unhandled event type %T", ev))
	}
}

func (k *Kernel) startProcess(e *trace.ProcessStart) error {
	if _, live := k.processes[e.Process]; live {
		return fmt.Errorf("%w: pid %d started twice", ErrMalformedTrace, e.Process)
	}
	if _, done := k.completed[e.Process]; done {
		return fmt.Errorf("%w: pid %d restarted after termination", ErrMalformedTrace, e.Process)
	}
	k.memory.AddProcess(e.Process, e.VirtualPageCount)
	k.processes[e.Process] = &ProcessStats{PID: e.Process}
	logrus.Debugf("kernel: start pid %d (%d pages)", e.Process, e.VirtualPageCount)
	return nil
}

func (k *Kernel) terminateProcess(e *trace.ProcessTerminate) error {
	stats, live := k.processes[e.Process]
	if !live {
		return fmt.Errorf("%w: terminate of pid %d which is not running", ErrMalformedTrace, e.Process)
	}
	pt, _ := k.memory.Table(e.Process)
	for _, page := range pt.PresentPages() {
		id, _ := k.memory.Lookup(e.Process, page)
		k.release(id)
		k.freeQueue = append(k.freeQueue, id)
	}
	k.memory.RemoveProcess(e.Process)
	k.completed[e.Process] = *stats
	delete(k.processes, e.Process)
	logrus.Debugf("kernel: terminate pid %d (%d accesses, %d faults)", e.Process, stats.Accesses, stats.PageFaults)
	return nil
}

func (k *Kernel) access(e *trace.MemoryAccess) error {
	stats, live := k.processes[e.Process]
	if !live {
		return fmt.Errorf("%w: access by pid %d which is not running", ErrMalformedTrace, e.Process)
	}
	if pt, _ := k.memory.Table(e.Process); e.Page < 0 || e.Page >= len(pt.Entries) {
		return fmt.Errorf("%w: pid %d page %d outside [0,%d)", ErrMalformedTrace, e.Process, e.Page, len(pt.Entries))
	}

	k.summary.TotalAccesses++
	stats.Accesses++
	if e.Write {
		stats.Writes++
	}

	if id, hit := k.memory.Lookup(e.Process, e.Page); hit {
		k.memory.NoteAccess(id, e.Write)
		k.policy.OnFrameAccess(id)
		return nil
	}

	k.summary.PageFaults++
	stats.PageFaults++

	var (
		id     memory.FrameID
		victim *VictimInfo
	)
	if len(k.freeQueue) > 0 {
		id = k.freeQueue[0]
		k.freeQueue = k.freeQueue[1:]
		k.summary.FreeFrameFaults++
	} else {
		chosen, err := k.policy.ChooseVictim()
		if err != nil {
			return fmt.Errorf("choosing victim for pid %d page %d: %w", e.Process, e.Page, err)
		}
		if k.memory.Frame(chosen).IsFree() {
			return fmt.Errorf("policy %s chose free frame %d", k.policy.Name(), chosen)
		}
		info := k.release(chosen)
		victim = &info
		id = chosen
		k.summary.Replacements++
		logrus.Debugf("kernel: step %d evict frame %d (pid %d page %d dirty=%v) for pid %d page %d",
			e.At, chosen, info.PID, info.Page, info.Dirty, e.Process, e.Page)
	}

	k.memory.Attach(id, e.Process, e.Page, e.Write)
	k.policy.OnFrameLoaded(id)

	if len(k.summary.SampleFaults) < MaxFaultSamples {
		k.summary.SampleFaults = append(k.summary.SampleFaults, PageFaultRecord{
			Step:   e.At,
			PID:    e.Process,
			Page:   e.Page,
			Write:  e.Write,
			Victim: victim,
		})
	}
	return nil
}

// release unmaps frame id, accounts the eviction and tells the policy.
// The frame is not queued; callers decide whether it is reused or freed.
func (k *Kernel) release(id memory.FrameID) VictimInfo {
	before := k.memory.Release(id)
	if before.Dirty {
		k.summary.DiskWrites++
		k.summary.DirtyEvictions++
		if owner, live := k.processes[before.Owner]; live {
			owner.DirtyEvictions++
		}
	} else {
		k.summary.CleanEvictions++
	}
	k.policy.OnFrameFreed(id)
	return VictimInfo{Frame: id, PID: before.Owner, Page: before.Page, Dirty: before.Dirty}
}

func (k *Kernel) finalize() *Summary {
	s := k.summary
	s.Algorithm = k.config.Algorithm
	s.PhysicalFrames = k.config.PhysicalFrames
	if s.TotalAccesses > 0 {
		s.PageFaultRate = float64(s.PageFaults) / float64(s.TotalAccesses)
	}

	s.Processes = make([]ProcessStats, 0, len(k.processes)+len(k.completed))
	for _, st := range k.processes {
		s.Processes = append(s.Processes, *st)
	}
	for _, st := range k.completed {
		s.Processes = append(s.Processes, st)
	}
	sort.Slice(s.Processes, func(i, j int) bool {
		return s.Processes[i].PID < s.Processes[j].PID
	})
	s.SampleFaults = append([]PageFaultRecord(nil), k.summary.SampleFaults...)
	return &s
}
