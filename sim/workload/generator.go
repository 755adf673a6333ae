package workload

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/trace"
)

// processPlan is the generator's bookkeeping for one process.
type processPlan struct {
	pid           int
	start         int64
	end           int64 // exclusive: the process issues no access at or after end
	workingSet    []int
	outside       []int // pages not in workingSet, ascending
	sinceRotation int
}

type generator struct {
	cfg    sim.WorkloadConfig
	rng    *rand.Rand
	events []trace.Event
}

// Generate creates a trace from a WorkloadConfig.
// Deterministic given the same config and seed.
//
// Generation stops once TotalCPUAccesses accesses have been emitted or every
// process has run past its planned lifetime, whichever comes first; the
// second case yields fewer accesses than requested and the trace is not padded.
func Generate(cfg sim.WorkloadConfig) (*trace.WorkloadTrace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload config: %w", err)
	}

	g := &generator{
		cfg: cfg,
		rng: sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemWorkload),
	}

	plans := g.planLifetimes()
	for _, p := range plans {
		g.setWorkingSet(p, g.sampleWorkingSet())
	}

	generated, step := g.schedule(plans)

	logrus.Infof("workload: %d accesses (requested %d) over %d steps, %d events",
		generated, cfg.TotalCPUAccesses, step, len(g.events))
	if generated < cfg.TotalCPUAccesses {
		logrus.Warnf("workload: all process lifetimes ended %d accesses short of the budget",
			cfg.TotalCPUAccesses-generated)
	}

	return trace.NewWorkloadTrace(cfg, g.events), nil
}

// planLifetimes samples a lifetime fraction per process and lays the
// processes out so that each one starts during the second half of its
// predecessor's lifetime. Start steps are therefore non-decreasing and
// consecutive processes always overlap.
func (g *generator) planLifetimes() []*processPlan {
	n := g.cfg.ProcessCount
	plans := make([]*processPlan, n)
	for i := 0; i < n; i++ {
		fraction := g.cfg.MinLifetimeFraction +
			g.rng.Float64()*(g.cfg.MaxLifetimeFraction-g.cfg.MinLifetimeFraction)
		target := max(1, int(float64(g.cfg.TotalCPUAccesses)*fraction/float64(n)))
		duration := int64(max(target, 2*g.cfg.WorkingSetChangeInterval))

		var start int64
		if i > 0 {
			prev := plans[i-1]
			lo := prev.start + (prev.end-prev.start)/2
			hi := prev.end - 1
			start = lo + g.rng.Int63n(hi-lo+1)
		}
		plans[i] = &processPlan{pid: i + 1, start: start, end: start + duration}
	}
	return plans
}

// schedule runs the round-robin scheduler and returns the number of
// accesses generated and the step the scheduler stopped at.
func (g *generator) schedule(plans []*processPlan) (int, int64) {
	var (
		active    []*processPlan
		next      int // index of the next plan to activate
		cursor    int // round-robin position in active
		step      int64
		generated int
	)

	for generated < g.cfg.TotalCPUAccesses {
		for next < len(plans) && plans[next].start <= step {
			g.emitStart(plans[next])
			active = append(active, plans[next])
			next++
		}

		kept := active[:0]
		for i, p := range active {
			if p.end <= step {
				g.events = append(g.events, &trace.ProcessTerminate{At: step, Process: p.pid})
				if i < cursor {
					cursor--
				}
				continue
			}
			kept = append(kept, p)
		}
		active = kept

		if len(active) == 0 {
			if next >= len(plans) {
				break
			}
			// Idle gap: jump straight to the next arrival.
			step = plans[next].start
			continue
		}

		if cursor >= len(active) {
			cursor = 0
		}
		p := active[cursor]
		cursor++

		p.sinceRotation++
		if p.sinceRotation >= g.cfg.WorkingSetChangeInterval {
			g.setWorkingSet(p, g.sampleWorkingSet())
			p.sinceRotation = 0
			g.events = append(g.events, &trace.WorkingSetChange{At: step, Process: p.pid, WorkingSet: p.workingSet})
		}

		g.events = append(g.events, g.access(p, step))
		generated++
		step++
	}

	for _, p := range active {
		g.events = append(g.events, &trace.ProcessTerminate{At: max(step, p.end), Process: p.pid})
	}
	// Processes whose start was never reached still get a (empty) lifetime so
	// that every pid has exactly one start and one terminate.
	for ; next < len(plans); next++ {
		p := plans[next]
		g.emitStart(p)
		g.events = append(g.events, &trace.ProcessTerminate{At: p.end, Process: p.pid})
	}

	return generated, step
}

func (g *generator) emitStart(p *processPlan) {
	g.events = append(g.events,
		&trace.ProcessStart{At: p.start, Process: p.pid, VirtualPageCount: g.cfg.VirtualPagesPerProcess},
		&trace.WorkingSetChange{At: p.start, Process: p.pid, WorkingSet: p.workingSet},
	)
}

// access draws one page (locality-biased) and the write flag.
func (g *generator) access(p *processPlan, step int64) *trace.MemoryAccess {
	var page int
	if g.rng.Float64() < g.cfg.LocalityProbability || len(p.outside) == 0 {
		page = p.workingSet[g.rng.Intn(len(p.workingSet))]
	} else {
		page = p.outside[g.rng.Intn(len(p.outside))]
	}
	return &trace.MemoryAccess{
		At:         step,
		Process:    p.pid,
		Page:       page,
		Write:      g.rng.Float64() < g.cfg.WriteProbability,
		WorkingSet: p.workingSet,
	}
}

// sampleWorkingSet returns a uniformly chosen subset of WorkingSetSize pages,
// ascending. When the working set covers the whole address space every page
// is returned.
func (g *generator) sampleWorkingSet() []int {
	pages := g.cfg.VirtualPagesPerProcess
	if g.cfg.WorkingSetSize >= pages {
		ws := make([]int, pages)
		for i := range ws {
			ws[i] = i
		}
		return ws
	}
	ws := g.rng.Perm(pages)[:g.cfg.WorkingSetSize]
	sort.Ints(ws)
	return ws
}

func (g *generator) setWorkingSet(p *processPlan, ws []int) {
	p.workingSet = ws
	p.outside = p.outside[:0]
	j := 0
	for page := 0; page < g.cfg.VirtualPagesPerProcess; page++ {
		if j < len(ws) && ws[j] == page {
			j++
			continue
		}
		p.outside = append(p.outside, page)
	}
}
