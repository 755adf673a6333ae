package policy

import (
	"math/rand"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/memory"
)

// Random evicts a uniformly chosen occupied frame.
type Random struct {
	NoHooks
	frames FrameSet
	rand   *rand.Rand
}

// NewRandom creates a random policy. Its generator is keyed by
// sim.RandomPolicySeed, not the workload seed.
func NewRandom(frames FrameSet) *Random {
	return &Random{
		frames: frames,
		rand:   sim.NewPartitionedRNG(sim.NewSimulationKey(sim.RandomPolicySeed)).ForSubsystem(sim.SubsystemRandomPolicy),
	}
}

// Name implements ReplacementPolicy.
func (r *Random) Name() string { return "random" }

// ChooseVictim implements ReplacementPolicy.
func (r *Random) ChooseVictim() (memory.FrameID, error) {
	occupied := make([]memory.FrameID, 0, r.frames.Len())
	for i := 0; i < r.frames.Len(); i++ {
		id := memory.FrameID(i)
		if f := r.frames.Frame(id); !f.IsFree() {
			occupied = append(occupied, id)
		}
	}
	if len(occupied) == 0 {
		return memory.NoFrame, ErrNoOccupiedFrames
	}
	return occupied[r.rand.Intn(len(occupied))], nil
}
