// Package policy provides page replacement policies for the paging kernel.
package policy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paging-sim/paging-sim/sim"
	"github.com/paging-sim/paging-sim/sim/memory"
)

// ErrNoOccupiedFrames is returned by ChooseVictim when there is nothing to
// evict. The kernel only asks for a victim when every frame is occupied, so
// this always points at a configuration or kernel bug.
var ErrNoOccupiedFrames = errors.New("no occupied frames to evict")

// FrameSet is the policy's view of the kernel's frame table. Membership is
// live: frames fill and empty as the kernel runs. A policy never binds or
// frees frames itself; the only state it may change is the referenced bit.
// *memory.Memory satisfies FrameSet.
type FrameSet interface {
	Len() int
	Frame(id memory.FrameID) memory.Frame
	ClearReference(id memory.FrameID)
}

// ReplacementPolicy selects eviction victims. The On* hooks let stateful
// policies follow membership and recency; ChooseVictim must return an
// occupied frame or ErrNoOccupiedFrames.
type ReplacementPolicy interface {
	Name() string
	OnFrameAccess(id memory.FrameID)
	OnFrameLoaded(id memory.FrameID)
	OnFrameFreed(id memory.FrameID)
	ChooseVictim() (memory.FrameID, error)
}

// NoHooks provides no-op On* hooks for policies that only look at frame state
// when choosing a victim. Embed it.
type NoHooks struct{}

func (NoHooks) OnFrameAccess(memory.FrameID) {}
func (NoHooks) OnFrameLoaded(memory.FrameID) {}
func (NoHooks) OnFrameFreed(memory.FrameID)  {}

// Factory builds a policy over a kernel's frame table.
type Factory func(frames FrameSet) ReplacementPolicy

var factories = map[string]Factory{
	"random": func(frames FrameSet) ReplacementPolicy { return NewRandom(frames) },
	"clock":  func(frames FrameSet) ReplacementPolicy { return NewClock(frames) },
}

// Names returns the registered policy names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidName reports whether name is a registered policy.
func IsValidName(name string) bool {
	_, ok := factories[name]
	return ok
}

// Lookup returns the factory for name.
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown replacement policy %q; valid policies: %v", sim.ErrInvalidConfig, name, Names())
	}
	return f, nil
}

// New creates a policy by name over frames.
func New(name string, frames FrameSet) (ReplacementPolicy, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(frames), nil
}
