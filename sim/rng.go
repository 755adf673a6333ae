package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a run. Equal keys with equal configs
// yield the same trace and the same summary.
type SimulationKey int64

// NewSimulationKey wraps seed as a SimulationKey.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Named random streams.
const (
	// SubsystemWorkload drives trace generation and is seeded with the key
	// itself, so --seed N replays exactly rand.NewSource(N).
	SubsystemWorkload = "workload"

	// SubsystemRandomPolicy drives victim selection in the random policy.
	SubsystemRandomPolicy = "policy_random"
)

// RandomPolicySeed keys the random policy independently of the workload seed,
// so one trace always sees the same victims.
const RandomPolicySeed int64 = 0x5eed

// PartitionedRNG hands out one *rand.Rand per named stream. Draws from one
// stream never shift another. Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG returns a PartitionedRNG with no streams opened yet.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: map[string]*rand.Rand{}}
}

// ForSubsystem returns the stream for name, opening it on first use. Later
// calls with the same name return the same generator.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	r, ok := p.streams[name]
	if !ok {
		r = rand.New(rand.NewSource(p.seedFor(name)))
		p.streams[name] = r
	}
	return r
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// seedFor mixes the stream name into the key; the workload stream is unmixed.
func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemWorkload {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
