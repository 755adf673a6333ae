package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// GIVEN two RNGs built from the same key
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN drawing from the random-policy subsystem
	for i := 0; i < 5; i++ {
		v1 := rng1.ForSubsystem(SubsystemRandomPolicy).Float64()
		v2 := rng2.ForSubsystem(SubsystemRandomPolicy).Float64()

		// THEN the sequences match
		if v1 != v2 {
			t.Errorf("value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN an RNG whose workload stream has been consumed
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemWorkload).Float64()
	}

	// WHEN the policy stream is drawn for the first time
	got := rngA.ForSubsystem(SubsystemRandomPolicy).Float64()

	// THEN it equals the first value of a fresh policy stream
	want := NewPartitionedRNG(NewSimulationKey(42)).ForSubsystem(SubsystemRandomPolicy).Float64()
	if got != want {
		t.Errorf("policy first value = %v, want %v (isolation broken)", got, want)
	}
}

func TestPartitionedRNG_WorkloadUsesMasterSeed(t *testing.T) {
	for _, seed := range []int64{0, 42, -1, math.MinInt64, math.MaxInt64} {
		workloadRNG := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemWorkload)
		directRNG := rand.New(rand.NewSource(seed))
		for i := 0; i < 5; i++ {
			if got, want := workloadRNG.Int63(), directRNG.Int63(); got != want {
				t.Fatalf("seed %d value %d: workload RNG = %v, direct RNG = %v", seed, i, got, want)
			}
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if rng.ForSubsystem(SubsystemWorkload) != rng.ForSubsystem(SubsystemWorkload) {
		t.Error("ForSubsystem returned different instances for same name")
	}
	if len(rng.streams) != 1 {
		t.Errorf("have %d open streams, want 1", len(rng.streams))
	}
	if rng.Key() != SimulationKey(42) {
		t.Errorf("Key() = %v, want 42", rng.Key())
	}
}

func TestFnv1a64_DistinctSubsystems(t *testing.T) {
	if fnv1a64(SubsystemWorkload) == fnv1a64(SubsystemRandomPolicy) {
		t.Error("workload and policy subsystems hash to the same value")
	}
}

func TestPartitionedRNG_PolicyStreamMixesName(t *testing.T) {
	// GIVEN a key
	p := NewPartitionedRNG(NewSimulationKey(RandomPolicySeed))

	// WHEN the policy stream is opened
	got := p.ForSubsystem(SubsystemRandomPolicy).Int63()

	// THEN it matches a source seeded with the key XOR the hashed name
	want := rand.New(rand.NewSource(RandomPolicySeed ^ fnv1a64(SubsystemRandomPolicy))).Int63()
	if got != want {
		t.Errorf("policy stream first value = %v, want %v", got, want)
	}
}
