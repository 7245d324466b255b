package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDetection is the RNG subsystem for Bernoulli detection trials.
	SubsystemDetection = "detection"

	// SubsystemChannelA is the RNG subsystem for channel-A transit loss sampling.
	SubsystemChannelA = "channel_a"

	// SubsystemChannelB is the RNG subsystem for channel-B transit loss sampling.
	SubsystemChannelB = "channel_b"

	// SubsystemMeasurement is the RNG subsystem for Bell measurement outcomes.
	SubsystemMeasurement = "measurement"
)

// SubsystemForChannel returns the loss-sampling subsystem for a channel.
func SubsystemForChannel(ch Channel) string {
	if ch == ChannelA {
		return SubsystemChannelA
	}
	return SubsystemChannelB
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Isolating subsystems keeps a draw in one (say, detection) from perturbing
// the sequence observed by another (say, channel-B loss), so changing one
// parameter does not reshuffle unrelated randomness.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
