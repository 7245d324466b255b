package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroCapConfig(fallback string) NodeConfig {
	cfg := NewNodeConfig(0, 1.0, 10, 2, 1)
	cfg.Fallback = fallback
	return cfg
}

func TestPassthrough_StrictPairsSameTickArrivals(t *testing.T) {
	// Scenario: arrivals at both ports in the same tick pair immediately.
	s, sink := newCaptureSim(t, 100, 1, zeroCapConfig(FallbackStrict))

	s.InjectArrival(3, ChannelA, NewQuantumState(ChannelA, 3))
	s.InjectArrival(3, ChannelB, NewQuantumState(ChannelB, 3))
	s.Run()

	require.Len(t, sink.pairs, 1)
	assert.Equal(t, int64(3), sink.pairs[0].Time)
	assert.Equal(t, 0, sink.pairs[0].SlotIDA)
	assert.Equal(t, 1, sink.pairs[0].SlotIDB)
}

func TestPassthrough_StrictNeverPairsSkewedArrivals(t *testing.T) {
	// Scenario: an arrival at only one port in a tick never emits.
	s, sink := newCaptureSim(t, 100, 1, zeroCapConfig(FallbackStrict))

	s.InjectArrival(1, ChannelA, NewQuantumState(ChannelA, 1))
	s.InjectArrival(2, ChannelB, NewQuantumState(ChannelB, 2))
	s.InjectArrival(4, ChannelA, NewQuantumState(ChannelA, 4))
	s.Run()

	assert.Empty(t, sink.pairs)
	assert.Equal(t, 0, s.Metrics.PairsEmitted)
}

func TestPassthrough_OpportunisticToleratesSkew(t *testing.T) {
	s, sink := newCaptureSim(t, 100, 1, zeroCapConfig(FallbackOpportunistic))

	s.InjectArrival(1, ChannelA, NewQuantumState(ChannelA, 1))
	s.InjectArrival(5, ChannelB, NewQuantumState(ChannelB, 5))
	s.Run()

	require.Len(t, sink.pairs, 1)
	assert.Equal(t, int64(5), sink.pairs[0].Time)
}

func TestPassthrough_NewerArrivalReplacesUnmatched(t *testing.T) {
	s, sink := newCaptureSim(t, 100, 1, zeroCapConfig(FallbackStrict))

	first := NewQuantumState(ChannelA, 1)
	second := NewQuantumState(ChannelA, 2)
	s.InjectArrival(1, ChannelA, first)
	s.InjectArrival(2, ChannelA, second)
	s.InjectArrival(2, ChannelB, NewQuantumState(ChannelB, 2))
	s.Run()

	require.Len(t, sink.pairs, 1)
	assert.Same(t, second, sink.pairs[0].PayloadA)
}

func TestPassthrough_NullArrivalsCountedLostNotBuffered(t *testing.T) {
	s, sink := newCaptureSim(t, 100, 1, zeroCapConfig(FallbackOpportunistic))

	s.InjectArrival(1, ChannelA, nil)
	s.InjectArrival(1, ChannelB, NewQuantumState(ChannelB, 1))
	s.Run()

	assert.Empty(t, sink.pairs)
	assert.Equal(t, 1, s.Metrics.LostArrivals[ChannelA])
}
