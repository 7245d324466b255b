package sim

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"
)

// popEvent removes and returns the next event in execution order.
func popEvent(s *Simulator) Event {
	return heap.Pop(&s.EventQueue).(eventEntry).ev
}

// newTestSim builds a simulator over a node with the given config, failing
// the test on construction errors.
func newTestSim(t *testing.T, horizon, seed int64, cfg NodeConfig) *Simulator {
	t.Helper()
	s, err := NewSimulator(horizon, seed, cfg)
	require.NoError(t, err)
	return s
}

// captureSink records every emitted pair, optionally forwarding to another
// sink so metrics still accumulate.
type captureSink struct {
	pairs []PairReadyEvent
	next  MeasurementSink
}

func (cs *captureSink) OnPairReady(sim *Simulator, pair PairReadyEvent) {
	cs.pairs = append(cs.pairs, pair)
	if cs.next != nil {
		cs.next.OnPairReady(sim, pair)
	}
}

// newCaptureSim builds a simulator whose sink records pairs and still
// updates the run metrics through the default Bell sink.
func newCaptureSim(t *testing.T, horizon, seed int64, cfg NodeConfig) (*Simulator, *captureSink) {
	t.Helper()
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	sink := &captureSink{next: NewBellMeasurementSink(rng)}

	node, err := NewRepeaterNode(cfg, rng, IdentityTransform{}, sink)
	require.NoError(t, err)

	s := &Simulator{
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
		Metrics:    NewMetrics(),
		RNG:        rng,
		Node:       node,
	}
	return s, sink
}

// continuousArrivals injects one surviving arrival per tick on a channel
// over [1, until].
func continuousArrivals(s *Simulator, ch Channel, until int64) {
	for t := int64(1); t <= until; t++ {
		s.InjectArrival(t, ch, NewQuantumState(ch, t))
	}
}
