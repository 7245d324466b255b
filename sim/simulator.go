// sim/simulator.go
package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// eventEntry wraps an Event with the sequence number assigned when it was
// scheduled. Two events with identical timestamps are executed in
// first-scheduled order, which makes a run fully deterministic for a fixed
// random seed.
type eventEntry struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by schedule sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// PairRecorder persists emitted pairs; implemented by sim/record.
type PairRecorder interface {
	RecordPair(pair PairReadyEvent, outcome BellOutcome)
}

// Simulator is the core object that holds simulation time, the repeater
// node's state, and the event loop.
type Simulator struct {
	Clock   int64
	Horizon int64
	// EventQueue holds all pending simulator events (ticks, arrivals, ...)
	EventQueue EventQueue
	Node       *RepeaterNode
	Metrics    *Metrics
	RNG        *PartitionedRNG
	// PairLog, when non-nil, receives every emitted pair for offline analysis.
	PairLog PairRecorder

	nextSeq uint64
}

// NewSimulator builds a simulator around a validated node configuration.
// Construction fails on invalid configuration; runtime probabilistic
// outcomes never produce errors.
func NewSimulator(horizon int64, seed int64, cfg NodeConfig) (*Simulator, error) {
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	s := &Simulator{
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
		Metrics:    NewMetrics(),
		RNG:        rng,
	}

	node, err := NewRepeaterNode(cfg, rng, IdentityTransform{}, NewBellMeasurementSink(rng))
	if err != nil {
		return nil, err
	}
	s.Node = node

	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, eventEntry{ev: ev, seq: sim.nextSeq})
	sim.nextSeq++
}

// Start seeds the per-channel tick chains. The first tick fires once a
// full period has elapsed after t=0.
func (sim *Simulator) Start() {
	if sim.Node.Config.CapacityPerChannel == 0 {
		// Zero-capacity mode has no slots to age; no ticks needed.
		return
	}
	period := sim.Node.Config.TickPeriodTicks
	sim.Schedule(&TickEvent{time: period, Channel: ChannelA})
	sim.Schedule(&TickEvent{time: period, Channel: ChannelB})
}

// Run executes the event loop until the queue drains or the horizon passes.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		// get the next event to be simulated
		entry := heap.Pop(&sim.EventQueue).(eventEntry)
		ev := entry.ev
		// advance the clock
		sim.Clock = ev.Timestamp()
		// end the simulation if horizon is reached
		if sim.Clock > sim.Horizon {
			break
		}
		logrus.Debugf("[tick %07d] Executing %T", sim.Clock, ev)
		// process the event
		ev.Execute(sim)
	}
	sim.Metrics.SimEndedTime = min(sim.Clock, sim.Horizon)
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// InjectArrival schedules a single arrival, used by tests and by the
// heralded sources. A nil payload models upstream loss.
func (sim *Simulator) InjectArrival(t int64, ch Channel, q *QuantumState) {
	sim.Schedule(&ArrivalEvent{time: t, Channel: ch, Payload: q})
}
