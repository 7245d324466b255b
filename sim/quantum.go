// Opaque quantum collaborators: the payload carried through the node, the
// two-qubit storage transform, and the downstream Bell-measurement sink.
// The simulation core never inspects a QuantumState beyond identity; all
// physics lives behind these interfaces.

package sim

import (
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// QuantumState is the opaque heralded payload routed through the node.
type QuantumState struct {
	ID       string  // unique identifier, assigned at emission
	Source   Channel // emitting channel
	Emitted  int64   // emission tick
	Fidelity float64 // scalar carried for downstream statistics, not read by the core
}

// NewQuantumState creates a payload emitted by ch at tick now.
func NewQuantumState(ch Channel, now int64) *QuantumState {
	return &QuantumState{
		ID:       xid.New().String(),
		Source:   ch,
		Emitted:  now,
		Fidelity: 1.0,
	}
}

// StorageTransform is the opaque storage operation applied while the node's
// exclusive quantum resource is held. It receives the detection trial
// outcome, the incoming payload, and the slot under write, and returns the
// state to store (nil when nothing was captured).
type StorageTransform interface {
	Transform(detected bool, incoming *QuantumState, slot *MemorySlot) *QuantumState
}

// IdentityTransform stores the incoming state unchanged on detection.
type IdentityTransform struct{}

func (IdentityTransform) Transform(detected bool, incoming *QuantumState, _ *MemorySlot) *QuantumState {
	if !detected {
		return nil
	}
	return incoming
}

// MeasurementSink receives completed pairs. The node's output contract ends
// here; downstream fidelity/statistics computation is a collaborator.
type MeasurementSink interface {
	OnPairReady(sim *Simulator, pair PairReadyEvent)
}

// BellOutcome is one of the four two-bit Bell measurement results.
type BellOutcome [2]int

// bellOutcomes indexes the four possible results of a Bell state measurement.
var bellOutcomes = []BellOutcome{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// BellMeasurementSink performs an (opaque) Bell state measurement on each
// completed pair, sampling one of the four outcomes uniformly, and records
// the result in the run metrics and the optional trace recorder.
type BellMeasurementSink struct {
	rng *PartitionedRNG
}

// NewBellMeasurementSink creates the default downstream sink.
func NewBellMeasurementSink(rng *PartitionedRNG) *BellMeasurementSink {
	return &BellMeasurementSink{rng: rng}
}

// OnPairReady consumes one pair and tallies its measurement outcome.
func (bs *BellMeasurementSink) OnPairReady(sim *Simulator, pair PairReadyEvent) {
	m := bs.rng.ForSubsystem(SubsystemMeasurement).Intn(len(bellOutcomes))
	outcome := bellOutcomes[m]
	logrus.Debugf("[tick %07d] Bell measurement on slots (%d,%d): outcome %v",
		pair.Time, pair.SlotIDA, pair.SlotIDB, outcome)

	sim.Metrics.PairsEmitted++
	sim.Metrics.BellOutcomes[m]++
	if sim.PairLog != nil {
		sim.PairLog.RecordPair(pair, outcome)
	}
}
