// Pairing arbitration: whenever a store completes, look for one FILLED slot
// on each channel, reclaim both early, and hand the payload pair downstream.

package sim

// PairReadyEvent carries one payload from each channel to the downstream
// measurement sink.
type PairReadyEvent struct {
	PayloadA *QuantumState
	PayloadB *QuantumState
	SlotIDA  int
	SlotIDB  int
	Time     int64
}

// PairingStrategy selects the next matching FILLED pair across the two
// channels. Implementations must be deterministic.
type PairingStrategy interface {
	// NoteStored observes a successful store, for strategies that track
	// arrival order explicitly.
	NoteStored(slot *MemorySlot)
	// NextPair returns one FILLED slot per channel, or ok=false when no
	// pair exists.
	NextPair(a, b *ChannelEndpoint) (slotA, slotB *MemorySlot, ok bool)
}

// newPairingStrategy maps a validated config name to a strategy.
func newPairingStrategy(name string) PairingStrategy {
	if name == PairingFIFO {
		return NewFIFOPairing()
	}
	return ScanPairing{}
}

// ScanPairing picks the lowest-id FILLED slot on each side. Because each
// channel only ever has one TARGET at a time, the lowest-id FILLED slot is
// also the oldest-filled slot, so the scan is equivalent to an explicit
// arrival-order queue.
type ScanPairing struct{}

func (ScanPairing) NoteStored(*MemorySlot) {}

func (ScanPairing) NextPair(a, b *ChannelEndpoint) (*MemorySlot, *MemorySlot, bool) {
	slotA := firstFilled(a)
	slotB := firstFilled(b)
	if slotA == nil || slotB == nil {
		return nil, nil, false
	}
	return slotA, slotB, true
}

func firstFilled(ep *ChannelEndpoint) *MemorySlot {
	for _, s := range ep.Slots {
		if s.Status == SlotFilled {
			return s
		}
	}
	return nil
}

// FIFOPairing keeps explicit per-channel queues of stored slots, pairing in
// store order. Entries whose slot lost its payload to the decoherence clock
// before pairing are skipped.
type FIFOPairing struct {
	pending map[Channel][]*MemorySlot
}

// NewFIFOPairing creates an empty FIFO strategy.
func NewFIFOPairing() *FIFOPairing {
	return &FIFOPairing{pending: make(map[Channel][]*MemorySlot)}
}

func (f *FIFOPairing) NoteStored(slot *MemorySlot) {
	f.pending[slot.Channel] = append(f.pending[slot.Channel], slot)
}

func (f *FIFOPairing) NextPair(_, _ *ChannelEndpoint) (*MemorySlot, *MemorySlot, bool) {
	slotA := f.head(ChannelA)
	slotB := f.head(ChannelB)
	if slotA == nil || slotB == nil {
		return nil, nil, false
	}
	f.pending[ChannelA] = f.pending[ChannelA][1:]
	f.pending[ChannelB] = f.pending[ChannelB][1:]
	return slotA, slotB, true
}

// head returns the oldest still-FILLED pending slot for a channel, pruning
// stale entries.
func (f *FIFOPairing) head(ch Channel) *MemorySlot {
	q := f.pending[ch]
	for len(q) > 0 && q[0].Status != SlotFilled {
		q = q[1:]
	}
	f.pending[ch] = q
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// Pairer is the node-level pairing surface: the slot-backed coordinator and
// the zero-capacity passthrough both implement it.
type Pairer interface {
	OnStored(sim *Simulator, now int64)
}

// PairingCoordinator drains matching FILLED slots from both channels.
type PairingCoordinator struct {
	endpointA *ChannelEndpoint
	endpointB *ChannelEndpoint
	strategy  PairingStrategy
	sink      MeasurementSink

	resetPeriod int64
}

// NewPairingCoordinator creates the coordinator over both endpoints.
func NewPairingCoordinator(a, b *ChannelEndpoint, strategy PairingStrategy, sink MeasurementSink, resetPeriod int64) *PairingCoordinator {
	return &PairingCoordinator{
		endpointA:   a,
		endpointB:   b,
		strategy:    strategy,
		sink:        sink,
		resetPeriod: resetPeriod,
	}
}

// NoteStored forwards a store to the strategy.
func (pc *PairingCoordinator) NoteStored(slot *MemorySlot) {
	pc.strategy.NoteStored(slot)
}

// OnStored runs pairing arbitration until no pair remains. Each emitted
// pair extracts both payloads and forces both slots straight into RESET,
// reclaiming them ahead of their decoherence window. The loop is bounded by
// the slot capacity, so it always terminates.
func (pc *PairingCoordinator) OnStored(sim *Simulator, now int64) {
	for {
		slotA, slotB, ok := pc.strategy.NextPair(pc.endpointA, pc.endpointB)
		if !ok {
			return
		}

		pair := PairReadyEvent{
			PayloadA: slotA.Payload,
			PayloadB: slotB.Payload,
			SlotIDA:  slotA.ID,
			SlotIDB:  slotB.ID,
			Time:     now,
		}
		slotA.ForceReset(pc.resetPeriod)
		slotB.ForceReset(pc.resetPeriod)

		pc.sink.OnPairReady(sim, pair)
	}
}
