// Zero-capacity passthrough mode: with no memory slots configured, the slot
// pool, lifecycle, and router are bypassed entirely and two single-position
// buffers feed pairs straight to the sink.

package sim

// BufferedArrival is one staged passthrough arrival together with its
// arrival tick.
type BufferedArrival struct {
	Payload *QuantumState
	At      int64
}

// SimultaneityPolicy decides when the two passthrough buffers constitute a
// pair. The policies resolve the dual-port synchronization question
// explicitly rather than leaving it to arrival interleaving.
type SimultaneityPolicy interface {
	// Ready reports whether a pair may be emitted given both buffer states
	// and the current tick.
	Ready(a, b *BufferedArrival, now int64) bool
}

// StrictSimultaneity emits only when both payloads arrived at the same
// tick: AND-semantics over the two ports. A lone arrival lingers but can
// never match a later-tick partner.
type StrictSimultaneity struct{}

func (StrictSimultaneity) Ready(a, b *BufferedArrival, now int64) bool {
	return a != nil && b != nil && a.At == b.At
}

// Opportunistic emits whenever both buffers are non-empty, tolerating
// arrival skew between the ports.
type Opportunistic struct{}

func (Opportunistic) Ready(a, b *BufferedArrival, _ int64) bool {
	return a != nil && b != nil
}

// newSimultaneityPolicy maps a validated config name to a policy.
func newSimultaneityPolicy(name string) SimultaneityPolicy {
	if name == FallbackOpportunistic {
		return Opportunistic{}
	}
	return StrictSimultaneity{}
}

// PassthroughPairer replaces the slot pool when CapacityPerChannel is zero.
// Emitted pairs reference the two nonphysical positions 0 and 1.
type PassthroughPairer struct {
	policy SimultaneityPolicy
	sink   MeasurementSink

	bufA *BufferedArrival
	bufB *BufferedArrival
}

// NewPassthroughPairer creates the zero-capacity pairer.
func NewPassthroughPairer(policy SimultaneityPolicy, sink MeasurementSink) *PassthroughPairer {
	return &PassthroughPairer{policy: policy, sink: sink}
}

// HandleArrival stages one arrival and emits a pair if the policy allows.
// Null payloads are counted lost and never buffered. A new arrival on a
// port replaces that port's previous unmatched arrival.
func (pp *PassthroughPairer) HandleArrival(sim *Simulator, now int64, ch Channel, q *QuantumState) {
	if q == nil {
		sim.Metrics.LostArrivals[ch]++
		return
	}

	entry := &BufferedArrival{Payload: q, At: now}
	if ch == ChannelA {
		pp.bufA = entry
	} else {
		pp.bufB = entry
	}

	if !pp.policy.Ready(pp.bufA, pp.bufB, now) {
		return
	}

	pair := PairReadyEvent{
		PayloadA: pp.bufA.Payload,
		PayloadB: pp.bufB.Payload,
		SlotIDA:  0,
		SlotIDB:  1,
		Time:     now,
	}
	pp.bufA = nil
	pp.bufB = nil
	sim.Metrics.Stored[ChannelA]++
	sim.Metrics.Stored[ChannelB]++
	pp.sink.OnPairReady(sim, pair)
}

// OnStored satisfies Pairer; passthrough mode pairs directly on arrival.
func (pp *PassthroughPairer) OnStored(*Simulator, int64) {}
