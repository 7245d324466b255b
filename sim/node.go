// The repeater node composition root: one object owning the two channel
// endpoints and their lifecycle managers and routers, the pairing
// coordinator (or the zero-capacity passthrough), the exclusive quantum
// resource, and the injected collaborators.

package sim

import "fmt"

// RepeaterNode reconciles two asynchronous heralded-arrival streams into a
// finite bank of memory slots and pairs matching slots across channels.
type RepeaterNode struct {
	Config   NodeConfig
	Resource *QuantumResource

	// Coordinator receives StoredEvents. In zero-capacity mode it is the
	// PassthroughPairer and the slot machinery below is unused.
	Coordinator Pairer

	endpoints  map[Channel]*ChannelEndpoint
	lifecycles map[Channel]*LifecycleManager
	routers    map[Channel]*ChannelRouter
	fallback   *PassthroughPairer

	coordinator *PairingCoordinator
}

// NewRepeaterNode validates cfg and builds the node. Slot ids are global:
// channel A owns [0, capacity) and channel B [capacity, 2*capacity).
func NewRepeaterNode(cfg NodeConfig, rng *PartitionedRNG, transform StorageTransform, sink MeasurementSink) (*RepeaterNode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node config: %w", err)
	}
	if rng == nil || transform == nil || sink == nil {
		return nil, fmt.Errorf("rng, transform and sink collaborators are required")
	}

	n := &RepeaterNode{
		Config:     cfg,
		Resource:   NewQuantumResource(),
		endpoints:  make(map[Channel]*ChannelEndpoint),
		lifecycles: make(map[Channel]*LifecycleManager),
		routers:    make(map[Channel]*ChannelRouter),
	}

	if cfg.CapacityPerChannel == 0 {
		n.fallback = NewPassthroughPairer(newSimultaneityPolicy(cfg.Fallback), sink)
		n.Coordinator = n.fallback
		return n, nil
	}

	epA := NewChannelEndpoint(ChannelA, 0, cfg.CapacityPerChannel, cfg.ResetPeriodCycles, cfg.ResetDurationCycles)
	epB := NewChannelEndpoint(ChannelB, cfg.CapacityPerChannel, cfg.CapacityPerChannel, cfg.ResetPeriodCycles, cfg.ResetDurationCycles)
	n.endpoints[ChannelA] = epA
	n.endpoints[ChannelB] = epB

	for ch, ep := range n.endpoints {
		lm := NewLifecycleManager(ep, cfg.ResetPeriodCycles, cfg.ResetDurationCycles)
		n.lifecycles[ch] = lm
		n.routers[ch] = NewChannelRouter(ep, lm, cfg.DetectionProbability, transform)
	}

	n.coordinator = NewPairingCoordinator(epA, epB, newPairingStrategy(cfg.Pairing), sink, cfg.ResetPeriodCycles)
	n.Coordinator = n.coordinator

	return n, nil
}

// HandleArrival consumes one heralded arrival for a channel. In memory mode
// the arrival is staged on the endpoint and routed; in zero-capacity mode
// it goes straight to the passthrough pairer.
func (n *RepeaterNode) HandleArrival(sim *Simulator, now int64, ch Channel, q *QuantumState) {
	if n.fallback != nil {
		n.fallback.HandleArrival(sim, now, ch, q)
		return
	}
	n.endpoints[ch].Stage(q)
	n.routers[ch].HandleArrival(sim, now)
}

// Lifecycle returns the lifecycle manager for a channel (nil in
// zero-capacity mode, which schedules no ticks).
func (n *RepeaterNode) Lifecycle(ch Channel) *LifecycleManager {
	return n.lifecycles[ch]
}

// Endpoint returns the channel's endpoint (nil in zero-capacity mode).
func (n *RepeaterNode) Endpoint(ch Channel) *ChannelEndpoint {
	return n.endpoints[ch]
}

// NoteStored forwards a successful store to the pairing strategy in memory
// mode, for strategies that track store order explicitly.
func (n *RepeaterNode) NoteStored(slot *MemorySlot) {
	if n.coordinator != nil {
		n.coordinator.NoteStored(slot)
	}
}
