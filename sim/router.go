// The per-channel arrival router: consumes the staging buffer and performs
// detection-gated storage into the channel's current TARGET slot. This is
// the only code path that sets a slot to FILLED.

package sim

import "github.com/sirupsen/logrus"

// ChannelRouter routes one channel's arrivals into memory.
type ChannelRouter struct {
	endpoint      *ChannelEndpoint
	lifecycle     *LifecycleManager
	detectionProb float64
	transform     StorageTransform
}

// NewChannelRouter creates the router for one channel.
func NewChannelRouter(ep *ChannelEndpoint, lm *LifecycleManager, detectionProb float64, transform StorageTransform) *ChannelRouter {
	return &ChannelRouter{
		endpoint:      ep,
		lifecycle:     lm,
		detectionProb: detectionProb,
		transform:     transform,
	}
}

// HandleArrival drains the staging buffer and attempts storage.
//
// Outcomes, none of which are errors:
//   - empty buffer: no-op.
//   - null payload (lost upstream): counted, no detection attempted.
//   - no TARGET slot: the arrival is dropped and counted.
//   - TARGET exists: the node's exclusive quantum resource is acquired
//     (suspending until free), a Bernoulli detection trial runs, and the
//     storage transform is invoked with its outcome. Success fills the
//     slot and emits a StoredEvent; failure leaves the slot untouched.
func (cr *ChannelRouter) HandleArrival(sim *Simulator, now int64) {
	q, ok := cr.endpoint.TakeStaged()
	if !ok {
		return
	}
	if q == nil {
		sim.Metrics.LostArrivals[cr.endpoint.Channel]++
		return
	}
	if cr.lifecycle.Target() == nil {
		sim.Metrics.Drops[cr.endpoint.Channel]++
		logrus.Debugf("[tick %07d] Channel %s: no target slot, arrival dropped", now, cr.endpoint.Channel)
		return
	}

	sim.Node.Resource.Acquire(now, func(grantedAt int64) {
		cr.store(sim, grantedAt, q)
	})
}

// store runs with the quantum resource held. The TARGET is re-resolved at
// grant time: while this operation was suspended behind another transform,
// the lifecycle may have reclaimed the slot observed at arrival.
func (cr *ChannelRouter) store(sim *Simulator, now int64, q *QuantumState) {
	defer cr.releaseAfter(sim, now)

	slot := cr.lifecycle.Target()
	if slot == nil {
		sim.Metrics.Drops[cr.endpoint.Channel]++
		return
	}

	detected := sim.RNG.ForSubsystem(SubsystemDetection).Float64() < cr.detectionProb
	state := cr.transform.Transform(detected, q, slot)
	if !detected || state == nil {
		sim.Metrics.NonDetections[cr.endpoint.Channel]++
		return
	}

	slot.Fill(state)
	sim.Metrics.Stored[cr.endpoint.Channel]++
	sim.Node.NoteStored(slot)
	sim.Schedule(&StoredEvent{time: now, SlotID: slot.ID, Channel: cr.endpoint.Channel})
}

// releaseAfter frees the resource, either inline when the transform takes
// no simulated time or via a scheduled release event.
func (cr *ChannelRouter) releaseAfter(sim *Simulator, now int64) {
	d := sim.Node.Config.TransformDurationTicks
	if d == 0 {
		sim.Node.Resource.Release(now)
		return
	}
	sim.Schedule(&ResourceReleaseEvent{time: now + d})
}
