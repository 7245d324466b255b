package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// TickEvent drives one channel's slot lifecycle. Each channel has its own
// tick chain: executing a tick advances every slot's state machine and then
// reschedules the next tick one period later, until the horizon.
type TickEvent struct {
	time    int64
	Channel Channel
}

// Timestamp returns the scheduled time of the TickEvent.
func (e *TickEvent) Timestamp() int64 {
	return e.time
}

// Execute advances the channel's slot lifecycle and reschedules itself.
func (e *TickEvent) Execute(sim *Simulator) {
	sim.Node.Lifecycle(e.Channel).Tick(sim, e.time)

	next := e.time + sim.Node.Config.TickPeriodTicks
	if next <= sim.Horizon {
		sim.Schedule(&TickEvent{time: next, Channel: e.Channel})
	}
}

// ArrivalEvent represents one heralded arrival on a channel. A nil Payload
// is a herald whose qubit was lost upstream; the loss itself is modeled by
// the source collaborator, this event only carries its outcome.
type ArrivalEvent struct {
	time    int64
	Channel Channel
	Payload *QuantumState
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() int64 {
	return e.time
}

// Execute stages the arrival and hands it to the channel's router (or the
// passthrough pairer when the node has no memory).
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival on channel %s at %d ticks (lost=%v)", e.Channel, e.time, e.Payload == nil)
	sim.Node.HandleArrival(sim, e.time, e.Channel, e.Payload)
}

// StoredEvent signals that a payload was captured into a slot. It is
// scheduled at the same timestamp as the store; same-timestamp FIFO ordering
// guarantees the coordinator observes slots in store order.
type StoredEvent struct {
	time    int64
	SlotID  int
	Channel Channel
}

// Timestamp returns the scheduled time of the StoredEvent.
func (e *StoredEvent) Timestamp() int64 {
	return e.time
}

// Execute triggers pairing arbitration across both channels.
func (e *StoredEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Stored into slot %d (channel %s) at %d ticks", e.SlotID, e.Channel, e.time)
	sim.Node.Coordinator.OnStored(sim, e.time)
}

// ResourceReleaseEvent frees the node's exclusive quantum resource after a
// storage transform that occupies it for simulated time.
type ResourceReleaseEvent struct {
	time int64
}

// Timestamp returns the scheduled time of the ResourceReleaseEvent.
func (e *ResourceReleaseEvent) Timestamp() int64 {
	return e.time
}

// Execute releases the resource, granting it to the next waiter if any.
func (e *ResourceReleaseEvent) Execute(sim *Simulator) {
	sim.Node.Resource.Release(e.time)
}
