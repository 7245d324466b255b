// Package sim provides the discrete-event simulation core for a single
// quantum-repeater node.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - slot.go: the memory slot data model and its lifecycle states
//   - event.go: event types that drive the simulation (Tick, Arrival, Stored, ...)
//   - simulator.go: the event loop and deterministic same-timestamp ordering
//
// # Architecture
//
// A RepeaterNode (node.go) composes the per-channel pieces: a ChannelEndpoint
// holding the staging buffer, a LifecycleManager advancing every slot's state
// machine on each tick, and a ChannelRouter performing detection-gated storage
// into the channel's TARGET slot. Successful stores feed the
// PairingCoordinator (pairing.go), which drains matching FILLED slots from
// both channels and hands completed pairs to a MeasurementSink. When a node is
// configured with zero memory slots the pool is bypassed entirely by the
// PassthroughPairer (fallback.go).
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - PairingStrategy: pick the next matching FILLED pair (status scan or FIFO)
//   - SimultaneityPolicy: dual-port synchronization for the zero-capacity mode
//   - StorageTransform: the opaque two-qubit storage operation
//   - MeasurementSink: downstream consumer of PairReadyEvents
//   - LossModel: probability-producing transit loss collaborator
//
// All randomness flows through a PartitionedRNG (rng.go) so a fixed seed
// reproduces a run bit for bit.
package sim
