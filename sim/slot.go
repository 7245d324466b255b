// Defines the MemorySlot struct that models one addressable quantum memory
// position, and the ChannelEndpoint that stages arrivals for a channel.
// Slot status transitions are owned by the LifecycleManager (tick-driven),
// except IDLE/TARGET -> FILLED which only the ChannelRouter performs.

package sim

import (
	"fmt"
)

// Channel identifies which input channel a slot or arrival belongs to.
type Channel string

const (
	ChannelA Channel = "A"
	ChannelB Channel = "B"
)

// SlotStatus represents the lifecycle state of a memory slot.
type SlotStatus string

const (
	SlotIdle   SlotStatus = "idle"
	SlotTarget SlotStatus = "target"
	SlotFilled SlotStatus = "filled"
	SlotReset  SlotStatus = "reset"
)

// MemorySlot models a single quantum memory position.
//
// Invariants:
//   - Payload is non-nil iff Status == SlotFilled.
//   - ResetTimer is meaningful only while Status == SlotReset.
//   - At most one slot per channel is SlotTarget at any instant
//     (enforced by LifecycleManager.Tick).
type MemorySlot struct {
	ID      int
	Channel Channel
	Status  SlotStatus

	// ResetTimer counts down the reinitialization window while the slot is
	// in RESET. TriggerTimer counts down the decoherence window in every
	// other state; at zero the slot is forced to RESET even from FILLED.
	ResetTimer   int64
	TriggerTimer int64

	Payload *QuantumState
}

// NewMemorySlot creates a slot in IDLE with both timers armed to their
// configured constants.
func NewMemorySlot(id int, ch Channel, resetPeriod, resetDuration int64) *MemorySlot {
	return &MemorySlot{
		ID:           id,
		Channel:      ch,
		Status:       SlotIdle,
		ResetTimer:   resetDuration,
		TriggerTimer: resetPeriod,
	}
}

// Fill stores a payload and marks the slot FILLED. Only the ChannelRouter
// calls this, on a successful detection trial against the TARGET slot.
func (s *MemorySlot) Fill(q *QuantumState) {
	s.Payload = q
	s.Status = SlotFilled
}

// ForceReset discards any payload and puts the slot into RESET with the
// decoherence window re-armed. Used both for trigger-timer expiry and for
// early reclaim after pairing.
func (s *MemorySlot) ForceReset(resetPeriod int64) {
	s.Payload = nil
	s.Status = SlotReset
	s.TriggerTimer = resetPeriod
}

func (s *MemorySlot) String() string {
	return fmt.Sprintf("Slot: (ID: %d, Channel: %s, Status: %s, TriggerTimer: %d, ResetTimer: %d)",
		s.ID, s.Channel, s.Status, s.TriggerTimer, s.ResetTimer)
}

// ChannelEndpoint holds a channel's single-position staging buffer and the
// ordered (ascending id) view of the channel's slots.
type ChannelEndpoint struct {
	Channel Channel

	// Staging is the most recent unprocessed arrival. StagingSet
	// distinguishes an empty buffer from a buffered null payload
	// (a herald whose qubit was lost upstream).
	Staging    *QuantumState
	StagingSet bool

	Slots []*MemorySlot
}

// NewChannelEndpoint creates an endpoint owning capacity slots with global
// ids [firstID, firstID+capacity). Channel A takes the lower id block and
// channel B the upper, so a 1+1 node exposes slots 0 and 1.
func NewChannelEndpoint(ch Channel, firstID, capacity int, resetPeriod, resetDuration int64) *ChannelEndpoint {
	ep := &ChannelEndpoint{Channel: ch}
	for i := 0; i < capacity; i++ {
		ep.Slots = append(ep.Slots, NewMemorySlot(firstID+i, ch, resetPeriod, resetDuration))
	}
	// The lowest-id slot starts as the storage target.
	if len(ep.Slots) > 0 {
		ep.Slots[0].Status = SlotTarget
	}
	return ep
}

// Stage buffers an arrival, replacing any unprocessed one.
func (ep *ChannelEndpoint) Stage(q *QuantumState) {
	ep.Staging = q
	ep.StagingSet = true
}

// TakeStaged empties the staging buffer and returns its content.
// The second return is false if the buffer was already empty.
func (ep *ChannelEndpoint) TakeStaged() (*QuantumState, bool) {
	if !ep.StagingSet {
		return nil, false
	}
	q := ep.Staging
	ep.Staging = nil
	ep.StagingSet = false
	return q, true
}

// Target returns the channel's current TARGET slot, or nil if none exists.
func (ep *ChannelEndpoint) Target() *MemorySlot {
	for _, s := range ep.Slots {
		if s.Status == SlotTarget {
			return s
		}
	}
	return nil
}
