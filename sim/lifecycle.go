// The per-channel slot lifecycle state machine, advanced once per tick.
// This manager owns every status transition except IDLE/TARGET -> FILLED,
// which only the ChannelRouter performs on a successful detection.

package sim

import "github.com/sirupsen/logrus"

// LifecycleManager ages one channel's slots against the decoherence clock
// and maintains the single-TARGET invariant.
type LifecycleManager struct {
	endpoint      *ChannelEndpoint
	resetPeriod   int64
	resetDuration int64
}

// NewLifecycleManager creates the manager for one channel's endpoint.
func NewLifecycleManager(ep *ChannelEndpoint, resetPeriod, resetDuration int64) *LifecycleManager {
	return &LifecycleManager{
		endpoint:      ep,
		resetPeriod:   resetPeriod,
		resetDuration: resetDuration,
	}
}

// Tick advances every slot in ascending id order, then re-establishes the
// TARGET invariant.
//
// RESET slots count down their reinitialization window and come back IDLE
// with cleared payload. All other slots count down the decoherence window;
// at zero the slot is forced to RESET unconditionally, even from FILLED —
// a stored payload that outlived the window is discarded.
func (lm *LifecycleManager) Tick(sim *Simulator, now int64) {
	for _, slot := range lm.endpoint.Slots {
		switch slot.Status {
		case SlotReset:
			slot.ResetTimer--
			if slot.ResetTimer <= 0 {
				slot.Payload = nil
				slot.Status = SlotIdle
				slot.ResetTimer = lm.resetDuration
			}
		default:
			slot.TriggerTimer--
			if slot.TriggerTimer <= 0 {
				if slot.Status == SlotFilled {
					sim.Metrics.DecoherenceDiscards[slot.Channel]++
					logrus.Debugf("[tick %07d] Slot %d decohered, payload discarded", now, slot.ID)
				}
				slot.ForceReset(lm.resetPeriod)
			}
		}
	}

	lm.ensureTarget()
}

// ensureTarget promotes the lowest-id IDLE slot to TARGET when the channel
// has none. No-op when no slot is IDLE.
func (lm *LifecycleManager) ensureTarget() {
	for _, slot := range lm.endpoint.Slots {
		if slot.Status == SlotTarget {
			return
		}
	}
	for _, slot := range lm.endpoint.Slots {
		if slot.Status == SlotIdle {
			slot.Status = SlotTarget
			return
		}
	}
}

// Target returns the channel's current TARGET slot, or nil.
func (lm *LifecycleManager) Target() *MemorySlot {
	return lm.endpoint.Target()
}
