package sim

import "fmt"

// Pairing strategy and fallback policy names accepted by NodeConfig.
const (
	PairingScan = "scan" // lowest-id FILLED slot per channel (default)
	PairingFIFO = "fifo" // explicit store-order queues of slot ids

	FallbackStrict        = "strict"        // zero-capacity: pair only same-tick arrivals (default)
	FallbackOpportunistic = "opportunistic" // zero-capacity: pair whenever both buffers are full
)

// NodeConfig groups the repeater node parameters.
type NodeConfig struct {
	CapacityPerChannel   int     // memory slots per channel (0 = passthrough mode)
	DetectionProbability float64 // Bernoulli parameter for the storage detection trial, in [0,1]
	ResetPeriodCycles    int64   // decoherence window: ticks a slot may age before forced RESET (must be > 0)
	ResetDurationCycles  int64   // ticks a slot spends reinitializing in RESET (must be > 0)
	TickPeriodTicks      int64   // lifecycle clock period (must be > 0)
	// TransformDurationTicks is how long a storage transform occupies the
	// node's exclusive quantum resource. 0 means the resource is released
	// within the same instant it was acquired.
	TransformDurationTicks int64
	Pairing                string // PairingScan (default when empty) or PairingFIFO
	Fallback               string // FallbackStrict (default when empty) or FallbackOpportunistic
}

// NewNodeConfig returns a config with the given core parameters and default
// strategies.
func NewNodeConfig(capacity int, detectionProb float64, resetPeriod, resetDuration, tickPeriod int64) NodeConfig {
	return NodeConfig{
		CapacityPerChannel:   capacity,
		DetectionProbability: detectionProb,
		ResetPeriodCycles:    resetPeriod,
		ResetDurationCycles:  resetDuration,
		TickPeriodTicks:      tickPeriod,
	}
}

// Validate checks all fields. Any error here is fatal at construction;
// nothing at runtime re-validates.
func (c NodeConfig) Validate() error {
	if c.CapacityPerChannel < 0 {
		return fmt.Errorf("capacity per channel must be non-negative, got %d", c.CapacityPerChannel)
	}
	if c.DetectionProbability < 0 || c.DetectionProbability > 1 {
		return fmt.Errorf("detection probability must be in [0,1], got %f", c.DetectionProbability)
	}
	if c.ResetPeriodCycles <= 0 {
		return fmt.Errorf("reset period must be positive, got %d", c.ResetPeriodCycles)
	}
	if c.ResetDurationCycles <= 0 {
		return fmt.Errorf("reset duration must be positive, got %d", c.ResetDurationCycles)
	}
	if c.TickPeriodTicks <= 0 {
		return fmt.Errorf("tick period must be positive, got %d", c.TickPeriodTicks)
	}
	if c.TransformDurationTicks < 0 {
		return fmt.Errorf("transform duration must be non-negative, got %d", c.TransformDurationTicks)
	}
	switch c.Pairing {
	case "", PairingScan, PairingFIFO:
	default:
		return fmt.Errorf("unknown pairing strategy %q", c.Pairing)
	}
	switch c.Fallback {
	case "", FallbackStrict, FallbackOpportunistic:
	default:
		return fmt.Errorf("unknown fallback policy %q", c.Fallback)
	}
	return nil
}
