package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeConfig_FieldEquivalence(t *testing.T) {
	got := NewNodeConfig(4, 0.7, 10, 2, 1)
	want := NodeConfig{
		CapacityPerChannel:   4,
		DetectionProbability: 0.7,
		ResetPeriodCycles:    10,
		ResetDurationCycles:  2,
		TickPeriodTicks:      1,
	}
	assert.Equal(t, want, got)
}

func TestNodeConfig_Validate(t *testing.T) {
	valid := NewNodeConfig(1, 0.5, 10, 2, 1)

	tests := []struct {
		name    string
		mutate  func(*NodeConfig)
		wantErr string
	}{
		{"valid defaults", func(c *NodeConfig) {}, ""},
		{"zero capacity is allowed", func(c *NodeConfig) { c.CapacityPerChannel = 0 }, ""},
		{"probability bounds", func(c *NodeConfig) { c.DetectionProbability = 1.0 }, ""},
		{"negative capacity", func(c *NodeConfig) { c.CapacityPerChannel = -1 }, "capacity"},
		{"probability above one", func(c *NodeConfig) { c.DetectionProbability = 1.01 }, "detection probability"},
		{"negative probability", func(c *NodeConfig) { c.DetectionProbability = -0.1 }, "detection probability"},
		{"zero reset period", func(c *NodeConfig) { c.ResetPeriodCycles = 0 }, "reset period"},
		{"negative reset duration", func(c *NodeConfig) { c.ResetDurationCycles = -2 }, "reset duration"},
		{"zero tick period", func(c *NodeConfig) { c.TickPeriodTicks = 0 }, "tick period"},
		{"negative transform duration", func(c *NodeConfig) { c.TransformDurationTicks = -1 }, "transform duration"},
		{"unknown pairing", func(c *NodeConfig) { c.Pairing = "lifo" }, "pairing"},
		{"unknown fallback", func(c *NodeConfig) { c.Fallback = "eager" }, "fallback"},
		{"named strategies", func(c *NodeConfig) { c.Pairing = PairingFIFO; c.Fallback = FallbackOpportunistic }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewRepeaterNode_RejectsInvalidConfig(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := NewNodeConfig(1, 2.0, 10, 2, 1)

	_, err := NewRepeaterNode(cfg, rng, IdentityTransform{}, NewBellMeasurementSink(rng))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid node config")
}

func TestNewRepeaterNode_RequiresCollaborators(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := NewNodeConfig(1, 1.0, 10, 2, 1)

	_, err := NewRepeaterNode(cfg, rng, nil, NewBellMeasurementSink(rng))
	assert.Error(t, err)
}
