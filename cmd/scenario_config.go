package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/repeater-sim/repeater-sim/sim"
)

// ScenarioConfig mirrors the YAML scenario file layout. All fields are
// optional; zero values fall back to the CLI flag defaults.
type ScenarioConfig struct {
	Node struct {
		// Pointers where zero is a meaningful setting (a capacity of 0
		// selects passthrough mode, a probability of 0 disables detection).
		Capacity             *int     `yaml:"capacity"`
		DetectionProbability *float64 `yaml:"detection_probability"`
		ResetPeriod          int64   `yaml:"reset_period"`
		ResetDuration        int64   `yaml:"reset_duration"`
		TickPeriod           int64   `yaml:"tick_period"`
		TransformDuration    int64   `yaml:"transform_duration"`
		Pairing              string  `yaml:"pairing"`
		Fallback             string  `yaml:"fallback"`
	} `yaml:"node"`
	Source struct {
		Period          int64   `yaml:"period"`
		ChannelLengthKm float64 `yaml:"channel_length_km"`
		LossInitDB      float64 `yaml:"loss_init_db"`
		LossPerKmDB     float64 `yaml:"loss_per_km_db"`
	} `yaml:"source"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &cfg, nil
}

// Apply overrides any set (non-zero) scenario fields onto the node and
// source configs built from CLI flags.
func (sc *ScenarioConfig) Apply(node *sim.NodeConfig, source *sim.SourceConfig, loss *sim.FibreLoss) {
	if sc.Node.Capacity != nil {
		node.CapacityPerChannel = *sc.Node.Capacity
	}
	if sc.Node.DetectionProbability != nil {
		node.DetectionProbability = *sc.Node.DetectionProbability
	}
	if sc.Node.ResetPeriod != 0 {
		node.ResetPeriodCycles = sc.Node.ResetPeriod
	}
	if sc.Node.ResetDuration != 0 {
		node.ResetDurationCycles = sc.Node.ResetDuration
	}
	if sc.Node.TickPeriod != 0 {
		node.TickPeriodTicks = sc.Node.TickPeriod
	}
	if sc.Node.TransformDuration != 0 {
		node.TransformDurationTicks = sc.Node.TransformDuration
	}
	if sc.Node.Pairing != "" {
		node.Pairing = sc.Node.Pairing
	}
	if sc.Node.Fallback != "" {
		node.Fallback = sc.Node.Fallback
	}
	if sc.Source.Period != 0 {
		source.PeriodTicks = sc.Source.Period
	}
	if sc.Source.ChannelLengthKm != 0 {
		source.ChannelLengthKm = sc.Source.ChannelLengthKm
	}
	if sc.Source.LossInitDB != 0 {
		loss.LossInitDB = sc.Source.LossInitDB
	}
	if sc.Source.LossPerKmDB != 0 {
		loss.LossPerKmDB = sc.Source.LossPerKmDB
	}
}
