package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/repeater-sim/repeater-sim/sim"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_AppliesOverrides(t *testing.T) {
	path := writeScenario(t, `
node:
  capacity: 4
  detection_probability: 0.25
  reset_period: 20
  pairing: fifo
source:
  period: 2
  channel_length_km: 25
  loss_per_km_db: 0.3
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	nodeCfg := sim.NewNodeConfig(1, 1.0, 10, 2, 1)
	sourceCfg := sim.SourceConfig{PeriodTicks: 1, ChannelLengthKm: 50}
	loss := sim.FibreLoss{LossInitDB: 0.1, LossPerKmDB: 0.005}
	scenario.Apply(&nodeCfg, &sourceCfg, &loss)

	assert.Equal(t, 4, nodeCfg.CapacityPerChannel)
	assert.Equal(t, 0.25, nodeCfg.DetectionProbability)
	assert.Equal(t, int64(20), nodeCfg.ResetPeriodCycles)
	assert.Equal(t, sim.PairingFIFO, nodeCfg.Pairing)
	// Unset fields keep their flag values.
	assert.Equal(t, int64(2), nodeCfg.ResetDurationCycles)
	assert.Equal(t, int64(1), nodeCfg.TickPeriodTicks)

	assert.Equal(t, int64(2), sourceCfg.PeriodTicks)
	assert.Equal(t, 25.0, sourceCfg.ChannelLengthKm)
	assert.Equal(t, 0.1, loss.LossInitDB)
	assert.Equal(t, 0.3, loss.LossPerKmDB)
}

func TestLoadScenario_ZeroCapacityIsExplicit(t *testing.T) {
	// capacity: 0 must select passthrough mode rather than read as unset.
	path := writeScenario(t, `
node:
  capacity: 0
  detection_probability: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	nodeCfg := sim.NewNodeConfig(3, 0.9, 10, 2, 1)
	sourceCfg := sim.SourceConfig{PeriodTicks: 1}
	loss := sim.FibreLoss{}
	scenario.Apply(&nodeCfg, &sourceCfg, &loss)

	assert.Equal(t, 0, nodeCfg.CapacityPerChannel)
	assert.Equal(t, 0.0, nodeCfg.DetectionProbability)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, "node: [not: a, mapping")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}
