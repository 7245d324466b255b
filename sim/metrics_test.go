package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_CountersStartEmpty(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 0, m.PairsEmitted)
	assert.Empty(t, m.Stored)
	assert.Empty(t, m.Drops)
	assert.Empty(t, m.LostArrivals)
	assert.Empty(t, m.NonDetections)
	assert.Empty(t, m.DecoherenceDiscards)
}

func TestMetrics_PrintDoesNotPanic(t *testing.T) {
	m := NewMetrics()
	m.PairsEmitted = 2
	m.Stored[ChannelA] = 3
	m.BellOutcomes[1] = 2
	m.SimEndedTime = 100

	assert.NotPanics(t, func() { m.Print() })
}
