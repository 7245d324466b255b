package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibreLoss_SurvivalProbability(t *testing.T) {
	tests := []struct {
		name     string
		initDB   float64
		perKmDB  float64
		lengthKm float64
		want     float64
	}{
		{"lossless fibre", 0, 0, 100, 1.0},
		{"insertion only, 10dB", 10, 0, 50, 0.1},
		{"attenuation only, 0.2dB/km over 50km", 0, 0.2, 50, 0.1},
		{"combined", 10, 0.2, 50, 0.01},
		{"zero length ignores attenuation", 10, 5, 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFibreLoss(tt.initDB, tt.perKmDB)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, f.SurvivalProbability(tt.lengthKm), 1e-9)
		})
	}
}

func TestNewFibreLoss_RejectsNegativeLoss(t *testing.T) {
	_, err := NewFibreLoss(-1, 0)
	assert.Error(t, err)
	_, err = NewFibreLoss(0, -0.5)
	assert.Error(t, err)
}

func TestFreeSpaceLoss_SurvivalProbability(t *testing.T) {
	f, err := NewFreeSpaceLoss(0.3)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, f.SurvivalProbability(10), 1e-9)
	// Length-independent.
	assert.Equal(t, f.SurvivalProbability(1), f.SurvivalProbability(1000))
}

func TestNewFreeSpaceLoss_RejectsBadProbability(t *testing.T) {
	_, err := NewFreeSpaceLoss(1.5)
	assert.Error(t, err)
	_, err = NewFreeSpaceLoss(-0.1)
	assert.Error(t, err)
}

func TestLossless(t *testing.T) {
	assert.Equal(t, 1.0, Lossless{}.SurvivalProbability(1e6))
}
