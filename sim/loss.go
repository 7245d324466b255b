// Transit loss collaborators. The simulation core does not model loss; it
// only consumes a survival probability when sampling whether an emitted
// payload reaches the node.

package sim

import (
	"fmt"
	"math"
)

// LossModel produces the probability that a payload survives transit over a
// channel of the given length.
type LossModel interface {
	SurvivalProbability(lengthKm float64) float64
}

// FibreLoss models exponential photon loss on fibre optic channels:
// an initial insertion loss plus a per-kilometre attenuation, both in dB.
type FibreLoss struct {
	LossInitDB  float64 // insertion loss when entering the channel [dB]
	LossPerKmDB float64 // attenuation per channel length [dB/km]
}

// NewFibreLoss validates the (non-negative) dB figures.
func NewFibreLoss(lossInitDB, lossPerKmDB float64) (FibreLoss, error) {
	if lossInitDB < 0 {
		return FibreLoss{}, fmt.Errorf("insertion loss must be non-negative, got %f dB", lossInitDB)
	}
	if lossPerKmDB < 0 {
		return FibreLoss{}, fmt.Errorf("attenuation must be non-negative, got %f dB/km", lossPerKmDB)
	}
	return FibreLoss{LossInitDB: lossInitDB, LossPerKmDB: lossPerKmDB}, nil
}

// SurvivalProbability converts both dB losses to linear success
// probabilities: 10^(-init/10) * 10^(-length*perKm/10).
func (f FibreLoss) SurvivalProbability(lengthKm float64) float64 {
	successInit := math.Pow(10, -f.LossInitDB/10)
	successLen := math.Pow(10, -lengthKm*f.LossPerKmDB/10)
	return successInit * successLen
}

// FreeSpaceLoss applies a length-independent static loss probability, as for
// a pointing/coupling-dominated free-space link.
type FreeSpaceLoss struct {
	StaticLossProb float64
}

// NewFreeSpaceLoss validates the loss probability.
func NewFreeSpaceLoss(p float64) (FreeSpaceLoss, error) {
	if p < 0 || p > 1 {
		return FreeSpaceLoss{}, fmt.Errorf("static loss probability must be in [0,1], got %f", p)
	}
	return FreeSpaceLoss{StaticLossProb: p}, nil
}

// SurvivalProbability is 1 minus the static loss, for any length.
func (f FreeSpaceLoss) SurvivalProbability(float64) float64 {
	return 1 - f.StaticLossProb
}

// Lossless passes every payload; useful for tests and calibration runs.
type Lossless struct{}

// SurvivalProbability is always 1.
func (Lossless) SurvivalProbability(float64) float64 { return 1 }
