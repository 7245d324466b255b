// Heralded source collaborators: one per channel, emitting a payload every
// source period. Whether the payload survives transit is sampled up front
// from the channel's loss model; the node only ever sees the outcome, as a
// payload-carrying or null arrival.

package sim

import "fmt"

// SourceConfig groups the emission parameters shared by both sources.
type SourceConfig struct {
	PeriodTicks     int64   // emission period (must be > 0)
	ChannelLengthKm float64 // transit distance fed to the loss model (must be >= 0)
}

// Validate checks the emission parameters.
func (c SourceConfig) Validate() error {
	if c.PeriodTicks <= 0 {
		return fmt.Errorf("source period must be positive, got %d", c.PeriodTicks)
	}
	if c.ChannelLengthKm < 0 {
		return fmt.Errorf("channel length must be non-negative, got %f", c.ChannelLengthKm)
	}
	return nil
}

// HeraldedSource emits one arrival per period on one channel.
type HeraldedSource struct {
	Channel Channel
	Config  SourceConfig
	Loss    LossModel
}

// NewHeraldedSource creates a source for ch. A nil loss model means a
// lossless channel.
func NewHeraldedSource(ch Channel, cfg SourceConfig, loss LossModel) (*HeraldedSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source config: %w", err)
	}
	if loss == nil {
		loss = Lossless{}
	}
	return &HeraldedSource{Channel: ch, Config: cfg, Loss: loss}, nil
}

// ScheduleArrivals pre-schedules this source's arrivals up to the
// simulator's horizon: one per period, each surviving transit with the loss
// model's probability. Lost emissions become null arrivals, so the node
// still observes the herald. At most one arrival per channel per instant.
func (hs *HeraldedSource) ScheduleArrivals(sim *Simulator) {
	rng := sim.RNG.ForSubsystem(SubsystemForChannel(hs.Channel))
	survival := hs.Loss.SurvivalProbability(hs.Config.ChannelLengthKm)

	for t := hs.Config.PeriodTicks; t <= sim.Horizon; t += hs.Config.PeriodTicks {
		var q *QuantumState
		if rng.Float64() < survival {
			q = NewQuantumState(hs.Channel, t)
		}
		sim.InjectArrival(t, hs.Channel, q)
	}
}
