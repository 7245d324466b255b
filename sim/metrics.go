// Tracks node-wide counters for final reporting: completed pairs, the
// non-error probabilistic outcomes (drops, non-detections, lost arrivals),
// and decoherence losses.

package sim

import "fmt"

// ChannelCounts holds one counter per channel.
type ChannelCounts map[Channel]int

// Metrics aggregates statistics about the simulation
// for final reporting. Useful for evaluating system performance
// and debugging behavior over time.
type Metrics struct {
	PairsEmitted int // completed pairs handed to the downstream sink

	Stored              ChannelCounts // successful detection-gated stores
	Drops               ChannelCounts // arrivals discarded for lack of a TARGET slot
	LostArrivals        ChannelCounts // heralds whose payload was lost upstream
	NonDetections       ChannelCounts // failed Bernoulli detection trials
	DecoherenceDiscards ChannelCounts // FILLED slots reclaimed by trigger-timer expiry

	// BellOutcomes counts measurement results by index into the four
	// Bell states (00, 01, 10, 11).
	BellOutcomes [4]int

	SimEndedTime int64
}

// NewMetrics creates a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Stored:              make(ChannelCounts),
		Drops:               make(ChannelCounts),
		LostArrivals:        make(ChannelCounts),
		NonDetections:       make(ChannelCounts),
		DecoherenceDiscards: make(ChannelCounts),
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Pairs emitted        : %d\n", m.PairsEmitted)
	for _, ch := range []Channel{ChannelA, ChannelB} {
		fmt.Printf("Channel %s            : stored=%d dropped=%d lost=%d undetected=%d decohered=%d\n",
			ch, m.Stored[ch], m.Drops[ch], m.LostArrivals[ch], m.NonDetections[ch], m.DecoherenceDiscards[ch])
	}
	fmt.Printf("Bell outcomes        : 00=%d 01=%d 10=%d 11=%d\n",
		m.BellOutcomes[0], m.BellOutcomes[1], m.BellOutcomes[2], m.BellOutcomes[3])
	fmt.Printf("Simulation end time  : %d ticks\n", m.SimEndedTime)
}
