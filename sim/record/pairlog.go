package record

import (
	"github.com/rs/xid"

	"github.com/repeater-sim/repeater-sim/sim"
)

const (
	pairTable    = "pairs"
	summaryTable = "run_summary"
)

// PairEntry is one emitted pair with its Bell measurement outcome.
type PairEntry struct {
	RunID     string
	Time      int64
	SlotIDA   int
	SlotIDB   int
	PayloadA  string
	PayloadB  string
	OutcomeM0 int
	OutcomeM1 int
}

// SummaryEntry is the final counter snapshot of one run.
type SummaryEntry struct {
	RunID          string
	Seed           int64
	PairsEmitted   int
	DropsA         int
	DropsB         int
	LostA          int
	LostB          int
	NonDetectionsA int
	NonDetectionsB int
	DecoherenceA   int
	DecoherenceB   int
	SimEndedTime   int64
}

// PairLog records pair events and the run summary through a DataRecorder.
// It implements sim.PairRecorder.
type PairLog struct {
	recorder DataRecorder
	runID    string
}

// NewPairLog creates the log tables on recorder.
func NewPairLog(recorder DataRecorder) *PairLog {
	pl := &PairLog{
		recorder: recorder,
		runID:    xid.New().String(),
	}
	recorder.CreateTable(pairTable, PairEntry{})
	recorder.CreateTable(summaryTable, SummaryEntry{})
	return pl
}

// RunID identifies this run's rows across tables.
func (pl *PairLog) RunID() string {
	return pl.runID
}

// RecordPair persists one emitted pair.
func (pl *PairLog) RecordPair(pair sim.PairReadyEvent, outcome sim.BellOutcome) {
	entry := PairEntry{
		RunID:     pl.runID,
		Time:      pair.Time,
		SlotIDA:   pair.SlotIDA,
		SlotIDB:   pair.SlotIDB,
		OutcomeM0: outcome[0],
		OutcomeM1: outcome[1],
	}
	if pair.PayloadA != nil {
		entry.PayloadA = pair.PayloadA.ID
	}
	if pair.PayloadB != nil {
		entry.PayloadB = pair.PayloadB.ID
	}
	pl.recorder.InsertData(pairTable, entry)
}

// RecordSummary persists the final metrics of a finished run and flushes.
func (pl *PairLog) RecordSummary(seed int64, m *sim.Metrics) {
	pl.recorder.InsertData(summaryTable, SummaryEntry{
		RunID:          pl.runID,
		Seed:           seed,
		PairsEmitted:   m.PairsEmitted,
		DropsA:         m.Drops[sim.ChannelA],
		DropsB:         m.Drops[sim.ChannelB],
		LostA:          m.LostArrivals[sim.ChannelA],
		LostB:          m.LostArrivals[sim.ChannelB],
		NonDetectionsA: m.NonDetections[sim.ChannelA],
		NonDetectionsB: m.NonDetections[sim.ChannelB],
		DecoherenceA:   m.DecoherenceDiscards[sim.ChannelA],
		DecoherenceB:   m.DecoherenceDiscards[sim.ChannelB],
		SimEndedTime:   m.SimEndedTime,
	})
	pl.recorder.Flush()
}
