package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/repeater-sim/repeater-sim/sim"
	"github.com/repeater-sim/repeater-sim/sim/record"
)

var (
	// CLI flags for the simulation run
	seed     int64  // Seed for all randomness (detection, loss, measurement)
	duration int64  // Total simulation time (in ticks)
	logLevel string // Log verbosity level

	// Repeater node configuration
	capacity          int     // Memory slots per channel (0 = passthrough mode)
	detectionProb     float64 // Probability a routed payload is captured into memory
	resetPeriod       int64   // Decoherence window in ticks before a slot is forced to RESET
	resetDuration     int64   // Ticks a slot spends reinitializing
	tickPeriod        int64   // Lifecycle clock period in ticks
	transformDuration int64   // Ticks the storage transform holds the quantum resource
	pairing           string  // Pairing strategy: scan or fifo
	fallback          string  // Zero-capacity policy: strict or opportunistic

	// Source and channel configuration
	sourcePeriod    int64   // Emission period of each heralded source (in ticks)
	channelLengthKm float64 // Transit distance per channel in km
	lossInitDB      float64 // Fibre insertion loss in dB
	lossPerKmDB     float64 // Fibre attenuation in dB/km

	scenarioFile string // Optional YAML scenario overriding the flags above
	traceDB      string // Optional SQLite path for pair/summary recording

	// Sweep flags
	sweepDepths     []int // Memory depths to sweep
	sweepIterations int   // Repetitions per depth
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "repeater-sim",
	Short: "Discrete-event simulator for a quantum-repeater node",
}

// buildConfigs assembles node, source and loss configs from flags and the
// optional scenario file.
func buildConfigs() (sim.NodeConfig, sim.SourceConfig, sim.FibreLoss, error) {
	nodeCfg := sim.NodeConfig{
		CapacityPerChannel:     capacity,
		DetectionProbability:   detectionProb,
		ResetPeriodCycles:      resetPeriod,
		ResetDurationCycles:    resetDuration,
		TickPeriodTicks:        tickPeriod,
		TransformDurationTicks: transformDuration,
		Pairing:                pairing,
		Fallback:               fallback,
	}
	sourceCfg := sim.SourceConfig{
		PeriodTicks:     sourcePeriod,
		ChannelLengthKm: channelLengthKm,
	}
	loss := sim.FibreLoss{LossInitDB: lossInitDB, LossPerKmDB: lossPerKmDB}

	if scenarioFile != "" {
		scenario, err := LoadScenario(scenarioFile)
		if err != nil {
			return nodeCfg, sourceCfg, loss, err
		}
		scenario.Apply(&nodeCfg, &sourceCfg, &loss)
	}

	return nodeCfg, sourceCfg, loss, nil
}

// newSimulation wires a simulator with both heralded sources scheduled.
func newSimulation(runSeed int64, nodeCfg sim.NodeConfig, sourceCfg sim.SourceConfig, loss sim.LossModel) (*sim.Simulator, error) {
	s, err := sim.NewSimulator(duration, runSeed, nodeCfg)
	if err != nil {
		return nil, err
	}
	s.Start()

	for _, ch := range []sim.Channel{sim.ChannelA, sim.ChannelB} {
		source, err := sim.NewHeraldedSource(ch, sourceCfg, loss)
		if err != nil {
			return nil, err
		}
		source.ScheduleArrivals(s)
	}

	return s, nil
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the repeater simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		nodeCfg, sourceCfg, loss, err := buildConfigs()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation with capacity=%d/channel, detection=%.3f, horizon=%d ticks",
			nodeCfg.CapacityPerChannel, nodeCfg.DetectionProbability, duration)

		s, err := newSimulation(seed, nodeCfg, sourceCfg, loss)
		if err != nil {
			logrus.Fatalf("Unable to construct simulation: %v", err)
		}

		var pairLog *record.PairLog
		if traceDB != "" {
			pairLog = record.NewPairLog(record.New(traceDB))
			s.PairLog = pairLog
		}

		s.Run()
		s.Metrics.Print()

		if pairLog != nil {
			pairLog.RecordSummary(seed, s.Metrics)
		}

		logrus.Info("Simulation complete.")
	},
}

// sweepCmd repeats the simulation across memory depths and reports the mean
// number of emitted pairs per depth.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep memory depths and report mean pairs per depth",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		nodeCfg, sourceCfg, loss, err := buildConfigs()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if sweepIterations <= 0 {
			logrus.Fatalf("Iterations must be positive, got %d", sweepIterations)
		}

		fmt.Println("mem_depth,mean_pairs")
		for _, depth := range sweepDepths {
			cfg := nodeCfg
			cfg.CapacityPerChannel = depth

			total := 0
			for i := 0; i < sweepIterations; i++ {
				// Each repetition derives its own seed so depths see
				// the same seed sequence.
				s, err := newSimulation(seed+int64(i), cfg, sourceCfg, loss)
				if err != nil {
					logrus.Fatalf("Unable to construct simulation: %v", err)
				}
				s.Run()
				total += s.Metrics.PairsEmitted
			}
			fmt.Printf("%d,%.2f\n", depth, float64(total)/float64(sweepIterations))
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for all simulation randomness")
		c.Flags().Int64Var(&duration, "duration", 1000, "Total simulation duration (in ticks)")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

		// Repeater node configs
		c.Flags().IntVar(&capacity, "capacity", 1, "Memory slots per channel (0 = passthrough)")
		c.Flags().Float64Var(&detectionProb, "detection-probability", 1.0, "Probability of capturing a routed payload")
		c.Flags().Int64Var(&resetPeriod, "reset-period", 10, "Ticks before an aging slot is forced to RESET")
		c.Flags().Int64Var(&resetDuration, "reset-duration", 2, "Ticks a slot spends reinitializing in RESET")
		c.Flags().Int64Var(&tickPeriod, "tick-period", 1, "Lifecycle clock period (in ticks)")
		c.Flags().Int64Var(&transformDuration, "transform-duration", 0, "Ticks the storage transform occupies the quantum resource")
		c.Flags().StringVar(&pairing, "pairing", sim.PairingScan, "Pairing strategy (scan, fifo)")
		c.Flags().StringVar(&fallback, "fallback", sim.FallbackStrict, "Zero-capacity policy (strict, opportunistic)")

		// Source and channel configs
		c.Flags().Int64Var(&sourcePeriod, "source-period", 1, "Emission period of each heralded source (in ticks)")
		c.Flags().Float64Var(&channelLengthKm, "channel-length-km", 50, "Transit distance per channel (km)")
		c.Flags().Float64Var(&lossInitDB, "loss-init-db", 0.1, "Fibre insertion loss (dB)")
		c.Flags().Float64Var(&lossPerKmDB, "loss-per-km-db", 0.005, "Fibre attenuation (dB/km)")

		c.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file overriding node/source flags")
	}

	runCmd.Flags().StringVar(&traceDB, "trace-db", "", "SQLite path (without extension) for pair recording")

	sweepCmd.Flags().IntSliceVar(&sweepDepths, "depths", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, "Memory depths to sweep")
	sweepCmd.Flags().IntVar(&sweepIterations, "iterations", 10, "Repetitions per depth")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
