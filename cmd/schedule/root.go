// Command schedule generates and inspects course timetables: solve
// builds a feasible, locally-improved assignment from a dataset file;
// score, bycourse, and byinstructor inspect a previously written one.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/russross/unitimetable/internal/config"
	"github.com/russross/unitimetable/internal/logging"
)

var (
	datasetPath string
	phase2Secs  int
	mcIters     int
	roomPool    int
	randomSeed  int64
	hasSeed     bool
	metricsAddr string
	debugLog    bool
)

func main() {
	root := &cobra.Command{
		Use:   "schedule",
		Short: "University course timetable generator",
		Long: "A CSP-based tool that builds a feasible course timetable and improves\n" +
			"it by local search within a time budget.",
	}
	root.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the dataset text file (overrides SCHEDULE_DATASET_PATH)")
	root.PersistentFlags().IntVar(&phase2Secs, "phase2-seconds", 0, "Phase 2 improvement budget in seconds (0 uses the configured default)")
	root.PersistentFlags().IntVar(&mcIters, "min-conflicts-iters", 0, "per-invocation MinConflicts iteration cap (0 uses the configured default)")
	root.PersistentFlags().IntVar(&roomPool, "physical-room-pool", 0, "number of generic physical rooms available beyond rr (0 uses the configured default)")
	root.PersistentFlags().Int64Var(&randomSeed, "seed", 0, "random seed for reproducibility")
	root.PersistentFlags().BoolVar(&hasSeed, "seed-set", false, "set to true when --seed is explicitly provided")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "use a development (console) logger instead of production JSON logging")

	root.AddCommand(cmdSolve())
	root.AddCommand(cmdScore())
	root.AddCommand(cmdByCourse())
	root.AddCommand(cmdByInstructor())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolvedConfig merges persistent flags over config.Load's result,
// since flags always take precedence over environment/.env values.
func resolvedConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if datasetPath != "" {
		cfg.DatasetPath = datasetPath
	}
	if phase2Secs > 0 {
		cfg.Phase2Seconds = phase2Secs
	}
	if mcIters > 0 {
		cfg.MinConflictsIters = mcIters
	}
	if roomPool > 0 {
		cfg.PhysicalRoomPool = roomPool
	}
	if hasSeed {
		cfg.RandomSeed = randomSeed
		cfg.HasRandomSeed = true
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if debugLog {
		cfg.LogDebug = true
	}
	return cfg, nil
}

func newRunID() string {
	return uuid.NewString()
}

func mustLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(2)
	}
	return logger
}
