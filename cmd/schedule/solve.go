package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/russross/unitimetable/internal/assignment"
	"github.com/russross/unitimetable/internal/config"
	"github.com/russross/unitimetable/internal/history"
	"github.com/russross/unitimetable/internal/loader"
	"github.com/russross/unitimetable/internal/metrics"
	"github.com/russross/unitimetable/internal/model"
	"github.com/russross/unitimetable/internal/solver"
)

var (
	outPath string
	workers int
)

func cmdSolve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "build a feasible timetable and improve it within a time budget",
		RunE:  runSolve,
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output assignment file (defaults to the dataset path with .json)")
	cmd.Flags().IntVar(&workers, "workers", 1, "number of concurrent pipeline restarts (see solver.RunParallel)")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DatasetPath == "" {
		fmt.Fprintln(os.Stderr, "a dataset path is required: pass --dataset or set SCHEDULE_DATASET_PATH")
		os.Exit(1)
	}

	logger := mustLogger(cfg)
	defer logger.Sync()

	raw, err := loader.LoadFile(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", zap.String("path", cfg.DatasetPath), zap.Error(err))
		os.Exit(1)
	}

	problem, err := model.Build(raw, model.BuildOptions{PhysicalRoomPool: cfg.PhysicalRoomPool})
	if err != nil {
		var invalid *model.ErrInvalidInput
		if errors.As(err, &invalid) {
			logger.Error("invalid dataset", zap.String("identifier", invalid.Identifier), zap.String("reason", invalid.Reason))
		} else {
			logger.Error("failed to build problem", zap.Error(err))
		}
		os.Exit(1)
	}

	preferredRooms, err := resolvePreferredRooms(problem, cfg)
	if err != nil {
		logger.Error("invalid class_preferred_rooms configuration", zap.Error(err))
		os.Exit(1)
	}

	rec, stopMetrics := startMetrics(cmd.Context(), cfg, logger)
	defer stopMetrics()

	store := resolveHistoryStore(cfg, logger)

	runID := newRunID()
	seed := cfg.Seed()
	rng := rand.New(rand.NewSource(seed))

	pipeline := solver.New(problem, solver.Options{
		MinConflictsIters:   cfg.MinConflictsIters,
		Phase2Seconds:       cfg.Phase2Seconds,
		ClassPreferredRooms: preferredRooms,
		Seed:                seed,
	}, rec, store)

	logger.Info("starting solve", zap.String("run_id", runID), zap.Int64("seed", seed))

	var result *solver.Result
	if workers > 1 {
		result, err = pipeline.RunParallel(cmd.Context(), runID, seed, workers)
	} else {
		result, err = pipeline.Run(cmd.Context(), runID, rng)
	}
	if err != nil {
		var unsatisfiable *solver.UnsatisfiableError
		var emptyDomain *model.ErrEmptyDomain
		switch {
		case errors.As(err, &unsatisfiable):
			logger.Error("no feasible assignment exists", zap.String("run_id", runID), zap.Error(unsatisfiable))
		case errors.As(err, &emptyDomain):
			logger.Error("empty lesson domain", zap.String("run_id", runID), zap.Error(emptyDomain))
		default:
			logger.Error("solve failed", zap.String("run_id", runID), zap.Error(err))
		}
		os.Exit(2)
	}

	logger.Info("solve finished",
		zap.String("run_id", runID),
		zap.Int("score", result.Score.Score),
	)

	out := outPath
	if out == "" {
		out = strings.TrimSuffix(cfg.DatasetPath, ".txt") + ".json"
	}
	fp, err := os.Create(out)
	if err != nil {
		logger.Error("failed to create output file", zap.String("path", out), zap.Error(err))
		os.Exit(1)
	}
	defer fp.Close()

	record := assignment.Build(problem, result.Lessons, result.Values)
	if err := assignment.Write(fp, record); err != nil {
		logger.Error("failed to write assignment", zap.String("path", out), zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("feasible assignment found, score %d, written to %s\n", result.Score.Score, out)
	return nil
}

func resolvePreferredRooms(problem *model.Problem, cfg *config.Config) (map[string][]*model.Room, error) {
	if len(cfg.ClassPreferredRooms) == 0 {
		return nil, nil
	}

	out := make(map[string][]*model.Room, len(cfg.ClassPreferredRooms))
	for class, names := range cfg.ClassPreferredRooms {
		var rooms []*model.Room
		for _, name := range names {
			room := problem.RoomByName(name)
			if room == nil {
				return nil, fmt.Errorf("class_preferred_rooms: class %s names unknown room %q", class, name)
			}
			rooms = append(rooms, room)
		}
		out[class] = rooms
	}
	return out, nil
}

func resolveHistoryStore(cfg *config.Config, logger *zap.Logger) history.Store {
	if cfg.DatabaseURL == "" {
		return history.NewMemoryStore()
	}
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Warn("failed to connect to history database, falling back to in-memory store", zap.Error(err))
		return history.NewMemoryStore()
	}
	return history.NewPostgresStore(db)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*metrics.Recorder, func()) {
	if cfg.MetricsAddr == "" {
		return nil, func() {}
	}

	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
	serveCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := metrics.Serve(serveCtx, cfg.MetricsAddr); err != nil {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return rec, cancel
}
