package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/russross/unitimetable/internal/assignment"
	"github.com/russross/unitimetable/internal/config"
	"github.com/russross/unitimetable/internal/eval"
	"github.com/russross/unitimetable/internal/loader"
	"github.com/russross/unitimetable/internal/model"
)

func cmdScore() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "re-score a previously written assignment",
		RunE:  runScore,
	}
	cmd.Flags().StringVar(&outPath, "in", "", "assignment file to score (defaults to the dataset path with .json)")
	return cmd
}

func loadProblemAndAssignment(logger *zap.Logger, cfg *config.Config, inPath string) (*model.Problem, []*model.Lesson, []model.Value) {
	if cfg.DatasetPath == "" {
		fmt.Fprintln(os.Stderr, "a dataset path is required: pass --dataset or set SCHEDULE_DATASET_PATH")
		os.Exit(1)
	}

	raw, err := loader.LoadFile(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", zap.Error(err))
		os.Exit(1)
	}
	problem, err := model.Build(raw, model.BuildOptions{PhysicalRoomPool: cfg.PhysicalRoomPool})
	if err != nil {
		logger.Error("failed to build problem", zap.Error(err))
		os.Exit(1)
	}

	path := inPath
	if path == "" {
		path = strings.TrimSuffix(cfg.DatasetPath, ".txt") + ".json"
	}
	fp, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open assignment file", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	defer fp.Close()

	lessons, values, err := assignment.Read(fp, problem)
	if err != nil {
		logger.Error("failed to read assignment", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	return problem, lessons, values
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig()
	if err != nil {
		return err
	}
	logger := mustLogger(cfg)
	defer logger.Sync()

	problem, lessons, values := loadProblemAndAssignment(logger, cfg, outPath)
	result := eval.Score(problem, lessons, values)

	fmt.Printf("score: %d\n", result.Score)
	fmt.Printf("  temporal distribution: %d\n", result.TemporalDistribution)
	fmt.Printf("  weekly distribution:   %d\n", result.WeeklyDistribution)
	fmt.Printf("  room minimization:     %d\n", result.RoomMinimization)
	fmt.Printf("  consecutivity:         %d\n", result.Consecutivity)
	return nil
}
