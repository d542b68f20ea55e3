// Package solver implements the two-phase pipeline of spec §4.E: a
// feasibility phase that terminates with either a binary- and
// global-constraint-consistent assignment or an UnsatisfiableError,
// followed by a deadline-bounded improvement phase that keeps the
// best-scoring feasible assignment it finds. The daily caps are checked
// only on the first complete assignment Backtrack returns; when that one
// breaks a cap, Phase 1 reports UnsatisfiableError without searching for
// another assignment that meets the caps.
package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/russross/unitimetable/internal/constraint"
	"github.com/russross/unitimetable/internal/csp"
	"github.com/russross/unitimetable/internal/domainbuild"
	"github.com/russross/unitimetable/internal/eval"
	"github.com/russross/unitimetable/internal/history"
	"github.com/russross/unitimetable/internal/metrics"
	"github.com/russross/unitimetable/internal/model"
)

// DefaultPhase2Seconds is the Phase 2 deadline when Options.Phase2Seconds
// is zero, per spec §6.3.
const DefaultPhase2Seconds = 60

// Options configures a pipeline run. Zero values fall back to the
// defaults named in spec §6.3 and §4.D.1.
type Options struct {
	MinConflictsIters   int
	Phase2Seconds       int
	ClassPreferredRooms map[string][]*model.Room
	// Seed is recorded alongside history entries; it does not itself
	// drive any random decision (the caller's rng already is or isn't
	// derived from it) but lets a later BestRuns query be reproduced.
	Seed int64
}

func (o Options) minConflictsIters() int {
	if o.MinConflictsIters <= 0 {
		return csp.DefaultMinConflictsIters
	}
	return o.MinConflictsIters
}

func (o Options) phase2Deadline() time.Duration {
	seconds := o.Phase2Seconds
	if seconds <= 0 {
		seconds = DefaultPhase2Seconds
	}
	return time.Duration(seconds) * time.Second
}

// Result is a complete, feasible assignment together with its score.
// Lessons[i] is assigned Values[i].
type Result struct {
	Lessons []*model.Lesson
	Values  []model.Value
	Score   eval.Result
}

// Pipeline runs the Phase 1 / Phase 2 solve over a single problem
// instance. Metrics and History are both optional: a nil Recorder and a
// nil Store are safe no-ops, so tests never need a database or a
// metrics server.
type Pipeline struct {
	Problem *model.Problem
	Opts    Options
	Metrics *metrics.Recorder
	History history.Store
}

// New builds a Pipeline. rec and store may both be nil.
func New(p *model.Problem, opts Options, rec *metrics.Recorder, store history.Store) *Pipeline {
	return &Pipeline{Problem: p, Opts: opts, Metrics: rec, History: store}
}

// Run executes Phase 1 followed by Phase 2, using runID to correlate any
// recorded history entries. rng drives every random decision the solver
// makes; callers own seeding and reproducibility (spec §5).
func (pl *Pipeline) Run(ctx context.Context, runID string, rng *rand.Rand) (*Result, error) {
	domains, err := domainbuild.Build(pl.Problem, domainbuild.Options{ClassPreferredRooms: pl.Opts.ClassPreferredRooms})
	if err != nil {
		return nil, err
	}

	lessons := make([]*model.Lesson, len(domains))
	values := make([][]model.Value, len(domains))
	for i, vd := range domains {
		lessons[i] = vd.Lesson
		values[i] = vd.Domain
	}

	binary := constraint.BuildAll(lessons)
	cp := csp.NewProblem(pl.Problem, lessons, values, binary)

	first, err := pl.feasibility(cp, lessons, rng)
	if err != nil {
		return nil, err
	}
	pl.Metrics.SetBestScore(first.Score.Score)
	pl.recordRun(ctx, runID, first.Score.Score, true)

	best := pl.improve(ctx, runID, rng, cp, lessons, *first)
	return &best, nil
}

// feasibility implements Phase 1: MinConflicts once, Backtracking on
// failure, ErrUnsatisfiable if neither produces an assignment that
// satisfies both the binary and the global constraints.
func (pl *Pipeline) feasibility(cp *csp.Problem, lessons []*model.Lesson, rng *rand.Rand) (*Result, error) {
	pl.Metrics.ObserveAttempt()
	if values, err := csp.MinConflicts(cp, rng, pl.Opts.minConflictsIters()); err == nil {
		if len(constraint.CheckGlobal(pl.Problem, lessons, values)) == 0 {
			return pl.scored(lessons, values), nil
		}
	}

	values, ok := csp.Backtrack(cp)
	if !ok || len(constraint.CheckGlobal(pl.Problem, lessons, values)) != 0 {
		seed := csp.SeedAssignment(cp, rng)
		return nil, newUnsatisfiableError(cp, pl.Problem, lessons, seed)
	}

	return pl.scored(lessons, values), nil
}

// improve implements Phase 2: repeated fresh-seeded MinConflicts calls
// until Opts.Phase2Seconds elapses or ctx is cancelled, keeping the
// highest-scoring feasible result seen. Phase 1's result is always a
// valid starting "best" even if no Phase 2 iteration beats it.
func (pl *Pipeline) improve(ctx context.Context, runID string, rng *rand.Rand, cp *csp.Problem, lessons []*model.Lesson, best Result) Result {
	start := time.Now()
	deadline := start.Add(pl.Opts.phase2Deadline())
	defer func() { pl.Metrics.SetPhase2Seconds(time.Since(start).Seconds()) }()

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		pl.Metrics.ObserveAttempt()
		values, err := csp.MinConflicts(cp, rng, pl.Opts.minConflictsIters())
		if err != nil {
			continue
		}
		if len(constraint.CheckGlobal(pl.Problem, lessons, values)) != 0 {
			continue
		}

		candidate := pl.scored(lessons, values)
		if candidate.Score.Score > best.Score.Score {
			best = *candidate
			pl.Metrics.SetBestScore(best.Score.Score)
			pl.recordRun(ctx, runID, best.Score.Score, true)
		}
	}
	return best
}

func (pl *Pipeline) scored(lessons []*model.Lesson, values []model.Value) *Result {
	pl.Metrics.ObserveFeasible()
	score := eval.Score(pl.Problem, lessons, values)
	return &Result{Lessons: lessons, Values: append([]model.Value(nil), values...), Score: score}
}

func (pl *Pipeline) recordRun(ctx context.Context, runID string, score int, feasible bool) {
	if pl.History == nil {
		return
	}
	_ = pl.History.RecordRun(ctx, history.Run{
		ID:         runID,
		Seed:       pl.Opts.Seed,
		Score:      score,
		Feasible:   feasible,
		RecordedAt: time.Now(),
	})
}
