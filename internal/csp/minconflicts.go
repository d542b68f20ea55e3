package csp

import (
	"math/rand"

	"github.com/russross/unitimetable/internal/model"
)

// DefaultMinConflictsIters is the per-invocation step bound of spec §4.D.1.
const DefaultMinConflictsIters = 1000

// MinConflicts runs the stochastic local search of spec §4.D.1. rng must
// be an explicit, per-invocation generator — spec §5 forbids relying on
// process-global random state, since Phase 2 depends on being able to
// reproduce or vary a run from a recorded seed. maxIters <= 0 uses
// DefaultMinConflictsIters.
func MinConflicts(p *Problem, rng *rand.Rand, maxIters int) ([]model.Value, error) {
	if maxIters <= 0 {
		maxIters = DefaultMinConflictsIters
	}

	values := p.minConflictsInitial(rng)

	for iter := 0; iter < maxIters; iter++ {
		conflicted := p.conflictedVariables(values)
		if len(conflicted) == 0 {
			return values, nil
		}
		v := conflicted[rng.Intn(len(conflicted))]
		values[v] = p.minConflictsStep(rng, v, values)
	}
	return nil, ErrExhausted
}

// SeedAssignment exposes the MRV-seeded initial assignment used to start
// MinConflicts, for callers that need a representative assignment to
// diagnose an unsatisfiable problem (spec §7's "report which constraint
// families were most violated").
func SeedAssignment(p *Problem, rng *rand.Rand) []model.Value {
	return p.minConflictsInitial(rng)
}

// minConflictsInitial builds the starting assignment: for each variable
// in the order given (MRV order, already baked into p.Lessons/p.Domains),
// pick the value minimizing violations against already-assigned
// neighbors, breaking ties at random.
func (p *Problem) minConflictsInitial(rng *rand.Rand) []model.Value {
	n := p.NumVars()
	values := make([]model.Value, n)
	assigned := make([]bool, n)

	for v := 0; v < n; v++ {
		domain := p.Domains[v]
		bestCount := -1
		var best []model.Value
		for _, candidate := range domain {
			c := p.countConflicts(v, candidate, values, assigned)
			switch {
			case bestCount == -1 || c < bestCount:
				bestCount = c
				best = best[:0]
				best = append(best, candidate)
			case c == bestCount:
				best = append(best, candidate)
			}
		}
		values[v] = best[rng.Intn(len(best))]
		assigned[v] = true
	}
	return values
}

// minConflictsStep picks the replacement value for v: the one (or one
// of the ones) minimizing total violations against the current full
// assignment. If any alternative ties or beats the current value, one
// of the best such alternatives is chosen over staying put, to escape plateaus;
// if the current value is the unique minimum, it is kept.
func (p *Problem) minConflictsStep(rng *rand.Rand, v int, values []model.Value) model.Value {
	current := values[v]
	currentCount := p.countConflicts(v, current, values, nil)

	bestCount := currentCount
	var alternatives []model.Value
	for _, candidate := range p.Domains[v] {
		if candidate == current {
			continue
		}
		c := p.countConflicts(v, candidate, values, nil)
		switch {
		case c < bestCount:
			bestCount = c
			alternatives = alternatives[:0]
			alternatives = append(alternatives, candidate)
		case c == bestCount:
			alternatives = append(alternatives, candidate)
		}
	}
	if len(alternatives) == 0 {
		return current
	}
	return alternatives[rng.Intn(len(alternatives))]
}
