// Package csp is the generic CSP abstraction of spec §4.D: variables
// with domains, binary constraints, and two solve strategies —
// MinConflicts (stochastic local search) and Backtracking (complete,
// with forward checking). It knows nothing about lessons, classes, or
// rooms beyond what model.Problem and constraint.Pairwise expose to it.
package csp

import (
	"github.com/russross/unitimetable/internal/constraint"
	"github.com/russross/unitimetable/internal/model"
)

// Problem is a CSP instance over lesson variables 0..n-1, each with a
// domain of candidate values and a set of binary constraints relating
// pairs of variables.
type Problem struct {
	Model   *model.Problem
	Lessons []*model.Lesson
	Domains [][]model.Value
	Binary  []constraint.Pairwise

	// constraintsOf[v] holds the indices into Binary that mention
	// variable v, precomputed once so MinConflicts and Backtracking
	// never rescan the full constraint list per step.
	constraintsOf [][]int
}

// NewProblem builds a csp.Problem from MRV-ordered variable domains and
// the binary constraints generated for that same variable order. lessons
// and domains must be parallel slices indexed by variable.
func NewProblem(m *model.Problem, lessons []*model.Lesson, domains [][]model.Value, binary []constraint.Pairwise) *Problem {
	constraintsOf := make([][]int, len(lessons))
	for ci, c := range binary {
		constraintsOf[c.A] = append(constraintsOf[c.A], ci)
		constraintsOf[c.B] = append(constraintsOf[c.B], ci)
	}
	return &Problem{
		Model:         m,
		Lessons:       lessons,
		Domains:       domains,
		Binary:        binary,
		constraintsOf: constraintsOf,
	}
}

// NumVars is the number of lesson variables in the problem.
func (p *Problem) NumVars() int {
	return len(p.Lessons)
}

// neighborsOf returns, for variable v, the distinct variable indices it
// shares at least one binary constraint with.
func (p *Problem) neighborsOf(v int) []int {
	seen := make(map[int]bool)
	var others []int
	for _, ci := range p.constraintsOf[v] {
		c := p.Binary[ci]
		o := c.A
		if o == v {
			o = c.B
		}
		if !seen[o] {
			seen[o] = true
			others = append(others, o)
		}
	}
	return others
}

// pairConsistent reports whether assigning candidate to v and
// otherValue to other satisfies every constraint directly between them.
func (p *Problem) pairConsistent(v int, candidate model.Value, other int, otherValue model.Value) bool {
	for _, ci := range p.constraintsOf[v] {
		c := p.Binary[ci]
		o := c.A
		if o == v {
			o = c.B
		}
		if o != other {
			continue
		}
		var va, vb model.Value
		if c.A == v {
			va, vb = candidate, otherValue
		} else {
			va, vb = otherValue, candidate
		}
		if !c.Holds(p.Model, p.Lessons[c.A], p.Lessons[c.B], va, vb) {
			return false
		}
	}
	return true
}

// countConflicts counts how many binary constraints touching v would be
// violated if v were assigned candidate, given the current values of its
// neighbors. When assigned is non-nil, neighbors with assigned[o]==false
// are skipped — used while building the MinConflicts initial assignment,
// where only already-placed variables count (spec §4.D.1).
func (p *Problem) countConflicts(v int, candidate model.Value, values []model.Value, assigned []bool) int {
	count := 0
	for _, ci := range p.constraintsOf[v] {
		c := p.Binary[ci]
		other := c.A
		if other == v {
			other = c.B
		}
		if assigned != nil && !assigned[other] {
			continue
		}
		var va, vb model.Value
		if c.A == v {
			va, vb = candidate, values[other]
		} else {
			va, vb = values[other], candidate
		}
		if !c.Holds(p.Model, p.Lessons[c.A], p.Lessons[c.B], va, vb) {
			count++
		}
	}
	return count
}

// ViolationCounts tallies, per constraint kind, how many binary
// constraints a complete assignment violates. Used for diagnostics when
// no feasible assignment was found.
func (p *Problem) ViolationCounts(values []model.Value) map[constraint.Kind]int {
	counts := make(map[constraint.Kind]int)
	for _, c := range p.Binary {
		if !c.Holds(p.Model, p.Lessons[c.A], p.Lessons[c.B], values[c.A], values[c.B]) {
			counts[c.Kind]++
		}
	}
	return counts
}

// conflictedVariables returns the variables that participate in at
// least one currently-violated binary constraint.
func (p *Problem) conflictedVariables(values []model.Value) []int {
	bad := make(map[int]bool)
	for _, c := range p.Binary {
		if !c.Holds(p.Model, p.Lessons[c.A], p.Lessons[c.B], values[c.A], values[c.B]) {
			bad[c.A] = true
			bad[c.B] = true
		}
	}
	out := make([]int, 0, len(bad))
	for v := range bad {
		out = append(out, v)
	}
	return out
}
