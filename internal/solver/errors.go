package solver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/russross/unitimetable/internal/constraint"
	"github.com/russross/unitimetable/internal/csp"
	"github.com/russross/unitimetable/internal/model"
)

// ErrUnsatisfiable is the sentinel Phase 1 wraps when neither
// MinConflicts nor Backtracking produces a feasible assignment. Check
// for it with errors.Is; use errors.As(&UnsatisfiableError{}) to recover
// the per-constraint-family violation counts.
var ErrUnsatisfiable = errors.New("solver: no feasible assignment exists for this dataset")

// UnsatisfiableError reports, for diagnostics, how badly each binary
// constraint family was violated in a representative assignment, and
// any global constraint violations found along the way — spec §7's
// "report which constraint families were most violated".
type UnsatisfiableError struct {
	BinaryCounts map[string]int
	Global       []constraint.Violation
}

func (e *UnsatisfiableError) Error() string {
	kinds := make([]string, 0, len(e.BinaryCounts))
	for k := range e.BinaryCounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	msg := ErrUnsatisfiable.Error()
	for _, k := range kinds {
		msg += fmt.Sprintf("; %s: %d violation(s) in seed assignment", k, e.BinaryCounts[k])
	}
	for _, v := range e.Global {
		msg += fmt.Sprintf("; %s: %s", v.Family, v.Detail)
	}
	return msg
}

func (e *UnsatisfiableError) Unwrap() error {
	return ErrUnsatisfiable
}

func newUnsatisfiableError(cp *csp.Problem, p *model.Problem, lessons []*model.Lesson, seed []model.Value) *UnsatisfiableError {
	counts := cp.ViolationCounts(seed)
	named := make(map[string]int, len(counts))
	for kind, count := range counts {
		named[kind.String()] = count
	}
	return &UnsatisfiableError{
		BinaryCounts: named,
		Global:       constraint.CheckGlobal(p, lessons, seed),
	}
}
