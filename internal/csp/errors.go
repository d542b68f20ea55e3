package csp

import "errors"

// ErrExhausted is returned by MinConflicts when it reaches its iteration
// bound without finding a feasible assignment. Per spec §7 this is
// recovered internally by the solver pipeline, which falls back to
// Backtracking — it is never meant to be user-visible.
var ErrExhausted = errors.New("min-conflicts: iteration bound reached without a feasible assignment")

// ErrUnsatisfiable names the outcome of a Backtrack call that reports
// ok == false: exhaustive search found no assignment satisfying the
// binary constraints. Backtrack signals this through its boolean result
// and does not return this value itself.
var ErrUnsatisfiable = errors.New("backtracking: no feasible assignment exists")
