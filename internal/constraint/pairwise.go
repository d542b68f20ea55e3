// Package constraint implements the hard constraints of spec §4.C as
// predicates over one or two lesson assignments, decomposing the
// n-ary "all lessons occupy distinct slots" rule into the O(n²) set of
// binary constraints the generic CSP engine propagates.
package constraint

import "github.com/russross/unitimetable/internal/model"

// Kind tags which binary predicate a Pairwise constraint checks.
type Kind int

const (
	// RoomUnique rejects two physical lessons sharing (timeslot, room).
	// Online rooms are exempt — several classes may be online at once.
	RoomUnique Kind = iota
	// LecturerConflict rejects two lessons of the same lecturer sharing a timeslot.
	LecturerConflict
	// ClassConflict rejects two lessons of the same class sharing a timeslot.
	ClassConflict
	// OnlineSameDay rejects two online lessons of the same course on different days.
	OnlineSameDay
)

func (k Kind) String() string {
	switch k {
	case RoomUnique:
		return "RoomUnique"
	case LecturerConflict:
		return "LecturerConflict"
	case ClassConflict:
		return "ClassConflict"
	case OnlineSameDay:
		return "OnlineSameDay"
	default:
		return "unknown"
	}
}

// Pairwise is a binary constraint between two lesson variables,
// identified by their index into the variable list the engine is
// searching over.
type Pairwise struct {
	Kind Kind
	A, B int
}

// Holds evaluates the constraint given the two lessons it refers to and
// the values currently assigned to them. It returns false exactly when
// the pair violates the constraint.
func (c Pairwise) Holds(p *model.Problem, la, lb *model.Lesson, va, vb model.Value) bool {
	ta, ra := p.Decode(va)
	tb, rb := p.Decode(vb)

	switch c.Kind {
	case RoomUnique:
		if ra == model.Online || rb == model.Online {
			return true
		}
		return !(ta == tb && ra == rb)

	case LecturerConflict:
		if la.Course.Lecturer != lb.Course.Lecturer {
			return true
		}
		return ta != tb

	case ClassConflict:
		if la.Course.Class != lb.Course.Class {
			return true
		}
		return ta != tb

	case OnlineSameDay:
		if la.Course != lb.Course || !la.IsOnline() || !lb.IsOnline() {
			return true
		}
		return p.Day(ta) == p.Day(tb)

	default:
		return true
	}
}

// BuildAll generates the binary constraints relevant to a list of
// lesson variables in the order given (variable indices follow that
// order). Only pairs that could possibly conflict get a constraint:
// RoomUnique applies to every pair (any two physical lessons could
// collide on room+time); the others are scoped to pairs that share a
// lecturer, class, or course.
func BuildAll(lessons []*model.Lesson) []Pairwise {
	var out []Pairwise
	n := len(lessons)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			li, lj := lessons[i], lessons[j]
			out = append(out, Pairwise{Kind: RoomUnique, A: i, B: j})
			if li.Course.Lecturer == lj.Course.Lecturer {
				out = append(out, Pairwise{Kind: LecturerConflict, A: i, B: j})
			}
			if li.Course.Class == lj.Course.Class {
				out = append(out, Pairwise{Kind: ClassConflict, A: i, B: j})
			}
			if li.Course == lj.Course && li.IsOnline() && lj.IsOnline() {
				out = append(out, Pairwise{Kind: OnlineSameDay, A: i, B: j})
			}
		}
	}
	return out
}
