// Package domainbuild implements the per-variable node-consistency
// filter of spec §4.B: for each lesson, reduce {1..T} × Rooms down to
// the candidate (timeslot, room) pairs consistent with that lesson's
// unary restrictions, and order the resulting variables by MRV
// (fail-first).
package domainbuild

import (
	"sort"

	"github.com/russross/unitimetable/internal/model"
)

// Options carries the optional class-preferred-rooms pruning knob of
// spec §4.B step 5 and §9: a hard restriction on the physical rooms a
// class's lessons may use, despite its name suggesting a preference.
type Options struct {
	ClassPreferredRooms map[string][]*model.Room // class name -> allowed physical rooms
}

// VarDomain pairs a lesson variable with its node-consistent domain,
// sorted ascending. Domain is empty only when the lesson is infeasible.
type VarDomain struct {
	Lesson *model.Lesson
	Domain []model.Value
}

// Build computes the node-consistent domain for every lesson in p, then
// orders the result by MRV: ascending |domain|, ties broken by
// (class, course, occurrence) — the same order model.Build already
// produced p.Lessons in, so a stable sort preserves it.
func Build(p *model.Problem, opts Options) ([]VarDomain, error) {
	out := make([]VarDomain, len(p.Lessons))
	for i, lesson := range p.Lessons {
		domain := buildOne(p, lesson, opts)
		if len(domain) == 0 {
			return nil, &model.ErrEmptyDomain{Lesson: lesson, Reason: emptyReason(p, lesson, opts)}
		}
		out[i] = VarDomain{Lesson: lesson, Domain: domain}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Domain) < len(out[j].Domain)
	})
	return out, nil
}

func buildOne(p *model.Problem, lesson *model.Lesson, opts Options) []model.Value {
	course := lesson.Course
	lecturer := course.Lecturer
	online := lesson.IsOnline()

	var preferred []*model.Room
	if opts.ClassPreferredRooms != nil {
		preferred = opts.ClassPreferredRooms[course.Class.Name]
	}

	var domain []model.Value
	for t := 1; t <= p.Timeslots; t++ {
		if !lecturer.IsAvailable(t) {
			continue
		}
		for _, room := range p.Rooms {
			isOnline := room == model.Online
			if online != isOnline {
				continue
			}
			if !online {
				if course.RequiredRoom != nil && room != course.RequiredRoom {
					continue
				}
				if preferred != nil && !containsRoom(preferred, room) {
					continue
				}
			}
			domain = append(domain, p.Encode(t, room))
		}
	}
	return domain
}

func containsRoom(rooms []*model.Room, target *model.Room) bool {
	for _, r := range rooms {
		if r == target {
			return true
		}
	}
	return false
}

func emptyReason(p *model.Problem, lesson *model.Lesson, opts Options) string {
	course := lesson.Course
	anyAvailable := false
	for t := 1; t <= p.Timeslots; t++ {
		if course.Lecturer.IsAvailable(t) {
			anyAvailable = true
			break
		}
	}
	switch {
	case !anyAvailable:
		return "lecturer " + course.Lecturer.Name + " has no available timeslots"
	case course.RequiredRoom != nil && lesson.IsOnline():
		return "required room conflicts with online obligation"
	case opts.ClassPreferredRooms != nil && len(opts.ClassPreferredRooms[course.Class.Name]) == 0 && !lesson.IsOnline():
		return "class " + course.Class.Name + " has an empty preferred-room list"
	default:
		return "no (timeslot, room) pair satisfies the lecturer availability and room restrictions"
	}
}
