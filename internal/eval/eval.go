// Package eval computes the integer quality score of spec §4.F for a
// complete, feasible assignment. Scoring never mutates its inputs and is
// deterministic: the same assignment always yields the same score (P6).
package eval

import (
	"sort"

	"github.com/russross/unitimetable/internal/model"
)

// Result breaks the total score down by criterion, useful for tests and
// for explaining a schedule's score to an operator.
type Result struct {
	Score                int
	TemporalDistribution int
	WeeklyDistribution   int
	RoomMinimization     int
	Consecutivity        int
}

// Score evaluates a complete assignment: values[i] is the (timeslot,
// room) pair assigned to lessons[i].
func Score(p *model.Problem, lessons []*model.Lesson, values []model.Value) Result {
	courseDays := make(map[*model.Course]map[int]bool)
	classDays := make(map[*model.Class]map[int]bool)
	classRooms := make(map[*model.Class]map[*model.Room]bool)
	classDaySlots := make(map[*model.Class]map[int][]int)

	for i, lesson := range lessons {
		t, room := p.Decode(values[i])
		day := p.Day(t)
		slot := p.SlotOfDay(t)

		course := lesson.Course
		class := course.Class

		addDay(courseDays, course, day)
		addDay(classDays, class, day)

		if room != model.Online {
			if classRooms[class] == nil {
				classRooms[class] = make(map[*model.Room]bool)
			}
			classRooms[class][room] = true
		}

		if classDaySlots[class] == nil {
			classDaySlots[class] = make(map[int][]int)
		}
		classDaySlots[class][day] = append(classDaySlots[class][day], slot)
	}

	var result Result

	for _, course := range p.Courses {
		if len(courseDays[course]) == course.Lessons {
			result.TemporalDistribution += 10
		}
	}

	for _, class := range p.Classes {
		if len(classDays[class]) >= 4 {
			result.WeeklyDistribution += 20
		}
		result.RoomMinimization += -2 * len(classRooms[class])
	}

	for _, class := range p.Classes {
		for _, slots := range classDaySlots[class] {
			sorted := append([]int(nil), slots...)
			sort.Ints(sorted)
			for i := 1; i < len(sorted); i++ {
				if sorted[i]-sorted[i-1] == 1 {
					result.Consecutivity += 5
				}
			}
		}
	}

	result.Score = result.TemporalDistribution + result.WeeklyDistribution +
		result.RoomMinimization + result.Consecutivity
	return result
}

func addDay[K comparable](m map[K]map[int]bool, key K, day int) {
	if m[key] == nil {
		m[key] = make(map[int]bool)
	}
	m[key][day] = true
}
