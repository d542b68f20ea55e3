package constraint

import (
	"fmt"

	"github.com/russross/unitimetable/internal/model"
)

// Violation describes a single n-ary constraint breach found by
// CheckGlobal, for diagnostics (spec §7's "report which constraint
// families were most violated").
type Violation struct {
	Family string
	Detail string
}

// CheckGlobal validates the ClassDailyCap and OnlineDailyCap constraints
// of spec §4.C against a complete assignment. These are checked as
// global counts over the finished assignment rather than incrementally,
// per the latitude spec §4.C grants implementations.
func CheckGlobal(p *model.Problem, lessons []*model.Lesson, values []model.Value) []Violation {
	var violations []Violation

	classDay := make(map[*model.Class]map[int]int)
	onlineDay := make(map[int]int)

	for i, lesson := range lessons {
		t, room := p.Decode(values[i])
		day := p.Day(t)

		class := lesson.Course.Class
		if classDay[class] == nil {
			classDay[class] = make(map[int]int)
		}
		classDay[class][day]++

		if room == model.Online {
			onlineDay[day]++
		}
	}

	for class, days := range classDay {
		for day, count := range days {
			if count > p.ClassDailyCap {
				violations = append(violations, Violation{
					Family: "ClassDailyCap",
					Detail: fmt.Sprintf("class %s has %d lessons on day %d (cap %d)", class.Name, count, day, p.ClassDailyCap),
				})
			}
		}
	}

	for day, count := range onlineDay {
		if count > p.OnlineDailyCap {
			violations = append(violations, Violation{
				Family: "OnlineDailyCap",
				Detail: fmt.Sprintf("day %d has %d online lessons (cap %d)", day, count, p.OnlineDailyCap),
			})
		}
	}

	return violations
}
