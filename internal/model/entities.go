// Package model holds the in-memory entities of the timetabling problem:
// classes, courses, lecturers, rooms, timeslots, and the lesson variables
// derived from them. Entities are built once by Build and are read-only
// for the remainder of a solve.
package model

import "fmt"

// Class is a cohort of students taking a fixed set of courses together.
type Class struct {
	Name    string
	Courses []*Course
}

// Lecturer teaches one or more courses and has a set of timeslots they
// are available to teach in. Available is the complement of the
// forbidden-timeslot input (§6.1 tr section).
type Lecturer struct {
	Name      string
	Courses   []*Course
	Available map[int]bool
}

// IsAvailable reports whether the lecturer can teach at timeslot t.
func (l *Lecturer) IsAvailable(t int) bool {
	return l.Available[t]
}

// Room is a physical teaching space, or the distinguished Online room.
type Room struct {
	Name string
}

// Online is the distinguished room every problem has, used for lessons
// delivered remotely.
var Online = &Room{Name: "Online"}

// Course is a subject taught to exactly one class by exactly one
// lecturer, consisting of Lessons lesson instances. OnlineCount of those
// instances (the lowest-numbered occurrences) must be delivered online.
type Course struct {
	Name         string
	Class        *Class
	Lecturer     *Lecturer
	RequiredRoom *Room // nil if no required room
	OnlineCount  int   // 0, 1, or 2
	Lessons      int   // L_u, defaults to 2
}

// Lesson is the atomic scheduling unit: one occurrence of a course.
type Lesson struct {
	Course     *Course
	Occurrence int // 1..Course.Lessons
}

// IsOnline reports whether this occurrence must be placed in the Online
// room, per the course's OnlineCount.
func (l *Lesson) IsOnline() bool {
	return l.Occurrence <= l.Course.OnlineCount
}

// String gives a stable human-readable identity for error messages and
// logs, e.g. "t01/UC1#2".
func (l *Lesson) String() string {
	return fmt.Sprintf("%s/%s#%d", l.Course.Class.Name, l.Course.Name, l.Occurrence)
}
