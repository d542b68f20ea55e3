package model

import (
	"fmt"
	"sort"
)

// RawDataset is the structured input record defined by spec §6.1: five
// sections keyed by opaque identifier strings. It is what internal/loader
// produces from the text format; Build turns it into a Problem.
type RawDataset struct {
	ClassCourses    map[string][]string // cc:  class -> course ids
	LecturerCourses map[string][]string // dsd: lecturer -> course ids
	Forbidden       map[string][]int    // tr:  lecturer -> forbidden timeslots
	RequiredRoom    map[string]string   // rr:  course id -> room name
	OnlineCount     map[string]int      // oc:  course id -> 0|1|2
}

// BuildOptions configures the structural constants of a Problem. Zero
// values are replaced with the spec §3 defaults.
type BuildOptions struct {
	Days           int
	SlotsPerDay    int
	LessonsPerUC   int
	ClassDailyCap  int
	OnlineDailyCap int

	// PhysicalRoomPool is the number of generic physical rooms available
	// to courses that have no requiredRoom (spec §4.A's "Rooms" set is
	// not limited to the rooms named by rr). Zero uses
	// DefaultPhysicalRoomPool; a negative value means "no generic pool",
	// leaving only the rooms named by rr.
	PhysicalRoomPool int
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Days == 0 {
		o.Days = DefaultDays
	}
	if o.SlotsPerDay == 0 {
		o.SlotsPerDay = DefaultSlotsPerDay
	}
	if o.LessonsPerUC == 0 {
		o.LessonsPerUC = DefaultLessonsPerUC
	}
	if o.ClassDailyCap == 0 {
		o.ClassDailyCap = DefaultClassDailyCap
	}
	if o.OnlineDailyCap == 0 {
		o.OnlineDailyCap = DefaultOnlineDailyCap
	}
	if o.PhysicalRoomPool == 0 {
		o.PhysicalRoomPool = DefaultPhysicalRoomPool
	}
	return o
}

// Build assembles a Problem from a RawDataset, computing the derived
// maps (classOf, lecturerOf, requiredRoom, onlineCount) and validating
// the invariants of spec §3 and the boundary behaviors of spec §8.
func Build(raw *RawDataset, opts BuildOptions) (*Problem, error) {
	opts = opts.withDefaults()
	timeslots := opts.Days * opts.SlotsPerDay

	// courseId -> lecturer name, from dsd. A duplicate assignment of the
	// same course id to two different lecturers is a validation error:
	// invariant 2 requires each course have exactly one lecturer.
	lecturerOfID := make(map[string]string)
	for lecturerName, courseIDs := range raw.LecturerCourses {
		for _, id := range courseIDs {
			if existing, ok := lecturerOfID[id]; ok && existing != lecturerName {
				return nil, &ErrInvalidInput{Identifier: id,
					Reason: fmt.Sprintf("assigned to both lecturer %q and %q", existing, lecturerName)}
			}
			lecturerOfID[id] = lecturerName
		}
	}

	// collect physical room names: every room referenced by rr, plus a
	// generic pool (room1..roomN) so courses with no requiredRoom still
	// have somewhere physical to be placed (spec §4.A's Rooms set is not
	// limited to rr's names).
	roomNameSet := make(map[string]bool)
	for _, roomName := range raw.RequiredRoom {
		roomNameSet[roomName] = true
	}
	for i := 1; i <= opts.PhysicalRoomPool; i++ {
		roomNameSet[fmt.Sprintf("room%d", i)] = true
	}
	var roomNames []string
	for name := range roomNameSet {
		roomNames = append(roomNames, name)
	}
	sort.Strings(roomNames)

	rooms := make([]*Room, 0, len(roomNames)+1)
	rooms = append(rooms, Online)
	roomByName := make(map[string]*Room, len(roomNames))
	for _, name := range roomNames {
		r := &Room{Name: name}
		rooms = append(rooms, r)
		roomByName[name] = r
	}

	// build lecturers, keyed by name, with availability computed as the
	// complement of the forbidden set.
	lecturerByName := make(map[string]*Lecturer)
	lecturerNameOf := func(name string) *Lecturer {
		l, ok := lecturerByName[name]
		if !ok {
			l = &Lecturer{Name: name, Available: make(map[int]bool, timeslots)}
			for t := 1; t <= timeslots; t++ {
				l.Available[t] = true
			}
			lecturerByName[name] = l
		}
		return l
	}
	for name := range raw.LecturerCourses {
		lecturerNameOf(name)
	}
	for lecturerName, forbidden := range raw.Forbidden {
		l := lecturerNameOf(lecturerName)
		for _, t := range forbidden {
			if t >= 1 && t <= timeslots {
				l.Available[t] = false
			}
		}
	}

	// build classes and courses; a (class, course id) pair is always a
	// distinct internal Course, even if the same id is shared by several
	// classes.
	var classNames []string
	for name := range raw.ClassCourses {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	var classes []*Class
	var courses []*Course
	for _, className := range classNames {
		class := &Class{Name: className}
		for _, courseID := range raw.ClassCourses[className] {
			lecturerName, ok := lecturerOfID[courseID]
			if !ok {
				return nil, &ErrInvalidInput{Identifier: courseID, Reason: "no lecturer assigned (dsd)"}
			}
			lecturer := lecturerNameOf(lecturerName)

			onlineCount := raw.OnlineCount[courseID]
			if onlineCount > opts.LessonsPerUC {
				return nil, &ErrInvalidInput{Identifier: courseID,
					Reason: fmt.Sprintf("online count %d exceeds lesson count %d", onlineCount, opts.LessonsPerUC)}
			}

			var requiredRoom *Room
			if roomName, ok := raw.RequiredRoom[courseID]; ok {
				requiredRoom = roomByName[roomName]
				if onlineCount == opts.LessonsPerUC {
					return nil, &ErrInvalidInput{Identifier: courseID,
						Reason: "required room set but all lessons are online"}
				}
			}

			course := &Course{
				Name:         courseID,
				Class:        class,
				Lecturer:     lecturer,
				RequiredRoom: requiredRoom,
				OnlineCount:  onlineCount,
				Lessons:      opts.LessonsPerUC,
			}
			class.Courses = append(class.Courses, course)
			lecturer.Courses = append(lecturer.Courses, course)
			courses = append(courses, course)
		}
		classes = append(classes, class)
	}

	var lecturers []*Lecturer
	for _, name := range sortedKeys(lecturerByName) {
		lecturers = append(lecturers, lecturerByName[name])
	}

	var lessons []*Lesson
	for _, course := range courses {
		for occ := 1; occ <= course.Lessons; occ++ {
			lessons = append(lessons, &Lesson{Course: course, Occurrence: occ})
		}
	}
	sortLessonsStable(lessons)

	p := &Problem{
		Classes:        classes,
		Courses:        courses,
		Lecturers:      lecturers,
		Rooms:          rooms,
		Lessons:        lessons,
		Days:           opts.Days,
		SlotsPerDay:    opts.SlotsPerDay,
		Timeslots:      timeslots,
		ClassDailyCap:  opts.ClassDailyCap,
		OnlineDailyCap: opts.OnlineDailyCap,
	}
	p.buildRoomIndex()
	return p, nil
}

func sortedKeys(m map[string]*Lecturer) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
