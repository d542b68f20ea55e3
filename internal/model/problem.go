package model

import "sort"

// Value is a packed (timeslot, room) pair: (t-1)*len(Rooms) + room index.
// Packing keeps domains as sorted slices of small integers per the
// "domain representation" design note — set operations during node
// consistency are then linear scans instead of pair-of-struct churn.
type Value int

// Problem is the immutable, read-only view of a timetabling instance
// shared by every other component. It is built once by Build and never
// mutated during a solve.
type Problem struct {
	Classes    []*Class
	Courses    []*Course
	Lecturers  []*Lecturer
	Rooms      []*Room
	Lessons    []*Lesson

	Days           int
	SlotsPerDay    int
	Timeslots      int // Days * SlotsPerDay
	ClassDailyCap  int // K_day
	OnlineDailyCap int // O_day

	roomIndex map[*Room]int
}

// Default constants from spec §3.
const (
	DefaultDays             = 5
	DefaultSlotsPerDay      = 4
	DefaultLessonsPerUC     = 2
	DefaultClassDailyCap    = 3
	DefaultOnlineDailyCap   = 3
	DefaultPhysicalRoomPool = 8
)

// Day returns the 1-based day containing timeslot t: ceil(t/S).
func (p *Problem) Day(t int) int {
	return (t-1)/p.SlotsPerDay + 1
}

// SlotOfDay returns the 1-based slot-of-day for timeslot t.
func (p *Problem) SlotOfDay(t int) int {
	return (t-1)%p.SlotsPerDay + 1
}

// Encode packs a (timeslot, room) pair into a single comparable Value.
func (p *Problem) Encode(t int, r *Room) Value {
	return Value((t-1)*len(p.Rooms) + p.roomIndex[r])
}

// Decode unpacks a Value back into its (timeslot, room) pair.
func (p *Problem) Decode(v Value) (int, *Room) {
	n := len(p.Rooms)
	t := int(v)/n + 1
	r := p.Rooms[int(v)%n]
	return t, r
}

// RoomByName returns the canonical *Room for name, or nil if no room in
// the problem carries that name. Callers that need to build a
// domainbuild.Options.ClassPreferredRooms map must resolve names through
// this method rather than constructing their own *Room values, since
// domain construction compares rooms by pointer identity.
func (p *Problem) RoomByName(name string) *Room {
	for _, r := range p.Rooms {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// buildRoomIndex assigns each room (Online first) a stable index used by
// Encode/Decode. Called once from Build.
func (p *Problem) buildRoomIndex() {
	p.roomIndex = make(map[*Room]int, len(p.Rooms))
	for i, r := range p.Rooms {
		p.roomIndex[r] = i
	}
}

// sortLessonsStable orders lessons by (class, course, occurrence) so
// that callers downstream (domain builder, backtracking) see a
// deterministic base ordering before MRV resorting is applied.
func sortLessonsStable(lessons []*Lesson) {
	sort.Slice(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if a.Course.Class.Name != b.Course.Class.Name {
			return a.Course.Class.Name < b.Course.Class.Name
		}
		if a.Course.Name != b.Course.Name {
			return a.Course.Name < b.Course.Name
		}
		return a.Occurrence < b.Occurrence
	})
}
