package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/unitimetable/internal/model"
)

func twoCourseProblem(t *testing.T) *model.Problem {
	t.Helper()
	raw := &model.RawDataset{
		ClassCourses: map[string][]string{
			"c1": {"UC1", "UC2"},
		},
		LecturerCourses: map[string][]string{
			"alice": {"UC1", "UC2"},
		},
		Forbidden: map[string][]int{},
		RequiredRoom: map[string]string{
			"UC1": "r1",
			"UC2": "r1",
		},
		OnlineCount: map[string]int{},
	}
	p, err := model.Build(raw, model.BuildOptions{})
	require.NoError(t, err)
	return p
}

func TestRoomUniqueRejectsSameRoomSameTime(t *testing.T) {
	p := twoCourseProblem(t)
	la, lb := p.Lessons[0], p.Lessons[1]
	room := p.RoomByName("r1")
	v := p.Encode(1, room)

	c := Pairwise{Kind: RoomUnique}
	assert.False(t, c.Holds(p, la, lb, v, v))
}

func TestRoomUniqueExemptsOnline(t *testing.T) {
	p := twoCourseProblem(t)
	la, lb := p.Lessons[0], p.Lessons[1]
	v := p.Encode(1, model.Online)

	c := Pairwise{Kind: RoomUnique}
	assert.True(t, c.Holds(p, la, lb, v, v))
}

func TestLecturerConflictRejectsSameLecturerSameTime(t *testing.T) {
	p := twoCourseProblem(t)
	la, lb := p.Lessons[0], p.Lessons[1]
	require.Equal(t, la.Course.Lecturer, lb.Course.Lecturer)

	room := p.RoomByName("r1")
	va := p.Encode(1, room)
	vb := p.Encode(1, room)

	c := Pairwise{Kind: LecturerConflict}
	assert.False(t, c.Holds(p, la, lb, va, vb))
}

func TestLecturerConflictAllowsDifferentTimes(t *testing.T) {
	p := twoCourseProblem(t)
	la, lb := p.Lessons[0], p.Lessons[1]
	room := p.RoomByName("r1")
	va := p.Encode(1, room)
	vb := p.Encode(2, room)

	c := Pairwise{Kind: LecturerConflict}
	assert.True(t, c.Holds(p, la, lb, va, vb))
}

func TestClassConflictRejectsSameClassSameTime(t *testing.T) {
	p := twoCourseProblem(t)
	la, lb := p.Lessons[0], p.Lessons[1]
	require.Equal(t, la.Course.Class, lb.Course.Class)

	room := p.RoomByName("r1")
	va := p.Encode(1, room)
	vb := p.Encode(1, room)

	c := Pairwise{Kind: ClassConflict}
	assert.False(t, c.Holds(p, la, lb, va, vb))
}

func TestOnlineSameDayRejectsDifferentDays(t *testing.T) {
	raw := &model.RawDataset{
		ClassCourses:    map[string][]string{"c1": {"UC1"}},
		LecturerCourses: map[string][]string{"alice": {"UC1"}},
		Forbidden:       map[string][]int{},
		RequiredRoom:    map[string]string{},
		OnlineCount:     map[string]int{"UC1": 2},
	}
	p, err := model.Build(raw, model.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, p.Lessons, 2)

	la, lb := p.Lessons[0], p.Lessons[1]
	require.True(t, la.IsOnline())
	require.True(t, lb.IsOnline())

	va := p.Encode(1, model.Online)              // day 1
	vb := p.Encode(p.SlotsPerDay+1, model.Online) // day 2

	c := Pairwise{Kind: OnlineSameDay}
	assert.False(t, c.Holds(p, la, lb, va, vb))

	vSameDay := p.Encode(2, model.Online)
	assert.True(t, c.Holds(p, la, lb, va, vSameDay))
}

func TestBuildAllScopesToSharedAttributes(t *testing.T) {
	p := twoCourseProblem(t)
	all := BuildAll(p.Lessons)

	var roomUnique, lecturerConflict, classConflict int
	for _, c := range all {
		switch c.Kind {
		case RoomUnique:
			roomUnique++
		case LecturerConflict:
			lecturerConflict++
		case ClassConflict:
			classConflict++
		}
	}

	// 4 lessons (2 courses x 2 occurrences) => C(4,2) = 6 pairs, all RoomUnique.
	assert.Equal(t, 6, roomUnique)
	// same lecturer and same class across both courses => all 6 pairs qualify.
	assert.Equal(t, 6, lecturerConflict)
	assert.Equal(t, 6, classConflict)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "RoomUnique", RoomUnique.String())
	assert.Equal(t, "LecturerConflict", LecturerConflict.String())
	assert.Equal(t, "ClassConflict", ClassConflict.String())
	assert.Equal(t, "OnlineSameDay", OnlineSameDay.String())
}
