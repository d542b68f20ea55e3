package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/unitimetable/internal/model"
)

func capProblem(t *testing.T) *model.Problem {
	t.Helper()
	raw := &model.RawDataset{
		ClassCourses: map[string][]string{
			"c1": {"UC1", "UC2", "UC3", "UC4"},
		},
		LecturerCourses: map[string][]string{
			"alice": {"UC1", "UC2", "UC3", "UC4"},
		},
		Forbidden: map[string][]int{},
		RequiredRoom: map[string]string{
			"UC1": "r1", "UC2": "r1", "UC3": "r1", "UC4": "r1",
		},
		OnlineCount: map[string]int{},
	}
	p, err := model.Build(raw, model.BuildOptions{ClassDailyCap: 3})
	require.NoError(t, err)
	return p
}

func TestCheckGlobalFlagsClassDailyCapViolation(t *testing.T) {
	p := capProblem(t)
	require.Len(t, p.Lessons, 8) // 4 courses x 2 lessons

	room := p.RoomByName("r1")
	values := make([]model.Value, len(p.Lessons))
	// pack 4 lessons onto day 1's four slots to exceed the cap of 3.
	for i := 0; i < 4 && i < p.SlotsPerDay; i++ {
		values[i] = p.Encode(i+1, room)
	}
	for i := 4; i < len(p.Lessons); i++ {
		values[i] = p.Encode(p.SlotsPerDay+1+(i%p.SlotsPerDay), room)
	}

	violations := CheckGlobal(p, p.Lessons, values)
	var found bool
	for _, v := range violations {
		if v.Family == "ClassDailyCap" {
			found = true
		}
	}
	assert.True(t, found, "expected a ClassDailyCap violation, got %v", violations)
}

func TestCheckGlobalAllowsAtOrUnderCap(t *testing.T) {
	p := capProblem(t)
	room := p.RoomByName("r1")
	values := make([]model.Value, len(p.Lessons))
	// spread 8 lessons two per day across four days, under the cap of 3.
	for i := range p.Lessons {
		day := i % 4
		t := day*p.SlotsPerDay + 1
		values[i] = p.Encode(t, room)
	}

	violations := CheckGlobal(p, p.Lessons, values)
	for _, v := range violations {
		assert.NotEqual(t, "ClassDailyCap", v.Family)
	}
}

func TestCheckGlobalFlagsOnlineDailyCapViolation(t *testing.T) {
	raw := &model.RawDataset{
		ClassCourses: map[string][]string{
			"c1": {"UC1", "UC2", "UC3", "UC4"},
		},
		LecturerCourses: map[string][]string{
			"alice": {"UC1", "UC2", "UC3", "UC4"},
		},
		Forbidden:    map[string][]int{},
		RequiredRoom: map[string]string{},
		OnlineCount:  map[string]int{"UC1": 2, "UC2": 2, "UC3": 2, "UC4": 2},
	}
	p, err := model.Build(raw, model.BuildOptions{OnlineDailyCap: 3})
	require.NoError(t, err)
	require.Len(t, p.Lessons, 8)

	values := make([]model.Value, len(p.Lessons))
	for i := 0; i < 4; i++ {
		values[i] = p.Encode(1, model.Online)
	}
	for i := 4; i < len(p.Lessons); i++ {
		values[i] = p.Encode(p.SlotsPerDay+1, model.Online)
	}

	violations := CheckGlobal(p, p.Lessons, values)
	var found bool
	for _, v := range violations {
		if v.Family == "OnlineDailyCap" {
			found = true
		}
	}
	assert.True(t, found, "expected an OnlineDailyCap violation, got %v", violations)
}
