package assignment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/russross/unitimetable/internal/model"
)

func buildTestProblem(t *testing.T) *model.Problem {
	t.Helper()
	raw := &model.RawDataset{
		ClassCourses: map[string][]string{
			"t01": {"UC1"},
		},
		LecturerCourses: map[string][]string{
			"L1": {"UC1"},
		},
	}
	p, err := model.Build(raw, model.BuildOptions{})
	require.NoError(t, err)
	return p
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	p := buildTestProblem(t)
	lessons := p.Lessons
	values := make([]model.Value, len(lessons))
	for i, lesson := range lessons {
		_ = lesson
		values[i] = p.Encode(i+1, p.Rooms[0])
	}

	record := Build(p, lessons, values)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, record))

	gotLessons, gotValues, err := Read(&buf, p)
	require.NoError(t, err)
	require.Len(t, gotLessons, len(lessons))
	require.Len(t, gotValues, len(values))

	want := make(map[*model.Lesson]model.Value, len(lessons))
	for i, lesson := range lessons {
		want[lesson] = values[i]
	}
	for i, lesson := range gotLessons {
		require.Equal(t, want[lesson], gotValues[i])
	}
}

func TestReadRejectsUnknownRoom(t *testing.T) {
	p := buildTestProblem(t)
	buf := bytes.NewBufferString(`{"t01": [{"course": "UC1", "occurrence": 1, "room": "Nonexistent", "timeslot": 1}]}`)
	_, _, err := Read(buf, p)
	require.Error(t, err)
}
