// Package assignment reads and writes the §6.2 assignment record: a
// mapping from lesson variable to (timeslot, room), grouped by class for
// readability. Adapted from the teacher's json.go, generalized from
// per-instructor course lists to per-class lesson occurrences.
package assignment

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/russross/unitimetable/internal/model"
)

// Entry is one lesson's placement: its course id, occurrence number,
// assigned room name ("Online" for the distinguished online room), and
// assigned timeslot.
type Entry struct {
	Course     string `json:"course"`
	Occurrence int    `json:"occurrence"`
	Room       string `json:"room"`
	Timeslot   int    `json:"timeslot"`
}

// Record is the §6.2 assignment record: class name -> its lessons'
// placements, in lesson order.
type Record map[string][]Entry

// Build turns a complete assignment (values[i] assigned to lessons[i])
// into a Record.
func Build(p *model.Problem, lessons []*model.Lesson, values []model.Value) Record {
	record := make(Record)
	for i, lesson := range lessons {
		t, room := p.Decode(values[i])
		className := lesson.Course.Class.Name
		record[className] = append(record[className], Entry{
			Course:     lesson.Course.Name,
			Occurrence: lesson.Occurrence,
			Room:       room.Name,
			Timeslot:   t,
		})
	}
	return record
}

// Write serializes a Record as indented JSON, matching the teacher's
// convention of a human-readable, diffable output file.
func Write(w io.Writer, record Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("write assignment record: %w", err)
	}
	return nil
}

// Read parses a Record previously written by Write and resolves it
// back against p, returning the same (lessons, values) shape Build
// consumes, for round-tripping a previously computed schedule (the
// `score` CLI subcommand's input).
func Read(r io.Reader, p *model.Problem) ([]*model.Lesson, []model.Value, error) {
	var record Record
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&record); err != nil {
		return nil, nil, fmt.Errorf("read assignment record: %w", err)
	}

	roomByName := make(map[string]*model.Room, len(p.Rooms))
	for _, room := range p.Rooms {
		roomByName[room.Name] = room
	}

	lessonByKey := make(map[string]*model.Lesson, len(p.Lessons))
	for _, lesson := range p.Lessons {
		lessonByKey[lessonKey(lesson.Course.Class.Name, lesson.Course.Name, lesson.Occurrence)] = lesson
	}

	lessons := make([]*model.Lesson, 0, len(p.Lessons))
	values := make([]model.Value, 0, len(p.Lessons))
	for className, entries := range record {
		for _, e := range entries {
			lesson, ok := lessonByKey[lessonKey(className, e.Course, e.Occurrence)]
			if !ok {
				return nil, nil, fmt.Errorf("assignment record: unknown lesson %s/%s#%d", className, e.Course, e.Occurrence)
			}
			room, ok := roomByName[e.Room]
			if !ok {
				return nil, nil, fmt.Errorf("assignment record: unknown room %q for %s/%s#%d", e.Room, className, e.Course, e.Occurrence)
			}
			lessons = append(lessons, lesson)
			values = append(values, p.Encode(e.Timeslot, room))
		}
	}

	if len(lessons) != len(p.Lessons) {
		return nil, nil, fmt.Errorf("assignment record: expected %d lessons, found %d", len(p.Lessons), len(lessons))
	}
	return lessons, values, nil
}

func lessonKey(class, course string, occurrence int) string {
	var b strings.Builder
	b.WriteString(class)
	b.WriteByte('/')
	b.WriteString(course)
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(occurrence))
	return b.String()
}
