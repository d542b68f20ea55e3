// Package loader reads the dataset text format described in spec §6.1
// into a model.RawDataset. It is deliberately thin — cross-field
// validation (duplicate course/lecturer assignment, online counts that
// exceed the lesson count, and so on) belongs to model.Build, which is
// where the derived maps are assembled and can be checked against one
// another.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/russross/unitimetable/internal/model"
)

// ParseError reports the file and line responsible for a malformed
// record, matching the teacher's "%q line %d: %v" wrapping style.
type ParseError struct {
	Filename string
	Line     int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q line %d: %v", e.Filename, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type section int

const (
	sectionNone section = iota
	sectionClassCourses
	sectionLecturerCourses
	sectionForbidden
	sectionRequiredRoom
	sectionOnlineCount
)

var sectionHeaders = map[string]section{
	"#cc":  sectionClassCourses,
	"#dsd": sectionLecturerCourses,
	"#tr":  sectionForbidden,
	"#rr":  sectionRequiredRoom,
	"#oc":  sectionOnlineCount,
}

// LoadFile opens filename and parses it as the spec §6.1 text format.
func LoadFile(filename string) (*model.RawDataset, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Parse(filename, fp)
}

// Parse reads the spec §6.1 text format from r. Lines beginning with "#"
// select the active section; unrecognized section headers are ignored
// (their records are skipped) as required by spec §6.1.
func Parse(filename string, r io.Reader) (*model.RawDataset, error) {
	ds := &model.RawDataset{
		ClassCourses:    make(map[string][]string),
		LecturerCourses: make(map[string][]string),
		Forbidden:       make(map[string][]int),
		RequiredRoom:    make(map[string]string),
		OnlineCount:     make(map[string]int),
	}

	active := sectionNone
	lineNumber := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if strings.HasPrefix(fields[0], "#") {
			if sec, ok := sectionHeaders[fields[0]]; ok {
				active = sec
			} else {
				active = sectionNone // unknown section: ignore its records
			}
			continue
		}

		if err := parseRecord(ds, active, fields); err != nil {
			return nil, &ParseError{Filename: filename, Line: lineNumber, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func parseRecord(ds *model.RawDataset, active section, fields []string) error {
	switch active {
	case sectionClassCourses:
		if len(fields) < 2 {
			return fmt.Errorf("expected %q", "className courseId courseId ...")
		}
		ds.ClassCourses[fields[0]] = append(ds.ClassCourses[fields[0]], fields[1:]...)

	case sectionLecturerCourses:
		if len(fields) < 2 {
			return fmt.Errorf("expected %q", "lecturerId courseId courseId ...")
		}
		ds.LecturerCourses[fields[0]] = append(ds.LecturerCourses[fields[0]], fields[1:]...)

	case sectionForbidden:
		if len(fields) < 2 {
			return fmt.Errorf("expected %q", "lecturerId slot slot ...")
		}
		for _, raw := range fields[1:] {
			slot, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("bad timeslot %q: %w", raw, err)
			}
			ds.Forbidden[fields[0]] = append(ds.Forbidden[fields[0]], slot)
		}

	case sectionRequiredRoom:
		if len(fields) != 2 {
			return fmt.Errorf("expected %q", "courseId roomId")
		}
		ds.RequiredRoom[fields[0]] = fields[1]

	case sectionOnlineCount:
		if len(fields) != 2 {
			return fmt.Errorf("expected %q", "courseId n")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad online count %q: %w", fields[1], err)
		}
		ds.OnlineCount[fields[0]] = n

	case sectionNone:
		// before any recognized header, or inside an unknown section:
		// ignore the line per spec §6.1.
	}
	return nil
}
