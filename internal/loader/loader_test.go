package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `
// comment lines and blank lines are ignored
#cc
c1 UC1 UC2

#dsd
alice UC1
bob UC2

#tr
alice 1 2

#rr
UC1 r1
UC2 r2

#oc
UC2 1
`

func TestParseSampleDataset(t *testing.T) {
	ds, err := Parse("sample.txt", strings.NewReader(sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, []string{"UC1", "UC2"}, ds.ClassCourses["c1"])
	assert.Equal(t, []string{"UC1"}, ds.LecturerCourses["alice"])
	assert.Equal(t, []string{"UC2"}, ds.LecturerCourses["bob"])
	assert.Equal(t, []int{1, 2}, ds.Forbidden["alice"])
	assert.Equal(t, "r1", ds.RequiredRoom["UC1"])
	assert.Equal(t, "r2", ds.RequiredRoom["UC2"])
	assert.Equal(t, 1, ds.OnlineCount["UC2"])
}

func TestParseIgnoresUnknownSections(t *testing.T) {
	input := `
#bogus
whatever here
#cc
c1 UC1
`
	ds, err := Parse("sample.txt", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"UC1"}, ds.ClassCourses["c1"])
}

func TestParseStripsTrailingComments(t *testing.T) {
	input := `
#cc
c1 UC1 // trailing comment about UC1
`
	ds, err := Parse("sample.txt", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"UC1"}, ds.ClassCourses["c1"])
}

func TestParseRejectsMalformedForbiddenRecord(t *testing.T) {
	input := `
#tr
alice notanumber
`
	_, err := Parse("sample.txt", strings.NewReader(input))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "sample.txt", parseErr.Filename)
	assert.Equal(t, 3, parseErr.Line)
}

func TestParseRejectsShortRequiredRoomRecord(t *testing.T) {
	input := `
#rr
UC1
`
	_, err := Parse("sample.txt", strings.NewReader(input))
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseRejectsBadOnlineCount(t *testing.T) {
	input := `
#oc
UC1 notanumber
`
	_, err := Parse("sample.txt", strings.NewReader(input))
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
