package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedApp(input string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		sc:  bufio.NewScanner(strings.NewReader(input)),
		out: &out,
	}, &out
}

func TestPromptDefaultKeepsDefaultOnEnter(t *testing.T) {
	a, _ := scriptedApp("\ncustom\n")

	v, ok := a.promptDefault("Title", "Dune")
	require.True(t, ok)
	assert.Equal(t, "Dune", v)

	v, ok = a.promptDefault("Title", "Dune")
	require.True(t, ok)
	assert.Equal(t, "custom", v)
}

// A typo in a numeric field must re-prompt, not store 0 and sail through
// validation.
func TestBookFormRepromptsOnBadNumber(t *testing.T) {
	a, out := scriptedApp(strings.Join([]string{
		"Dune",          // title
		"Frank Herbert", // author
		"Fiction",       // category
		"",              // isbn
		"",              // publisher
		"1965",          // publish year
		"",              // description
		"abc",           // price: rejected
		"9.99",          // price: accepted
		"five",          // quantity: rejected
		"5",             // quantity: accepted
		"5",             // copies available
	}, "\n") + "\n")

	b, ok := a.promptBookForm(nil)
	require.True(t, ok)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, 1965, b.PublishYear)
	assert.Equal(t, 9.99, b.Price)
	assert.Equal(t, 5, b.Quantity)
	assert.Equal(t, 5, b.CopiesAvailable)
	assert.Contains(t, out.String(), "enter a number")
	assert.Contains(t, out.String(), "enter a whole number")
}

func TestSetters(t *testing.T) {
	var f float64
	require.NoError(t, setFloat(&f)(" 12.50 "))
	assert.Equal(t, 12.5, f)
	assert.Error(t, setFloat(&f)("12,50"))

	var n int
	require.NoError(t, setInt(&n)("7"))
	assert.Equal(t, 7, n)
	assert.Error(t, setInt(&n)("7.5"))

	var s string
	require.NoError(t, setString(&s)("anything"))
	assert.Equal(t, "anything", s)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "a long ...", truncateString("a long title here", 10))
}
