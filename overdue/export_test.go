package overdue

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/library"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	books := []library.OverdueBook{
		{BookTitle: "1984", DueDate: "2026-08-01T00:00:00Z"},
		{BookTitle: "Dune", DueDate: "not-a-date"},
	}
	require.NoError(t, WriteCSV(&buf, books))

	want := "Book Title,Due Date\n1984,8/1/2026\nDune,not-a-date\n"
	assert.Equal(t, want, buf.String())
}

func TestExportCSVEmptyListIsNoOp(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	dir := t.TempDir()

	path, err := w.ExportCSV(dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportCSV(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	require.NoError(t, w.LoadReaders(context.Background()))
	require.NoError(t, w.FetchBooks(context.Background(), "r1"))

	dir := t.TempDir()
	path, err := w.ExportCSV(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "overdue_books_r1.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Book Title,Due Date\n1984,8/1/2026\n", string(data))
	assert.Equal(t, BooksLoaded, w.State())
}

func TestExportPDF(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	require.NoError(t, w.LoadReaders(context.Background()))
	require.NoError(t, w.FetchBooks(context.Background(), "r2"))

	dir := t.TempDir()
	path, err := w.ExportPDF(dir)
	require.NoError(t, err)

	wantName := "overdue_books_r2_" + time.Now().Format("2006-01-02") + ".pdf"
	assert.Equal(t, filepath.Join(dir, wantName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDFEmptyListIsNoOp(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	path, err := w.ExportPDF(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
}
