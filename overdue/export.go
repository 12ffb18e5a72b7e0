package overdue

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"library-admin/library"
)

// dueDate renders an ISO due date as a short localized date, leaving the
// raw value alone if it does not parse.
func dueDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}

// WriteCSV serializes overdue titles with a "Book Title","Due Date" header.
func WriteCSV(out io.Writer, books []library.OverdueBook) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Book Title", "Due Date"}); err != nil {
		return err
	}
	for _, b := range books {
		if err := cw.Write([]string{b.BookTitle, dueDate(b.DueDate)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportTag names export files by reader, "all" when nothing is selected.
func (w *Workflow) exportTag() string {
	if w.selected == "" {
		return "all"
	}
	return w.selected
}

// ExportCSV writes the currently loaded overdue list to a CSV file in dir
// and returns its path. An empty list is a no-op returning an empty path.
func (w *Workflow) ExportCSV(dir string) (string, error) {
	if len(w.books) == 0 {
		return "", nil
	}
	w.state = Exporting
	defer func() { w.state = BooksLoaded }()

	path := filepath.Join(dir, fmt.Sprintf("overdue_books_%s.csv", w.exportTag()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, w.books); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}

// ExportPDF renders the loaded overdue list as a paginated document: a 14pt
// header naming the reader, then one 12pt line per book, breaking to a new
// page once the cursor passes the vertical bound. An empty list is a no-op.
func (w *Workflow) ExportPDF(dir string) (string, error) {
	if len(w.books) == 0 {
		return "", nil
	}
	w.state = Exporting
	defer func() { w.state = BooksLoaded }()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 14)
	doc.Text(14, 20, fmt.Sprintf("Overdue Books for %s", w.ReaderName()))
	doc.SetFont("Helvetica", "", 12)

	y := 30.0
	for i, b := range w.books {
		doc.Text(14, y, fmt.Sprintf("%d. %s - Due %s", i+1, b.BookTitle, dueDate(b.DueDate)))
		y += 10
		if y > 280 {
			doc.AddPage()
			y = 20
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("overdue_books_%s_%s.pdf",
		w.exportTag(), time.Now().Format("2006-01-02")))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
