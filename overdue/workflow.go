// Package overdue drives the overdue-notification workflow: loading the
// readers with overdue lendings, inspecting one reader's overdue titles,
// exporting them as CSV or PDF, and sending notification emails in bulk or
// per reader with an editable message.
package overdue

import (
	"context"
	"fmt"
	"log/slog"

	"library-admin/library"
)

// Service is the slice of the backend API the workflow consumes.
type Service interface {
	OverdueReaders(ctx context.Context) ([]library.OverdueReader, error)
	OverdueBooks(ctx context.Context, readerID string) ([]library.OverdueBook, error)
	SendAllNotifications(ctx context.Context) error
	SendIndividualNotification(ctx context.Context, readerID, message string) error
}

// State is the workflow position within one session.
type State int

const (
	Idle State = iota
	ReadersLoaded
	BooksLoaded
	Exporting
	ComposingEmail
	Sending
)

// Workflow holds the session state of the overdue page. It is driven by a
// single operator; no internal locking.
type Workflow struct {
	svc Service
	log *slog.Logger

	state    State
	readers  []library.OverdueReader
	selected string
	gen      uint64
	books    []library.OverdueBook
	status   string
}

// NewWorkflow starts a session in the Idle state.
func NewWorkflow(svc Service, log *slog.Logger) *Workflow {
	if log == nil {
		log = slog.Default()
	}
	return &Workflow{svc: svc, log: log}
}

// State returns the current workflow state.
func (w *Workflow) State() State { return w.state }

// Readers returns the loaded overdue-reader list.
func (w *Workflow) Readers() []library.OverdueReader { return w.readers }

// Books returns the overdue titles for the currently selected reader.
func (w *Workflow) Books() []library.OverdueBook { return w.books }

// Selected returns the currently selected reader id, empty when none.
func (w *Workflow) Selected() string { return w.selected }

// Status returns the last user-visible message.
func (w *Workflow) Status() string { return w.status }

// LoadReaders fetches every reader with overdue lendings. A failure is
// surfaced as the status message and leaves the list empty; there is no
// retry.
func (w *Workflow) LoadReaders(ctx context.Context) error {
	readers, err := w.svc.OverdueReaders(ctx)
	if err != nil {
		w.readers = nil
		w.state = ReadersLoaded
		w.status = fmt.Sprintf("Failed to fetch overdue readers: %v", err)
		w.log.Debug("overdue readers fetch failed", "error", err)
		return err
	}
	w.readers = readers
	w.state = ReadersLoaded
	w.status = ""
	return nil
}

// Select marks a reader as current and returns the generation tag its fetch
// must carry. A later Select supersedes any in-flight fetch: Deliver drops
// results whose tag no longer matches.
func (w *Workflow) Select(readerID string) uint64 {
	w.selected = readerID
	w.gen++
	return w.gen
}

// Deliver applies a fetch result tagged by Select. Stale deliveries (the
// operator has selected someone else since) are discarded so the last
// selection always wins regardless of response order. It reports whether
// the result was applied.
func (w *Workflow) Deliver(gen uint64, books []library.OverdueBook, err error) bool {
	if gen != w.gen {
		w.log.Debug("discarding stale overdue books response", "gen", gen, "current", w.gen)
		return false
	}
	if err != nil {
		w.books = nil
		w.state = BooksLoaded
		w.status = fmt.Sprintf("Failed to fetch overdue books: %v", err)
		return true
	}
	w.books = books
	w.state = BooksLoaded
	w.status = ""
	return true
}

// FetchBooks selects the reader and fetches their overdue titles in one
// synchronous step.
func (w *Workflow) FetchBooks(ctx context.Context, readerID string) error {
	gen := w.Select(readerID)
	books, err := w.svc.OverdueBooks(ctx, readerID)
	w.Deliver(gen, books, err)
	return err
}

// ReaderName resolves the display name of the selected reader, falling back
// to the raw id, or "All Readers" when nothing is selected.
func (w *Workflow) ReaderName() string {
	if w.selected == "" {
		return "All Readers"
	}
	for _, r := range w.readers {
		if r.ReaderID == w.selected {
			return r.ReaderName
		}
	}
	return w.selected
}

// Draft is an editable notification message for one reader.
type Draft struct {
	ReaderID   string
	ReaderName string
	Message    string
}

// Compose opens a draft pre-filled with the reminder template for the given
// reader.
func (w *Workflow) Compose(readerID, readerName string) Draft {
	w.state = ComposingEmail
	return Draft{
		ReaderID:   readerID,
		ReaderName: readerName,
		Message: fmt.Sprintf("Dear %s,\n\nThis is a reminder that you have overdue books at the library. "+
			"Please return them as soon as possible.\n\nThank you!", readerName),
	}
}

// CancelDraft closes the compose panel without sending anything.
func (w *Workflow) CancelDraft() {
	w.state = BooksLoaded
}

// SendDraft posts the draft message to the per-reader notification
// endpoint. The compose state closes whatever the outcome; the returned
// string is the user-visible result.
func (w *Workflow) SendDraft(ctx context.Context, d Draft) string {
	w.state = Sending
	err := w.svc.SendIndividualNotification(ctx, d.ReaderID, d.Message)
	w.state = BooksLoaded
	if err != nil {
		w.status = fmt.Sprintf("Failed to send notification: %v", err)
	} else {
		w.status = fmt.Sprintf("Notification sent to %s.", d.ReaderName)
	}
	return w.status
}

// NotifyAll triggers the bulk notification endpoint and returns the
// user-visible result.
func (w *Workflow) NotifyAll(ctx context.Context) string {
	w.state = Sending
	err := w.svc.SendAllNotifications(ctx)
	w.state = ReadersLoaded
	if err != nil {
		w.status = fmt.Sprintf("Failed: %v", err)
	} else {
		w.status = "Overdue notifications sent successfully!"
	}
	return w.status
}
