package overdue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/library"
)

type fakeService struct {
	readers    []library.OverdueReader
	readersErr error
	books      map[string][]library.OverdueBook
	booksErr   error

	sentAll        int
	sentIndividual []string
	sentMessages   []string
	sendErr        error
}

func (f *fakeService) OverdueReaders(context.Context) ([]library.OverdueReader, error) {
	return f.readers, f.readersErr
}

func (f *fakeService) OverdueBooks(_ context.Context, readerID string) ([]library.OverdueBook, error) {
	return f.books[readerID], f.booksErr
}

func (f *fakeService) SendAllNotifications(context.Context) error {
	f.sentAll++
	return f.sendErr
}

func (f *fakeService) SendIndividualNotification(_ context.Context, readerID, message string) error {
	f.sentIndividual = append(f.sentIndividual, readerID)
	f.sentMessages = append(f.sentMessages, message)
	return f.sendErr
}

func testService() *fakeService {
	return &fakeService{
		readers: []library.OverdueReader{
			{ReaderID: "r1", ReaderName: "Alice"},
			{ReaderID: "r2", ReaderName: "Bob"},
		},
		books: map[string][]library.OverdueBook{
			"r1": {{BookTitle: "1984", DueDate: "2026-08-01T00:00:00Z"}},
			"r2": {{BookTitle: "Dune", DueDate: "2026-08-10T00:00:00Z"}},
		},
	}
}

func TestLoadReaders(t *testing.T) {
	svc := testService()
	w := NewWorkflow(svc, nil)
	require.Equal(t, Idle, w.State())

	require.NoError(t, w.LoadReaders(context.Background()))
	assert.Equal(t, ReadersLoaded, w.State())
	assert.Len(t, w.Readers(), 2)
	assert.Empty(t, w.Status())
}

func TestLoadReadersFailureLeavesEmptyList(t *testing.T) {
	svc := testService()
	svc.readersErr = errors.New("boom")
	w := NewWorkflow(svc, nil)

	err := w.LoadReaders(context.Background())
	require.Error(t, err)
	assert.Empty(t, w.Readers())
	assert.Equal(t, "Failed to fetch overdue readers: boom", w.Status())
}

func TestFetchBooks(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	require.NoError(t, w.LoadReaders(context.Background()))

	require.NoError(t, w.FetchBooks(context.Background(), "r1"))
	assert.Equal(t, BooksLoaded, w.State())
	require.Len(t, w.Books(), 1)
	assert.Equal(t, "1984", w.Books()[0].BookTitle)
	assert.Equal(t, "Alice", w.ReaderName())
}

func TestStaleDeliveryDiscarded(t *testing.T) {
	svc := testService()
	w := NewWorkflow(svc, nil)
	require.NoError(t, w.LoadReaders(context.Background()))

	// Two fetches race: the first reader's response arrives after the
	// operator has already switched to the second. The late response must
	// not clobber the current selection.
	genA := w.Select("r1")
	genB := w.Select("r2")

	applied := w.Deliver(genB, svc.books["r2"], nil)
	assert.True(t, applied)
	applied = w.Deliver(genA, svc.books["r1"], nil)
	assert.False(t, applied, "superseded fetch must be dropped")

	require.Len(t, w.Books(), 1)
	assert.Equal(t, "Dune", w.Books()[0].BookTitle)
	assert.Equal(t, "Bob", w.ReaderName())
}

func TestDeliverErrorClearsBooks(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	gen := w.Select("r1")
	w.Deliver(gen, nil, errors.New("timeout"))

	assert.Empty(t, w.Books())
	assert.Equal(t, "Failed to fetch overdue books: timeout", w.Status())
}

func TestReaderNameFallbacks(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	assert.Equal(t, "All Readers", w.ReaderName())

	w.Select("unknown")
	assert.Equal(t, "unknown", w.ReaderName(), "unresolvable ids shown raw")
}

func TestComposeAndSendDraft(t *testing.T) {
	svc := testService()
	w := NewWorkflow(svc, nil)
	require.NoError(t, w.LoadReaders(context.Background()))
	require.NoError(t, w.FetchBooks(context.Background(), "r1"))

	d := w.Compose("r1", "Alice")
	assert.Equal(t, ComposingEmail, w.State())
	assert.Contains(t, d.Message, "Dear Alice,")
	assert.Contains(t, d.Message, "overdue books at the library")

	d.Message = "Custom reminder"
	got := w.SendDraft(context.Background(), d)
	assert.Equal(t, "Notification sent to Alice.", got)
	assert.Equal(t, BooksLoaded, w.State(), "compose closes after send")
	require.Len(t, svc.sentIndividual, 1)
	assert.Equal(t, "r1", svc.sentIndividual[0])
	assert.Equal(t, "Custom reminder", svc.sentMessages[0])
}

func TestCancelDraftClosesCompose(t *testing.T) {
	w := NewWorkflow(testService(), nil)
	require.NoError(t, w.FetchBooks(context.Background(), "r1"))

	w.Compose("r1", "Alice")
	require.Equal(t, ComposingEmail, w.State())

	w.CancelDraft()
	assert.Equal(t, BooksLoaded, w.State(), "compose closes without sending")
}

func TestSendDraftFailureStillClosesCompose(t *testing.T) {
	svc := testService()
	svc.sendErr = errors.New("smtp down")
	w := NewWorkflow(svc, nil)
	require.NoError(t, w.FetchBooks(context.Background(), "r1"))

	d := w.Compose("r1", "Alice")
	got := w.SendDraft(context.Background(), d)
	assert.Equal(t, "Failed to send notification: smtp down", got)
	assert.Equal(t, BooksLoaded, w.State())
}

func TestNotifyAll(t *testing.T) {
	svc := testService()
	w := NewWorkflow(svc, nil)
	require.NoError(t, w.LoadReaders(context.Background()))

	got := w.NotifyAll(context.Background())
	assert.Equal(t, "Overdue notifications sent successfully!", got)
	assert.Equal(t, 1, svc.sentAll)
	assert.Equal(t, ReadersLoaded, w.State())

	svc.sendErr = errors.New("queue full")
	got = w.NotifyAll(context.Background())
	assert.Equal(t, "Failed: queue full", got)
}
