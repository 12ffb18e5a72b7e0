package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/library"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestListBooks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"), "every request is tagged")
		_ = json.NewEncoder(w).Encode([]library.Book{{ID: "1", Title: "1984", Author: "George Orwell"}})
	}))

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "1984", books[0].Title)
}

func TestListReadersAcceptsBothShapes(t *testing.T) {
	bare := `[{"_id":"r1","name":"Alice"}]`
	wrapped := `{"data":[{"_id":"r1","name":"Alice"}]}`

	for name, body := range map[string]string{"bare": bare, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			readers, err := c.ListReaders(context.Background())
			require.NoError(t, err)
			require.Len(t, readers, 1)
			assert.Equal(t, "Alice", readers[0].Name)
		})
	}
}

func TestCreateReaderUnwrapsRecord(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var in library.Reader
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Alice", in.Name)
		in.ID = "r9"
		_ = json.NewEncoder(w).Encode(map[string]library.Reader{"data": in})
	}))

	created, err := c.CreateReader(context.Background(), library.Reader{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "r9", created.ID)
}

func TestBackendErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already exists"}`))
	}))

	_, err := c.CreateReader(context.Background(), library.Reader{Name: "Alice"})
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email already exists", apiErr.Error())
}

func TestErrorWithoutMessageGetsFallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := c.DeleteBook(context.Background(), "1")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestSessionCookieCarriesOver(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s3cret", Path: "/"})
			_, _ = w.Write([]byte(`{"_id":"u1","name":"Admin","role":"admin"}`))
		case "/api/books":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "s3cret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"not logged in"}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}
	}))

	ctx := context.Background()
	user, err := c.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)

	_, err = c.ListBooks(ctx)
	assert.NoError(t, err, "session cookie from login must ride on later requests")
}

func TestNotificationEndpoints(t *testing.T) {
	var gotPath, gotMessage string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path == "/api/notifications/send-individual/r1" {
			var body struct {
				Message string `json:"message"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			gotMessage = body.Message
		}
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.Background()
	require.NoError(t, c.SendAllNotifications(ctx))
	assert.Equal(t, "/api/notifications/send-overdue-notifications", gotPath)

	require.NoError(t, c.SendIndividualNotification(ctx, "r1", "please return the books"))
	assert.Equal(t, "/api/notifications/send-individual/r1", gotPath)
	assert.Equal(t, "please return the books", gotMessage)
}

func TestOverdueEndpoints(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/overdue/readers":
			_, _ = w.Write([]byte(`[{"readerId":"r1","readerName":"Alice"}]`))
		case "/api/overdue/books/r1":
			_, _ = w.Write([]byte(`[{"bookTitle":"1984","dueDate":"2026-08-01T00:00:00Z"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	readers, err := c.OverdueReaders(ctx)
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "Alice", readers[0].ReaderName)

	books, err := c.OverdueBooks(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "1984", books[0].BookTitle)
}

func TestTransportErrorIsNotBackendError(t *testing.T) {
	c, err := New("http://127.0.0.1:1", 100*time.Millisecond, nil)
	require.NoError(t, err)
	_, err = c.ListBooks(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures carry no backend status")
}
