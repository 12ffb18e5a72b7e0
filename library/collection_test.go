package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertReplacesOnMatch(t *testing.T) {
	books := []Book{{ID: "1", Title: "Old"}, {ID: "2", Title: "Keep"}}
	books = Upsert(books, Book{ID: "1", Title: "New"})
	require.Len(t, books, 2)
	assert.Equal(t, "New", books[0].Title)
	assert.Equal(t, "Keep", books[1].Title)
}

func TestUpsertAppendsWhenNew(t *testing.T) {
	var readers []Reader
	readers = Upsert(readers, Reader{ID: "r1", Name: "Alice"})
	readers = Upsert(readers, Reader{ID: "r2", Name: "Bob"})
	require.Len(t, readers, 2)
	assert.Equal(t, "Bob", readers[1].Name)
}

func TestRemove(t *testing.T) {
	users := []User{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	users = Remove(users, "2")
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "3", users[1].ID)

	// Removing an unknown key is a no-op.
	users = Remove(users, "nope")
	assert.Len(t, users, 2)
}

func TestFind(t *testing.T) {
	lendings := []Lending{{ID: "l1", ReaderName: "Alice"}}
	l, ok := Find(lendings, "l1")
	require.True(t, ok)
	assert.Equal(t, "Alice", l.ReaderName)

	_, ok = Find(lendings, "l2")
	assert.False(t, ok)
}
