package api

import (
	"context"
	"net/http"

	"library-admin/library"
)

// ListBooks fetches the whole book collection.
func (c *Client) ListBooks(ctx context.Context) ([]library.Book, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.Book](raw)
}

// CreateBook posts a new book and returns the backend's canonical record,
// including the generated IDs.
func (c *Client) CreateBook(ctx context.Context, b library.Book) (library.Book, error) {
	raw, err := c.raw(ctx, http.MethodPost, "/books", b)
	if err != nil {
		return library.Book{}, err
	}
	return decodeRecord[library.Book](raw)
}

// UpdateBook replaces the book with the given id and returns the canonical
// updated record.
func (c *Client) UpdateBook(ctx context.Context, id string, b library.Book) (library.Book, error) {
	raw, err := c.raw(ctx, http.MethodPut, "/books/"+id, b)
	if err != nil {
		return library.Book{}, err
	}
	return decodeRecord[library.Book](raw)
}

// DeleteBook removes the book with the given id.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+id, nil, nil)
}
