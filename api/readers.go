package api

import (
	"context"
	"net/http"

	"library-admin/library"
)

// ListReaders fetches the reader collection. The readers endpoint is the
// one that sometimes wraps its payload as {data:[...]}; decodeList accepts
// either shape.
func (c *Client) ListReaders(ctx context.Context) ([]library.Reader, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/readers", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.Reader](raw)
}

// CreateReader posts a new reader and returns the canonical record.
func (c *Client) CreateReader(ctx context.Context, r library.Reader) (library.Reader, error) {
	raw, err := c.raw(ctx, http.MethodPost, "/readers", r)
	if err != nil {
		return library.Reader{}, err
	}
	return decodeRecord[library.Reader](raw)
}

// UpdateReader replaces the reader with the given id.
func (c *Client) UpdateReader(ctx context.Context, id string, r library.Reader) (library.Reader, error) {
	raw, err := c.raw(ctx, http.MethodPut, "/readers/"+id, r)
	if err != nil {
		return library.Reader{}, err
	}
	return decodeRecord[library.Reader](raw)
}

// DeleteReader removes the reader with the given id.
func (c *Client) DeleteReader(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/readers/"+id, nil, nil)
}
