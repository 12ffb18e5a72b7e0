package api

import (
	"context"
	"net/http"

	"library-admin/library"
)

// ListLendings fetches the lending collection.
func (c *Client) ListLendings(ctx context.Context) ([]library.Lending, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/lendings", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.Lending](raw)
}

// CreateLending posts a new lending and returns the canonical record.
func (c *Client) CreateLending(ctx context.Context, l library.Lending) (library.Lending, error) {
	raw, err := c.raw(ctx, http.MethodPost, "/lendings", l)
	if err != nil {
		return library.Lending{}, err
	}
	return decodeRecord[library.Lending](raw)
}

// UpdateLending replaces the lending with the given id; marking a lending
// returned goes through here with status set and a return date.
func (c *Client) UpdateLending(ctx context.Context, id string, l library.Lending) (library.Lending, error) {
	raw, err := c.raw(ctx, http.MethodPut, "/lendings/"+id, l)
	if err != nil {
		return library.Lending{}, err
	}
	return decodeRecord[library.Lending](raw)
}

// DeleteLending removes the lending with the given id.
func (c *Client) DeleteLending(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/lendings/"+id, nil, nil)
}

// NotifyOverdueLendings asks the backend to email every reader with an
// overdue lending. No request body; the backend's error message, if any, is
// carried on the returned *Error.
func (c *Client) NotifyOverdueLendings(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/lendings/notify-overdue", nil, nil)
}
