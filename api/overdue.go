package api

import (
	"context"
	"net/http"

	"library-admin/library"
)

// OverdueReaders fetches every reader with at least one overdue lending.
func (c *Client) OverdueReaders(ctx context.Context) ([]library.OverdueReader, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/overdue/readers", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.OverdueReader](raw)
}

// OverdueBooks fetches the overdue titles for one reader.
func (c *Client) OverdueBooks(ctx context.Context, readerID string) ([]library.OverdueBook, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/overdue/books/"+readerID, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.OverdueBook](raw)
}

// SendAllNotifications triggers the bulk overdue notification emails.
func (c *Client) SendAllNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/send-overdue-notifications", nil, nil)
}

// SendIndividualNotification sends one reader a notification with an
// operator-edited message body.
func (c *Client) SendIndividualNotification(ctx context.Context, readerID, message string) error {
	body := struct {
		Message string `json:"message"`
	}{Message: message}
	return c.do(ctx, http.MethodPost, "/notifications/send-individual/"+readerID, body, nil)
}
