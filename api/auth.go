package api

import (
	"context"
	"net/http"
	"time"

	"library-admin/library"
)

// Login authenticates against the backend. On success the session cookie
// lands in the client's jar and rides along on every later request.
func (c *Client) Login(ctx context.Context, email, password string) (library.User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	raw, err := c.raw(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return library.User{}, err
	}
	return decodeRecord[library.User](raw)
}

// Signup registers a new admin or staff account. The backend expects the
// client to stamp creation times.
func (c *Client) Signup(ctx context.Context, u library.User) (library.User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	body := struct {
		Name      string       `json:"name"`
		Email     string       `json:"email"`
		Password  string       `json:"password"`
		Role      library.Role `json:"role"`
		IsActive  bool         `json:"isActive"`
		CreatedAt string       `json:"createdAt"`
		UpdatedAt string       `json:"updatedAt"`
	}{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	raw, err := c.raw(ctx, http.MethodPost, "/auth/signup", body)
	if err != nil {
		return library.User{}, err
	}
	return decodeRecord[library.User](raw)
}

// ForgotPassword asks the backend to start a password reset for the email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", body, nil)
}

// ListUsers fetches every admin/staff account.
func (c *Client) ListUsers(ctx context.Context) ([]library.User, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/auth/users", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[library.User](raw)
}

// UpdateUser replaces the account with the given id. An empty password in u
// is omitted from the payload, which the backend reads as keep current.
func (c *Client) UpdateUser(ctx context.Context, id string, u library.User) (library.User, error) {
	raw, err := c.raw(ctx, http.MethodPut, "/auth/users/"+id, u)
	if err != nil {
		return library.User{}, err
	}
	return decodeRecord[library.User](raw)
}

// DeleteUser removes the account with the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/auth/users/"+id, nil, nil)
}
