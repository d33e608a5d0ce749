// Package gateway is the single choke point for calls to the backend API.
// It attaches the session's bearer token to every request, translates
// failures into the console's error taxonomy and handles 401 centrally:
// the session store is cleared before the error surfaces, so the next
// guard check redirects to login without probing the server again.
//
// The gateway never retries; a double-submitted mutation reaches the
// server twice and the server's answer wins.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/httpx"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// Client issues authenticated requests against one API base URL.
type Client struct {
	base     string
	sessions *session.Store
}

// New builds a gateway for base (no trailing slash) over the given session.
func New(base string, sessions *session.Store) *Client {
	return &Client{base: base, sessions: sessions}
}

// URL joins the base with an API path like "/admin/orders".
func (c *Client) URL(path string) string {
	return c.base + path
}

// Do executes req with the bearer header attached and maps the outcome:
//
//	transport failure → *NetworkError
//	HTTP 401          → session cleared, ErrSessionExpired
//	other non-2xx     → *APIError with the server's detail message
//	2xx               → the raw response
func (c *Client) Do(ctx context.Context, req *httpx.Request) (*httpx.Response, error) {
	if token, ok := c.sessions.Token(); ok {
		req.Bearer(token)
	}

	resp, err := req.Send(ctx)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("gateway: 401 from backend, clearing session")
		if lerr := c.sessions.Logout(); lerr != nil {
			logger.Error("gateway: clearing session failed", "error", lerr)
		}
		return nil, ErrSessionExpired
	}

	if !resp.OK() {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, resp.Raw)}
	}

	return resp, nil
}

// JSON executes req and decodes the 2xx body into dest. A body the server
// labelled JSON but that does not parse is surfaced as an error, never
// swallowed.
func (c *Client) JSON(ctx context.Context, req *httpx.Request, dest interface{}) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := resp.JSON(dest); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	return nil
}

// Get fetches path with optional query parameters and decodes into dest.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, dest interface{}) error {
	req := httpx.Get(c.URL(path))
	for k, v := range query {
		req.Query(k, v)
	}
	return c.JSON(ctx, req, dest)
}

// Patch sends a JSON body via PATCH and decodes the reply into dest.
func (c *Client) Patch(ctx context.Context, path string, body, dest interface{}) error {
	req := httpx.Patch(c.URL(path))
	if body != nil {
		req.JSONBody(body)
	}
	return c.JSON(ctx, req, dest)
}

// Post sends a JSON body via POST and decodes the reply into dest.
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	req := httpx.Post(c.URL(path))
	if body != nil {
		req.JSONBody(body)
	}
	return c.JSON(ctx, req, dest)
}

// Put sends a JSON body via PUT and decodes the reply into dest.
func (c *Client) Put(ctx context.Context, path string, body, dest interface{}) error {
	req := httpx.Put(c.URL(path))
	if body != nil {
		req.JSONBody(body)
	}
	return c.JSON(ctx, req, dest)
}

// Delete issues a DELETE and decodes the reply into dest when given.
func (c *Client) Delete(ctx context.Context, path string, dest interface{}) error {
	return c.JSON(ctx, httpx.Delete(c.URL(path)), dest)
}
