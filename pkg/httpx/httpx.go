// Package httpx provides a fluent HTTP client for the Vyapar console.
//
// Usage:
//
//	resp, err := httpx.Get(base + "/admin/orders").
//	    Bearer(token).
//	    Query("order_status", "pending").
//	    Timeout(10 * time.Second).
//	    Send(ctx)
//
//	var orders []Order
//	err = resp.JSON(&orders)
//
// Tests replace DefaultClient.Transport to intercept calls:
//
//	httpx.DefaultClient.Transport = myMockTransport
//	defer httpx.ResetTransport()
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// defaultTransport is the connection-pooled transport used outside tests.
var defaultTransport = &http.Transport{
	MaxIdleConns:        50,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is the shared HTTP client for all outgoing requests.
var DefaultClient = &http.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
// Call via defer after injecting a test transport.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// ─── Request ──────────────────────────────────────────────────────────────────

// Request is a fluent HTTP request builder.
type Request struct {
	method  string
	url     string
	headers map[string]string
	query   url.Values
	body    io.Reader
	ctype   string
	timeout time.Duration
}

// Get starts a GET request.
func Get(url string) *Request { return newRequest(http.MethodGet, url) }

// Post starts a POST request.
func Post(url string) *Request { return newRequest(http.MethodPost, url) }

// Put starts a PUT request.
func Put(url string) *Request { return newRequest(http.MethodPut, url) }

// Patch starts a PATCH request.
func Patch(url string) *Request { return newRequest(http.MethodPatch, url) }

// Delete starts a DELETE request.
func Delete(url string) *Request { return newRequest(http.MethodDelete, url) }

// New starts a request with an arbitrary method.
func New(method, url string) *Request { return newRequest(method, url) }

func newRequest(method, u string) *Request {
	return &Request{
		method:  method,
		url:     u,
		headers: map[string]string{"Accept": "application/json"},
		query:   url.Values{},
		timeout: 30 * time.Second,
	}
}

// Header sets a single header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Bearer sets the Authorization: Bearer <token> header.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Query adds a URL query parameter. Empty values are skipped so callers
// can pass filter fields through unconditionally.
func (r *Request) Query(key, value string) *Request {
	if value != "" {
		r.query.Set(key, value)
	}
	return r
}

// JSONBody marshals v and sends it as application/json.
func (r *Request) JSONBody(v interface{}) *Request {
	b, err := json.Marshal(v)
	if err != nil {
		// Surfaced on Send; a builder method cannot return an error.
		r.body = &errReader{fmt.Errorf("httpx: marshal body: %w", err)}
		return r
	}
	r.body = bytes.NewReader(b)
	r.ctype = "application/json"
	return r
}

// MultipartBody sends form fields plus one file part named fileField.
func (r *Request) MultipartBody(fields map[string]string, fileField, fileName string, file io.Reader) *Request {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			r.body = &errReader{fmt.Errorf("httpx: multipart field %s: %w", k, err)}
			return r
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		r.body = &errReader{fmt.Errorf("httpx: multipart body: %w", err)}
		return r
	}
	r.body = buf
	r.ctype = w.FormDataContentType()
	return r
}

// Timeout sets the request timeout.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Send executes the request.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if er, ok := r.body.(*errReader); ok {
		return nil, er.err
	}

	u := r.url
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("httpx: build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.ctype != "" {
		req.Header.Set("Content-Type", r.ctype)
	}

	logger.Debug("httpx: request", "method", r.method, "url", u)

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpx: send: %w", err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("httpx: read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }

// ─── Response ─────────────────────────────────────────────────────────────────

// Response wraps the HTTP response with convenience methods.
type Response struct {
	StatusCode int
	Headers    http.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("httpx: decode JSON: %w", err)
	}
	return nil
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Raw)
}

// Header returns a single response header value.
func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

// Filename extracts the attachment filename from Content-Disposition.
// Returns fallback when the header is absent or unparseable.
func (r *Response) Filename(fallback string) string {
	cd := r.Headers.Get("Content-Disposition")
	if cd == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}
