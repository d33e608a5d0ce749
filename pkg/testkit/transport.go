// Package testkit provides the HTTP mocking used by the console's tests.
//
// MockTransport implements http.RoundTripper: it matches outgoing requests
// against stubbed routes and returns synthetic responses instead of making
// real network calls. Every request is recorded, so tests can assert not
// just what was called but that an operation made no call at all.
//
//	mt := testkit.Install(t)
//	mt.Stub("GET", "/admin/orders", 200, `[]`)
//	// ... run code under test ...
//	assert.Equal(t, 1, mt.CallCount("GET", "/admin/orders"))
package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/shashiranjanraj/vyapar/pkg/httpx"
)

// Call is one recorded outgoing request.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type stub struct {
	method string
	path   string // prefix match against URL path
	status int
	body   string
	header http.Header
	err    error
}

// MockTransport is an http.RoundTripper backed by stubbed routes.
type MockTransport struct {
	mu    sync.Mutex
	stubs []stub
	calls []Call
}

// Install replaces the shared client's transport for the duration of the
// test and restores the real one afterwards.
func Install(t *testing.T) *MockTransport {
	t.Helper()
	mt := &MockTransport{}
	httpx.DefaultClient.Transport = mt
	t.Cleanup(httpx.ResetTransport)
	return mt
}

// Stub registers a synthetic JSON response for method + path prefix.
// Later registrations win over earlier ones, so a test can override a
// default stub for a single case.
func (mt *MockTransport) Stub(method, path string, status int, body string) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, stub{method: method, path: path, status: status, body: body})
}

// StubWithHeader is Stub plus extra response headers (e.g. Content-Disposition).
func (mt *MockTransport) StubWithHeader(method, path string, status int, body string, header http.Header) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, stub{method: method, path: path, status: status, body: body, header: header})
}

// StubError makes matching requests fail at the transport level, simulating
// an offline backend.
func (mt *MockTransport) StubError(method, path string, err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, stub{method: method, path: path, err: err})
}

// RoundTrip records the request and answers from the stub table.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(raw)
	}

	mt.mu.Lock()
	mt.calls = append(mt.calls, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   body,
	})

	var match *stub
	for i := len(mt.stubs) - 1; i >= 0; i-- {
		s := &mt.stubs[i]
		if s.method != "" && s.method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.Path, s.path) {
			continue
		}
		match = s
		break
	}
	mt.mu.Unlock()

	if match == nil {
		return jsonResponse(req, http.StatusNotFound, `{"detail":"no stub configured"}`, nil), nil
	}
	if match.err != nil {
		return nil, match.err
	}
	return jsonResponse(req, match.status, match.body, match.header), nil
}

// Calls returns a copy of everything recorded so far.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]Call, len(mt.calls))
	copy(out, mt.calls)
	return out
}

// CallCount counts recorded requests matching method and path prefix.
// Empty method matches any.
func (mt *MockTransport) CallCount(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	n := 0
	for _, c := range mt.calls {
		if method != "" && c.Method != method {
			continue
		}
		if strings.HasPrefix(c.Path, path) {
			n++
		}
	}
	return n
}

// TotalCalls is the number of requests that reached the transport.
func (mt *MockTransport) TotalCalls() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.calls)
}

func jsonResponse(req *http.Request, status int, body string, header http.Header) *http.Response {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     h,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}
