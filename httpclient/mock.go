package httpclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
)

// MockResponse represents a canned HTTP response.
type MockResponse struct {
	StatusCode int
	Body       []byte
}

// MockClient implements Client for tests. Responses are matched by URL
// suffix; every request is recorded for assertion.
type MockClient struct {
	mu       sync.Mutex
	routes   map[string]MockResponse
	failWith error
	requests []*Request
}

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{routes: make(map[string]MockResponse)}
}

// RegisterResponse registers a canned response for a URL suffix.
func (m *MockClient) RegisterResponse(urlSuffix string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[urlSuffix] = resp
}

// FailWith makes every Send return err, simulating a transport failure.
func (m *MockClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Requests returns all requests seen so far, in order.
func (m *MockClient) Requests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Request(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil.
func (m *MockClient) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Send implements the Client interface.
func (m *MockClient) Send(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.failWith != nil {
		return nil, m.failWith
	}
	for route, resp := range m.routes {
		if strings.HasSuffix(strings.SplitN(req.URL, "?", 2)[0], route) {
			return &Response{StatusCode: resp.StatusCode, Body: resp.Body}, nil
		}
	}
	return &Response{StatusCode: http.StatusNotFound, Body: []byte("Not Found")}, nil
}

// ErrConnectionRefused is a convenience transport error for tests.
var ErrConnectionRefused = errors.New("dial tcp: connection refused")
