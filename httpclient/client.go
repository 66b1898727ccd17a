package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// Request represents an HTTP request.
type Request struct {
	Method      string
	URL         string
	Headers     map[string]string
	ContentType string
	Body        []byte
}

// Response represents an HTTP response. Non-2xx statuses are returned as
// responses, not errors: the caller owns the status mapping.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client interface for making HTTP requests.
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// DefaultClient implements Client on top of net/http.
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a DefaultClient. A zero timeout disables the
// per-request deadline.
func NewDefaultClient(timeout time.Duration) *DefaultClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &DefaultClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Send makes an HTTP request and returns the response.
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	if req.Body != nil {
		httpReq.ContentLength = int64(len(req.Body))
		ct := req.ContentType
		if ct == "" {
			ct = "application/json"
		}
		httpReq.Header.Set("Content-Type", ct)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
