package testserver

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"invoicegen-cli/httpclient"
)

// Transport implements httpclient.Client by feeding requests straight
// into the fiber app, so SDK tests run against the fake backend with no
// listener or port.
type Transport struct {
	app interface {
		Test(req *http.Request, msTimeout ...int) (*http.Response, error)
	}
}

// Client returns a transport wired to this server.
func (s *Server) Client() httpclient.Client {
	return &Transport{app: s.app}
}

func (t *Transport) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	if req.Body != nil {
		ct := req.ContentType
		if ct == "" {
			ct = "application/json"
		}
		httpReq.Header.Set("Content-Type", ct)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.app.Test(httpReq, -1)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &httpclient.Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
