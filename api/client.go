package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicegen-cli/config"
	"invoicegen-cli/httpclient"
	"invoicegen-cli/logger"
	"invoicegen-cli/models"
	"invoicegen-cli/session"
	"invoicegen-cli/validation"
)

// User-facing messages for the failure taxonomy. The auth and not-found
// strings are pinned: other clients of the same backend show them too.
const (
	msgAuthFailed   = "Authentication failed. Please login again."
	msgAccessDenied = "Access denied. You are not authorized to create invoices."
	msgNotFound     = "Invoice not found or access denied."
	msgNoProducts   = "No products provided"
)

// Client talks to the remote invoice service. It is stateless apart
// from the injected session store; one instance can serve every view.
type Client struct {
	baseURL string
	http    httpclient.Client
	store   session.Store
	log     *logger.Logger
	now     func() time.Time
}

// New builds a Client with the default transport.
func New(cfg config.Config, store session.Store, log *logger.Logger) *Client {
	return NewWithTransport(cfg.BaseURL, httpclient.NewDefaultClient(cfg.Timeout), store, log)
}

// NewWithTransport builds a Client over an explicit transport. Tests
// inject a mock or an in-process backend here.
func NewWithTransport(baseURL string, hc httpclient.Client, store session.Store, log *logger.Logger) *Client {
	if log == nil {
		log = logger.L
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

// authHeaders returns the bearer header for protected calls. The header
// is sent even when no token is stored; the backend answers 401 and the
// caller gets the re-login message. A warning flags the state locally.
func (c *Client) authHeaders() map[string]string {
	token := c.store.Token()
	if token == "" {
		c.log.Warnw("no auth token found, user may need to login again")
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// mutationHeaders adds an idempotency key on top of the bearer header
// so a retried create/update/delete cannot apply twice server-side.
func (c *Client) mutationHeaders() map[string]string {
	h := c.authHeaders()
	h["Idempotency-Key"] = uuid.NewString()
	return h
}

func httpErrorMessage(status int, body []byte) string {
	return fmt.Sprintf("HTTP error: status %d, message: %s", status, strings.TrimSpace(string(body)))
}

// Signup registers a new account: multipart body with the profile as a
// JSON `user` part and an optional `logo` file part. Unauthenticated.
func (c *Client) Signup(ctx context.Context, form validation.SignupForm, logo []byte, logoName string) Result {
	if err := form.Validate(); err != nil {
		return failure(err.Error())
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	userJSON, err := json.Marshal(form)
	if err != nil {
		return failure(err.Error())
	}
	if err := w.WriteField("user", string(userJSON)); err != nil {
		return failure(err.Error())
	}
	if len(logo) > 0 {
		part, err := w.CreateFormFile("logo", logoName)
		if err != nil {
			return failure(err.Error())
		}
		if _, err := part.Write(logo); err != nil {
			return failure(err.Error())
		}
	}
	if err := w.Close(); err != nil {
		return failure(err.Error())
	}

	c.log.Debugw("sending signup request", "url", c.baseURL+signupPath)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:      http.MethodPost,
		URL:         c.baseURL + signupPath,
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	})
	if err != nil {
		return failure(err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(httpErrorMessage(resp.StatusCode, resp.Body))
	}
	return success(strings.TrimSpace(string(resp.Body)))
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// Login exchanges credentials for a token. On a token-bearing success
// the session (token + profile) is persisted before the result is
// returned; this side effect is part of the operation's contract.
func (c *Client) Login(ctx context.Context, email, password string) LoginResult {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return LoginResult{Result: failure(err.Error())}
	}

	c.log.Debugw("sending login request", "url", c.baseURL+loginPath, "email", email)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + loginPath,
		Body:   body,
	})
	if err != nil {
		return LoginResult{Result: failure(err.Error())}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return LoginResult{Result: failure(httpErrorMessage(resp.StatusCode, resp.Body))}
	}

	var parsed loginResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return LoginResult{Result: failure("unexpected login response: " + err.Error())}
	}
	if parsed.Token != "" {
		if err := c.store.Save(parsed.Token, session.Profile{
			UserName: parsed.UserName,
			Email:    parsed.Email,
		}); err != nil {
			return LoginResult{Result: failure("could not persist session: " + err.Error())}
		}
		c.log.Debugw("auth token stored", "user", parsed.UserName)
	}
	return LoginResult{
		Result:   success(parsed.Message),
		Token:    parsed.Token,
		UserName: parsed.UserName,
		Email:    parsed.Email,
	}
}

// Logout clears the local session unconditionally. There is no remote
// call: the token simply stops being presented.
func (c *Client) Logout() Result {
	if err := c.store.Clear(); err != nil {
		return failure(err.Error())
	}
	return success("Logged out")
}

// CreateInvoice submits a new invoice. Empty lines fail fast without a
// network call. The total covers all supplied lines; filtering invalid
// ones is the caller's job (ValidProducts).
func (c *Client) CreateInvoice(ctx context.Context, customerName, customerEmail string, lines []models.LineItem, companyOrIndividual string) Result {
	if len(lines) == 0 {
		return failure(msgNoProducts)
	}
	if companyOrIndividual == "" {
		companyOrIndividual = "Individual"
	}

	payload := invoicePayload(customerName, customerEmail, companyOrIndividual, lines, c.now())
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(err.Error())
	}

	c.log.Debugw("sending create invoice request",
		"url", c.baseURL+createInvoicePath,
		"customer", customerName,
		"lines", len(lines),
	)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + createInvoicePath,
		Headers: c.mutationHeaders(),
		Body:    body,
	})
	if err != nil {
		return failure(err.Error())
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return failure(msgAuthFailed)
	case resp.StatusCode == http.StatusForbidden:
		return failure(msgAccessDenied)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return failure(httpErrorMessage(resp.StatusCode, resp.Body))
	}
	return success("Invoice created successfully")
}

// GetAllInvoices fetches the full remote collection.
func (c *Client) GetAllInvoices(ctx context.Context) InvoicesResult {
	c.log.Debugw("sending get all invoices request", "url", c.baseURL+getAllInvoicesPath)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     c.baseURL + getAllInvoicesPath,
		Headers: c.authHeaders(),
	})
	return c.parseInvoices(resp, err)
}

// GetInvoicesByCustomer fetches the invoices for one customer email.
// The backend models this read as a POST; preserved as-is.
func (c *Client) GetInvoicesByCustomer(ctx context.Context, customerEmail string) InvoicesResult {
	body, err := json.Marshal(map[string]string{"customerEmail": customerEmail})
	if err != nil {
		return InvoicesResult{Result: failure(err.Error())}
	}
	c.log.Debugw("sending invoices by customer request", "customer", customerEmail)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + byCustomerPath,
		Headers: c.authHeaders(),
		Body:    body,
	})
	return c.parseInvoices(resp, err)
}

func (c *Client) parseInvoices(resp *httpclient.Response, err error) InvoicesResult {
	if err != nil {
		return InvoicesResult{Result: failure(err.Error())}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return InvoicesResult{Result: failure(msgAuthFailed)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return InvoicesResult{Result: failure(httpErrorMessage(resp.StatusCode, resp.Body))}
	}
	var invoices []models.Invoice
	if err := json.Unmarshal(resp.Body, &invoices); err != nil {
		return InvoicesResult{Result: failure("unexpected invoice list response: " + err.Error())}
	}
	return InvoicesResult{Result: success(""), Invoices: invoices}
}

// UpdateInvoice replaces an invoice's customer fields and lines. Same
// payload shape as create, id embedded in the path, sent as PUT.
func (c *Client) UpdateInvoice(ctx context.Context, id int64, customerName, customerEmail string, lines []models.LineItem) Result {
	payload := invoicePayload(customerName, customerEmail, "Individual", lines, c.now())
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(err.Error())
	}

	url := fmt.Sprintf("%s%s/%d", c.baseURL, updateInvoicePath, id)
	c.log.Debugw("sending update invoice request", "url", url)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPut,
		URL:     url,
		Headers: c.mutationHeaders(),
		Body:    body,
	})
	if err != nil {
		return failure(err.Error())
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return failure(msgAuthFailed)
	case resp.StatusCode == http.StatusNotFound:
		return failure(msgNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return failure(httpErrorMessage(resp.StatusCode, resp.Body))
	}
	return success(strings.TrimSpace(string(resp.Body)))
}

// DeleteInvoice removes an invoice by id.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) Result {
	url := fmt.Sprintf("%s%s/%d", c.baseURL, deleteInvoicePath, id)
	c.log.Debugw("sending delete invoice request", "url", url)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: c.mutationHeaders(),
	})
	if err != nil {
		return failure(err.Error())
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return failure(msgAuthFailed)
	case resp.StatusCode == http.StatusNotFound:
		return failure(msgNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return failure(httpErrorMessage(resp.StatusCode, resp.Body))
	}
	return success(strings.TrimSpace(string(resp.Body)))
}
