package api

import "invoicegen-cli/models"

// Result is the normalized outcome every operation returns. Transport
// failures, non-2xx statuses and malformed responses all collapse into
// Success=false with a human-readable message; nothing escapes the
// client boundary as an error, so callers never need recovery logic.
type Result struct {
	Success bool
	Message string
}

func success(message string) Result {
	return Result{Success: true, Message: message}
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// InvoicesResult carries a fetched collection alongside the outcome.
type InvoicesResult struct {
	Result
	Invoices []models.Invoice
}

// LoginResult carries the authenticated identity alongside the outcome.
// By the time the caller sees Success=true the session has already been
// persisted; the fields here are for immediate display.
type LoginResult struct {
	Result
	Token    string
	UserName string
	Email    string
}
