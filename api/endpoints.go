package api

// Paths exposed by the remote invoice service. The base URL is fixed at
// startup; these are joined onto it. Note the read inconsistency kept
// for backend compatibility: listing all invoices is a GET while the
// by-customer query is a POST.
const (
	signupPath         = "/home/signup"
	loginPath          = "/home/login"
	createInvoicePath  = "/invoice/create-invoice"
	getAllInvoicesPath = "/invoice/get-all-invoice"
	byCustomerPath     = "/invoice/by-customer"
	updateInvoicePath  = "/invoice/update"
	deleteInvoicePath  = "/invoice/delete"
)
