package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"invoicegen-cli/httpclient"
)

func mustUser(t *testing.T, name, email, password string) *user {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &user{UserName: name, Email: email, Password: hash}
}

func signupAndLogin(t *testing.T, srv *Server) string {
	t.Helper()
	require.True(t, srv.st.addUser(mustUser(t, "Alice", "alice@x.com", "secret")))
	token, err := srv.generateJWT("alice@x.com")
	require.NoError(t, err)
	return token
}

func createBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"createInvoiceDto": map[string]any{
			"customerName":        "Bob",
			"customerEmail":       "bob@x.com",
			"companyOrIndividual": "Individual",
			"totalAmount":         10,
			"invoiceDate":         "2024-03-15",
		},
		"addProductsDto": []map[string]string{
			{"productName": "Pen", "price": "2.50", "quantity": "4"},
		},
	})
	require.NoError(t, err)
	return body
}

// A repeated Idempotency-Key must replay the stored response instead of
// applying the mutation twice.
func TestIdempotencyKeyReplay(t *testing.T) {
	srv := New()
	token := signupAndLogin(t, srv)
	transport := srv.Client()
	ctx := context.Background()

	req := &httpclient.Request{
		Method: http.MethodPost,
		URL:    "http://invoicegen.test/invoice/create-invoice",
		Headers: map[string]string{
			"Authorization":   "Bearer " + token,
			"Idempotency-Key": "fixed-key-1",
		},
		Body: createBody(t),
	}

	first, err := transport.Send(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := transport.Send(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.StatusCode, second.StatusCode)
	assert.Equal(t, first.Body, second.Body)

	assert.Len(t, srv.st.listInvoices(), 1)
}

func TestRejectsWrongSigningKey(t *testing.T) {
	srv := New()
	other := New() // different secret
	token, err := other.generateJWT("alice@x.com")
	require.NoError(t, err)

	resp, err := srv.Client().Send(context.Background(), &httpclient.Request{
		Method:  http.MethodGet,
		URL:     "http://invoicegen.test/invoice/get-all-invoice",
		Headers: map[string]string{"Authorization": "Bearer " + token},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateValidatesEnvelope(t *testing.T) {
	srv := New()
	token := signupAndLogin(t, srv)

	body, err := json.Marshal(map[string]any{
		"createInvoiceDto": map[string]any{"customerName": "", "customerEmail": "bad"},
		"addProductsDto":   []map[string]string{},
	})
	require.NoError(t, err)

	resp, err := srv.Client().Send(context.Background(), &httpclient.Request{
		Method:  http.MethodPost,
		URL:     "http://invoicegen.test/invoice/create-invoice",
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    body,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
