package testserver

import (
	"sync"
	"time"
)

type user struct {
	UserName    string
	Email       string
	Password    []byte // bcrypt hash
	ContactNo   string
	CompanyName string
	Logo        []byte
}

type product struct {
	ProductName string
	Price       string
	Quantity    string
}

type invoice struct {
	ID                  int64
	CustomerName        string
	CustomerEmail       string
	CompanyOrIndividual string
	Products            []product
	TotalAmount         float64
	InvoiceDate         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// memoryStore backs the fake service. The real backend owns a
// database; here a couple of maps are plenty.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*user // keyed by email
	invoices map[int64]*invoice
	nextID   int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*user),
		invoices: make(map[int64]*invoice),
	}
}

func (s *memoryStore) addUser(u *user) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return false
	}
	s.users[u.Email] = u
	return true
}

func (s *memoryStore) findUser(email string) *user {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[email]
}

func (s *memoryStore) addInvoice(inv *invoice) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	inv.ID = s.nextID
	s.invoices[inv.ID] = inv
	return inv.ID
}

func (s *memoryStore) getInvoice(id int64) *invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoices[id]
}

func (s *memoryStore) listInvoices() []*invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*invoice, 0, len(s.invoices))
	for i := int64(1); i <= s.nextID; i++ {
		if inv, ok := s.invoices[i]; ok {
			out = append(out, inv)
		}
	}
	return out
}

func (s *memoryStore) deleteInvoice(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return false
	}
	delete(s.invoices, id)
	return true
}
