package sales

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a sale with an empty ID.
var ErrEmptyID = errors.New("empty sale ID")

// Ledger is the main interface for the sales storage layer: the durable store
// of committed Sale records.
type Ledger interface {
	Set(sale *Sale) error
	Read(id string) (*Sale, error)
	Exists(id string) (bool, error)
	Delete(id string) error
	GetAll() ([]*Sale, error)
	FindByProduct(productID string) ([]*Sale, error)
	FindByPaymentMethod(paymentMethodID string) ([]*Sale, error)
	FindByDate(date Date) ([]*Sale, error)
	FindByDateRange(from, to Date) ([]*Sale, error)
	SumAmountByProductAndDateRange(productID string, from, to Date) (decimal.Decimal, error)
	SumQuantityByProduct(productID string) (int, error)
}

// LocalLedger provides an in-memory implementation of Ledger.
type LocalLedger struct {
	mu sync.RWMutex
	m  map[string]*Sale
}

// NewLocalLedger instantiates a new LocalLedger with an empty map.
func NewLocalLedger() *LocalLedger {
	return &LocalLedger{
		m: map[string]*Sale{},
	}
}

// Returns ErrEmptyID if the sale has an empty ID.
func (l *LocalLedger) Set(sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *sale
	l.m[sale.ID] = &cp
	return nil
}

// Read retrieves a sale by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalLedger) Read(id string) (*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// Exists reports whether a sale with the given ID is stored.
func (l *LocalLedger) Exists(id string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.m[id]
	return ok, nil
}

// Delete removes a sale by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}

// GetAll retrieves all sales, ordered by date then ID.
func (l *LocalLedger) GetAll() ([]*Sale, error) {
	return l.filter(func(*Sale) bool { return true })
}

// FindByProduct retrieves the sales of one product.
func (l *LocalLedger) FindByProduct(productID string) ([]*Sale, error) {
	return l.filter(func(s *Sale) bool { return s.ProductID == productID })
}

// FindByPaymentMethod retrieves the sales paid with one payment method.
func (l *LocalLedger) FindByPaymentMethod(paymentMethodID string) ([]*Sale, error) {
	return l.filter(func(s *Sale) bool { return s.PaymentMethodID == paymentMethodID })
}

// FindByDate retrieves the sales of one exact date.
func (l *LocalLedger) FindByDate(date Date) ([]*Sale, error) {
	return l.filter(func(s *Sale) bool { return s.Date.Equal(date) })
}

// FindByDateRange retrieves the sales within [from, to], inclusive.
func (l *LocalLedger) FindByDateRange(from, to Date) ([]*Sale, error) {
	return l.filter(func(s *Sale) bool { return s.Date.Between(from, to) })
}

// SumAmountByProductAndDateRange sums quantity × unit price over a product's
// sales within [from, to]. Returns zero when no sale matches.
func (l *LocalLedger) SumAmountByProductAndDateRange(productID string, from, to Date) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := decimal.Zero
	for _, s := range l.m {
		if s.ProductID == productID && s.Date.Between(from, to) {
			total = total.Add(s.Total())
		}
	}
	return total, nil
}

// SumQuantityByProduct sums the quantities of a product's sales across all
// time. Returns zero when the product has no sales.
func (l *LocalLedger) SumQuantityByProduct(productID string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	quantity := 0
	for _, s := range l.m {
		if s.ProductID == productID {
			quantity += s.Quantity
		}
	}
	return quantity, nil
}

func (l *LocalLedger) filter(keep func(*Sale) bool) ([]*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	matches := make([]*Sale, 0)
	for _, s := range l.m {
		if keep(s) {
			cp := *s
			matches = append(matches, &cp)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}
