package catalog

import (
	"errors"
	"sync"
)

// ErrProductNotFound is returned when a product with the given ID is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrPaymentMethodNotFound is returned when a payment method with the given ID is not found.
var ErrPaymentMethodNotFound = errors.New("payment method not found")

// ErrInsufficientStock is returned when a stock decrement would drive a
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrEmptyID is returned when trying to store a record with an empty ID.
var ErrEmptyID = errors.New("empty record ID")

// Store is the main interface for the catalog storage layer. It holds the
// product and payment-method reference data consumed by the sales engine.
//
// DecrementStock is the single mutation the sales engine performs on catalog
// data: an atomic check-and-decrement. Implementations must guarantee that
// concurrent decrements of the same product never drive its stock below zero,
// and that decrements of different products do not serialize on each other.
type Store interface {
	SetProduct(p *Product) error
	ReadProduct(id string) (*Product, error)
	AllProducts() ([]*Product, error)
	DeleteProduct(id string) error
	DecrementStock(id string, quantity int) error

	SetPaymentMethod(pm *PaymentMethod) error
	ReadPaymentMethod(id string) (*PaymentMethod, error)
	AllPaymentMethods() ([]*PaymentMethod, error)
	DeletePaymentMethod(id string) error
}

// LocalStorage provides an in-memory implementation of Store, used when no
// database is configured and as the storage backend in tests.
type LocalStorage struct {
	mu             sync.RWMutex
	products       map[string]*Product
	paymentMethods map[string]*PaymentMethod

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewLocalStorage instantiates a new LocalStorage with empty maps.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		products:       map[string]*Product{},
		paymentMethods: map[string]*PaymentMethod{},
		locks:          map[string]*sync.Mutex{},
	}
}

// Returns ErrEmptyID if the product has an empty ID.
func (l *LocalStorage) SetProduct(p *Product) error {
	if p.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *p
	l.products[p.ID] = &cp
	return nil
}

// ReadProduct retrieves a product by ID.
// Returns ErrProductNotFound if the product is not found.
func (l *LocalStorage) ReadProduct(id string) (*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// AllProducts retrieves every product in the catalog.
func (l *LocalStorage) AllProducts() ([]*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	products := make([]*Product, 0, len(l.products))
	for _, p := range l.products {
		cp := *p
		products = append(products, &cp)
	}
	return products, nil
}

// DeleteProduct removes a product by ID.
func (l *LocalStorage) DeleteProduct(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(l.products, id)
	return nil
}

// productLock returns the mutex serializing stock mutations of one product.
// Locks for distinct products are independent, so decrements of different
// products do not contend.
func (l *LocalStorage) productLock(id string) *sync.Mutex {
	l.lockMu.Lock()
	defer l.lockMu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// DecrementStock atomically checks and decrements a product's stock.
// Returns ErrInsufficientStock when fewer than quantity units are available;
// the stock is left untouched in that case.
func (l *LocalStorage) DecrementStock(id string, quantity int) error {
	lock := l.productLock(id)
	lock.Lock()
	defer lock.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.products[id]
	if !ok {
		return ErrProductNotFound
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// Returns ErrEmptyID if the payment method has an empty ID.
func (l *LocalStorage) SetPaymentMethod(pm *PaymentMethod) error {
	if pm.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *pm
	l.paymentMethods[pm.ID] = &cp
	return nil
}

// ReadPaymentMethod retrieves a payment method by ID.
// Returns ErrPaymentMethodNotFound if the payment method is not found.
func (l *LocalStorage) ReadPaymentMethod(id string) (*PaymentMethod, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pm, ok := l.paymentMethods[id]
	if !ok {
		return nil, ErrPaymentMethodNotFound
	}
	cp := *pm
	return &cp, nil
}

// AllPaymentMethods retrieves every payment method.
func (l *LocalStorage) AllPaymentMethods() ([]*PaymentMethod, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	methods := make([]*PaymentMethod, 0, len(l.paymentMethods))
	for _, pm := range l.paymentMethods {
		cp := *pm
		methods = append(methods, &cp)
	}
	return methods, nil
}

// DeletePaymentMethod removes a payment method by ID.
func (l *LocalStorage) DeletePaymentMethod(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.paymentMethods[id]; !ok {
		return ErrPaymentMethodNotFound
	}
	delete(l.paymentMethods, id)
	return nil
}
