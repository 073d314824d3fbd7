package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides catalog management operations on a Store backend.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// CreateProduct registers a new product in the catalog.
func (s *Service) CreateProduct(name string, stock int, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if stock < 0 {
		return nil, fmt.Errorf("product stock must not be negative")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product price must not be negative")
	}

	p := &Product{
		ID:    uuid.NewString(),
		Name:  name,
		Stock: stock,
		Price: price,
	}
	if err := s.store.SetProduct(p); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(id string) (*Product, error) {
	return s.store.ReadProduct(id)
}

// ListProducts retrieves the whole product catalog.
func (s *Service) ListProducts() ([]*Product, error) {
	return s.store.AllProducts()
}

// UpdateProduct overwrites an existing product's name, stock and price.
func (s *Service) UpdateProduct(id, name string, stock int, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if stock < 0 {
		return nil, fmt.Errorf("product stock must not be negative")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product price must not be negative")
	}

	p, err := s.store.ReadProduct(id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.Stock = stock
	p.Price = price
	if err := s.store.SetProduct(p); err != nil {
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(id string) error {
	return s.store.DeleteProduct(id)
}

// CreatePaymentMethod registers a new payment method.
func (s *Service) CreatePaymentMethod(label string) (*PaymentMethod, error) {
	if label == "" {
		return nil, fmt.Errorf("payment method label must not be empty")
	}

	pm := &PaymentMethod{
		ID:    uuid.NewString(),
		Label: label,
	}
	if err := s.store.SetPaymentMethod(pm); err != nil {
		s.logger.Error("failed to save payment method", zap.String("payment_method_id", pm.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}

	s.logger.Info("payment method created", zap.String("payment_method_id", pm.ID), zap.String("label", pm.Label))
	return pm, nil
}

// GetPaymentMethod retrieves a payment method by ID.
func (s *Service) GetPaymentMethod(id string) (*PaymentMethod, error) {
	return s.store.ReadPaymentMethod(id)
}

// ListPaymentMethods retrieves every payment method.
func (s *Service) ListPaymentMethods() ([]*PaymentMethod, error) {
	return s.store.AllPaymentMethods()
}

// UpdatePaymentMethod overwrites an existing payment method's label.
func (s *Service) UpdatePaymentMethod(id, label string) (*PaymentMethod, error) {
	if label == "" {
		return nil, fmt.Errorf("payment method label must not be empty")
	}

	pm, err := s.store.ReadPaymentMethod(id)
	if err != nil {
		return nil, err
	}
	pm.Label = label
	if err := s.store.SetPaymentMethod(pm); err != nil {
		s.logger.Error("failed to update payment method", zap.String("payment_method_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	return pm, nil
}

// DeletePaymentMethod removes a payment method.
func (s *Service) DeletePaymentMethod(id string) error {
	return s.store.DeletePaymentMethod(id)
}
