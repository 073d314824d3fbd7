package sales

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"panda_pos/internal/catalog"
)

// ErrInvalidSale is returned when a sale attempt carries invalid input
// (non-positive quantity, missing or negative unit price).
var ErrInvalidSale = errors.New("invalid sale")

// ErrInvalidRange is returned when a date-range query starts after it ends.
var ErrInvalidRange = errors.New("start date is after end date")

// ErrTransactionFailed is returned when persistence fails during commit. The
// stock decrement already applied is NOT compensated; see the repository
// design notes.
var ErrTransactionFailed = errors.New("sale transaction failed")

// Service implements the sale transaction engine plus the read-only query
// facade over the ledger.
type Service struct {
	catalog catalog.Store
	ledger  Ledger
	logger  *zap.Logger
}

// NewService creates a new sales Service.
func NewService(catalogStore catalog.Store, ledger Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		catalog: catalogStore,
		ledger:  ledger,
		logger:  logger,
	}
}

// CreateSaleInput is a proposed sale. UnitPrice must be supplied by the
// caller; the engine never auto-fills it from the catalog price. Date
// defaults to today when nil.
type CreateSaleInput struct {
	ProductID       string
	PaymentMethodID string
	Quantity        int
	UnitPrice       *decimal.Decimal
	Date            *Date
}

// UpdateSaleInput carries the replacement fields for an existing sale.
type UpdateSaleInput struct {
	ProductID       string
	PaymentMethodID string
	Quantity        int
	UnitPrice       decimal.Decimal
	Date            Date
}

// AttemptSale validates a proposed sale against the catalog and current
// stock, atomically decrements the stock, and appends the sale to the ledger.
//
// Outcomes, matched with errors.Is:
//   - catalog.ErrProductNotFound / catalog.ErrPaymentMethodNotFound when a
//     reference does not resolve;
//   - ErrInvalidSale on bad input;
//   - catalog.ErrInsufficientStock when stock < quantity (stock untouched,
//     never partially fulfilled);
//   - ErrTransactionFailed on a persistence error during commit.
func (s *Service) AttemptSale(in CreateSaleInput) (*Sale, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidSale)
	}
	if in.UnitPrice == nil {
		return nil, fmt.Errorf("%w: unit price is required", ErrInvalidSale)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidSale)
	}

	product, err := s.catalog.ReadProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := s.catalog.ReadPaymentMethod(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	// Atomic check-and-decrement: the store serializes this per product, so
	// two concurrent attempts can never both pass a stale stock check.
	if err := s.catalog.DecrementStock(product.ID, in.Quantity); err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) {
			s.logger.Info("sale rejected, insufficient stock",
				zap.String("product_id", product.ID),
				zap.Int("requested", in.Quantity),
			)
			return nil, err
		}
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error("failed to decrement stock", zap.String("product_id", product.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	date := Today()
	if in.Date != nil {
		date = *in.Date
	}

	sale := &Sale{
		ID:              uuid.NewString(),
		ProductID:       product.ID,
		PaymentMethodID: paymentMethod.ID,
		Quantity:        in.Quantity,
		UnitPrice:       *in.UnitPrice,
		Date:            date,
	}

	if err := s.ledger.Set(sale); err != nil {
		// The stock decrement is already durable at this point and is not
		// rolled back.
		s.logger.Error("failed to save sale after stock decrement",
			zap.String("sale_id", sale.ID),
			zap.String("product_id", product.ID),
			zap.Int("quantity", in.Quantity),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.logger.Info("sale committed",
		zap.String("sale_id", sale.ID),
		zap.String("product_id", product.ID),
		zap.String("payment_method_id", paymentMethod.ID),
		zap.Int("quantity", sale.Quantity),
		zap.String("total", sale.Total().String()),
	)
	return sale, nil
}

// GetSale retrieves a sale by ID.
func (s *Service) GetSale(id string) (*Sale, error) {
	return s.ledger.Read(id)
}

// ListSales retrieves every committed sale.
func (s *Service) ListSales() ([]*Sale, error) {
	return s.ledger.GetAll()
}

// UpdateSale overwrites an existing sale's fields. It does not re-validate
// stock and does not re-adjust the stock decremented when the sale was
// committed; references are taken as passed in.
func (s *Service) UpdateSale(id string, in UpdateSaleInput) (*Sale, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidSale)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidSale)
	}

	sale, err := s.ledger.Read(id)
	if err != nil {
		return nil, err
	}

	sale.ProductID = in.ProductID
	sale.PaymentMethodID = in.PaymentMethodID
	sale.Quantity = in.Quantity
	sale.UnitPrice = in.UnitPrice
	sale.Date = in.Date

	if err := s.ledger.Set(sale); err != nil {
		s.logger.Error("failed to update sale", zap.String("sale_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return sale, nil
}

// DeleteSale removes a sale from the ledger. Stock is not restored.
func (s *Service) DeleteSale(id string) error {
	exists, err := s.ledger.Exists(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	if !exists {
		return ErrNotFound
	}
	return s.ledger.Delete(id)
}

// SalesByProduct retrieves the sales of one product.
func (s *Service) SalesByProduct(productID string) ([]*Sale, error) {
	return s.ledger.FindByProduct(productID)
}

// SalesByPaymentMethod retrieves the sales paid with one payment method.
func (s *Service) SalesByPaymentMethod(paymentMethodID string) ([]*Sale, error) {
	return s.ledger.FindByPaymentMethod(paymentMethodID)
}

// SalesByDate retrieves the sales of one exact date.
func (s *Service) SalesByDate(date Date) ([]*Sale, error) {
	return s.ledger.FindByDate(date)
}

// SalesByDateRange retrieves the sales within [from, to], inclusive.
// Returns ErrInvalidRange when from is after to, regardless of data.
func (s *Service) SalesByDateRange(from, to Date) ([]*Sale, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	return s.ledger.FindByDateRange(from, to)
}

// SalesToday retrieves the sales of the current date in the reference zone.
func (s *Service) SalesToday() ([]*Sale, error) {
	return s.ledger.FindByDate(Today())
}

// TotalByProductAndDateRange sums quantity × unit price over a product's
// sales within [from, to]. Returns zero when nothing matches.
func (s *Service) TotalByProductAndDateRange(productID string, from, to Date) (decimal.Decimal, error) {
	if from.After(to) {
		return decimal.Zero, ErrInvalidRange
	}
	return s.ledger.SumAmountByProductAndDateRange(productID, from, to)
}

// QuantityByProduct sums the quantities sold of one product across all time.
func (s *Service) QuantityByProduct(productID string) (int, error) {
	return s.ledger.SumQuantityByProduct(productID)
}
