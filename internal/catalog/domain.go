package catalog

import "github.com/shopspring/decimal"

// Product represents an item of the product catalog. Stock is the number of
// units currently available for sale.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

// PaymentMethod represents a way a sale can be paid (cash, card, ...).
// Read-only reference data from the sales engine's perspective.
type PaymentMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
