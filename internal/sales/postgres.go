package sales

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PostgresLedger implements Ledger on top of a Postgres database.
//
// Expected schema:
//
//	CREATE TABLE sales (
//	    id                TEXT PRIMARY KEY,
//	    product_id        TEXT NOT NULL,
//	    payment_method_id TEXT NOT NULL,
//	    quantity          INTEGER NOT NULL CHECK (quantity > 0),
//	    unit_price        NUMERIC(12,2) NOT NULL,
//	    date              DATE NOT NULL
//	);
type PostgresLedger struct {
	db *sql.DB
}

// NewPostgresLedger creates a new Postgres-backed sale ledger.
func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

const saleColumns = `id, product_id, payment_method_id, quantity, unit_price, date`

func (l *PostgresLedger) Set(sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	_, err := l.db.Exec(`
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET product_id = EXCLUDED.product_id,
		              payment_method_id = EXCLUDED.payment_method_id,
		              quantity = EXCLUDED.quantity,
		              unit_price = EXCLUDED.unit_price,
		              date = EXCLUDED.date`,
		sale.ID, sale.ProductID, sale.PaymentMethodID, sale.Quantity, sale.UnitPrice, sale.Date)
	if err != nil {
		return fmt.Errorf("saving sale: %w", err)
	}
	return nil
}

func (l *PostgresLedger) Read(id string) (*Sale, error) {
	row := l.db.QueryRow(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	return scanSale(row)
}

func (l *PostgresLedger) Exists(id string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM sales WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking sale existence: %w", err)
	}
	return exists, nil
}

func (l *PostgresLedger) Delete(id string) error {
	res, err := l.db.Exec(`DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (l *PostgresLedger) GetAll() ([]*Sale, error) {
	return l.query(`SELECT ` + saleColumns + ` FROM sales ORDER BY date, id`)
}

func (l *PostgresLedger) FindByProduct(productID string) ([]*Sale, error) {
	return l.query(`SELECT `+saleColumns+` FROM sales WHERE product_id = $1 ORDER BY date, id`, productID)
}

func (l *PostgresLedger) FindByPaymentMethod(paymentMethodID string) ([]*Sale, error) {
	return l.query(`SELECT `+saleColumns+` FROM sales WHERE payment_method_id = $1 ORDER BY date, id`, paymentMethodID)
}

func (l *PostgresLedger) FindByDate(date Date) ([]*Sale, error) {
	return l.query(`SELECT `+saleColumns+` FROM sales WHERE date = $1 ORDER BY id`, date)
}

func (l *PostgresLedger) FindByDateRange(from, to Date) ([]*Sale, error) {
	return l.query(`SELECT `+saleColumns+` FROM sales WHERE date BETWEEN $1 AND $2 ORDER BY date, id`, from, to)
}

func (l *PostgresLedger) SumAmountByProductAndDateRange(productID string, from, to Date) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := l.db.QueryRow(`
		SELECT SUM(quantity * unit_price)
		FROM sales
		WHERE product_id = $1 AND date BETWEEN $2 AND $3`,
		productID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing sale amounts: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (l *PostgresLedger) SumQuantityByProduct(productID string) (int, error) {
	var quantity int
	err := l.db.QueryRow(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE product_id = $1`,
		productID).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("summing sale quantities: %w", err)
	}
	return quantity, nil
}

func (l *PostgresLedger) query(q string, args ...interface{}) ([]*Sale, error) {
	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	matches := make([]*Sale, 0)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.PaymentMethodID, &s.Quantity, &s.UnitPrice, &s.Date); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		matches = append(matches, &s)
	}
	return matches, rows.Err()
}

func scanSale(row *sql.Row) (*Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.PaymentMethodID, &s.Quantity, &s.UnitPrice, &s.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading sale: %w", err)
	}
	return &s, nil
}
