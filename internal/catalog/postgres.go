package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore implements Store on top of a Postgres database.
//
// Expected schema:
//
//	CREATE TABLE products (
//	    id    TEXT PRIMARY KEY,
//	    name  TEXT NOT NULL,
//	    stock INTEGER NOT NULL CHECK (stock >= 0),
//	    price NUMERIC(12,2) NOT NULL
//	);
//	CREATE TABLE payment_methods (
//	    id    TEXT PRIMARY KEY,
//	    label TEXT NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres-backed catalog store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SetProduct(p *Product) error {
	if p.ID == "" {
		return ErrEmptyID
	}
	_, err := s.db.Exec(`
		INSERT INTO products (id, name, stock, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, stock = EXCLUDED.stock, price = EXCLUDED.price`,
		p.ID, p.Name, p.Stock, p.Price)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReadProduct(id string) (*Product, error) {
	var p Product
	err := s.db.QueryRow(`SELECT id, name, stock, price FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Stock, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading product: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) AllProducts() ([]*Product, error) {
	rows, err := s.db.Query(`SELECT id, name, stock, price FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) DeleteProduct(id string) error {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock issues a single conditional UPDATE so the stock check and the
// decrement happen under the database's row lock. Zero affected rows means
// either the product does not exist or its stock is below quantity; the two
// cases are told apart with a follow-up read.
func (s *PostgresStore) DecrementStock(id string, quantity int) error {
	res, err := s.db.Exec(`
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1`,
		quantity, id)
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.ReadProduct(id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

func (s *PostgresStore) SetPaymentMethod(pm *PaymentMethod) error {
	if pm.ID == "" {
		return ErrEmptyID
	}
	_, err := s.db.Exec(`
		INSERT INTO payment_methods (id, label)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label`,
		pm.ID, pm.Label)
	if err != nil {
		return fmt.Errorf("saving payment method: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReadPaymentMethod(id string) (*PaymentMethod, error) {
	var pm PaymentMethod
	err := s.db.QueryRow(`SELECT id, label FROM payment_methods WHERE id = $1`, id).
		Scan(&pm.ID, &pm.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading payment method: %w", err)
	}
	return &pm, nil
}

func (s *PostgresStore) AllPaymentMethods() ([]*PaymentMethod, error) {
	rows, err := s.db.Query(`SELECT id, label FROM payment_methods ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]*PaymentMethod, 0)
	for rows.Next() {
		var pm PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Label); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}
		methods = append(methods, &pm)
	}
	return methods, rows.Err()
}

func (s *PostgresStore) DeletePaymentMethod(id string) error {
	res, err := s.db.Exec(`DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting payment method: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}
