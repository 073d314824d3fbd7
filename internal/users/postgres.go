package users

import (
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStorage implements Storage on top of a Postgres database.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id            TEXT PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    email         TEXT NOT NULL UNIQUE,
//	    username      TEXT NOT NULL UNIQUE,
//	    password_hash TEXT NOT NULL
//	);
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new Postgres-backed user store.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const userColumns = `id, name, email, username, password_hash`

func (s *PostgresStorage) Set(user *User) error {
	if user.ID == "" {
		return ErrEmptyID
	}
	_, err := s.db.Exec(`
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name,
		              email = EXCLUDED.email,
		              username = EXCLUDED.username,
		              password_hash = EXCLUDED.password_hash`,
		user.ID, user.Name, user.Email, user.Username, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Read(id string) (*User, error) {
	return s.readBy(`id = $1`, id)
}

func (s *PostgresStorage) ReadByEmail(email string) (*User, error) {
	return s.readBy(`email = $1`, email)
}

func (s *PostgresStorage) ReadByUsername(username string) (*User, error) {
	return s.readBy(`username = $1`, username)
}

func (s *PostgresStorage) GetAll() ([]*User, error) {
	return s.query(`SELECT ` + userColumns + ` FROM users ORDER BY name`)
}

func (s *PostgresStorage) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
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

func (s *PostgresStorage) SearchByName(text string) ([]*User, error) {
	return s.query(`SELECT `+userColumns+` FROM users WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, text)
}

func (s *PostgresStorage) readBy(cond string, arg interface{}) (*User, error) {
	var u User
	err := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE `+cond, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) query(q string, args ...interface{}) ([]*User, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	matches := make([]*User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		matches = append(matches, &u)
	}
	return matches, rows.Err()
}
