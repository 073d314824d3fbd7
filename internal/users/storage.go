package users

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when a user with the given ID is not found.
var ErrNotFound = errors.New("user not found")

// ErrEmptyID is returned when trying to store a user with an empty ID.
var ErrEmptyID = errors.New("empty user ID")

// Storage is the main interface for the user storage layer.
type Storage interface {
	Set(user *User) error
	Read(id string) (*User, error)
	ReadByEmail(email string) (*User, error)
	ReadByUsername(username string) (*User, error)
	GetAll() ([]*User, error)
	Delete(id string) error
	SearchByName(text string) ([]*User, error)
}

// LocalStorage provides an in-memory implementation of Storage.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]*User
}

// NewLocalStorage instantiates a new LocalStorage for users with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*User{},
	}
}

// Returns ErrEmptyID if the user has an empty ID.
func (l *LocalStorage) Set(user *User) error {
	if user.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *user
	l.m[user.ID] = &cp
	return nil
}

// Read retrieves a user by ID.
// Returns ErrNotFound if the user is not found.
func (l *LocalStorage) Read(id string) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	u, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// ReadByEmail retrieves a user by email.
func (l *LocalStorage) ReadByEmail(email string) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, u := range l.m {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// ReadByUsername retrieves a user by username.
func (l *LocalStorage) ReadByUsername(username string) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, u := range l.m {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// GetAll retrieves all users.
func (l *LocalStorage) GetAll() ([]*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	all := make([]*User, 0, len(l.m))
	for _, u := range l.m {
		cp := *u
		all = append(all, &cp)
	}
	return all, nil
}

// Delete removes a user by ID.
func (l *LocalStorage) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}

// SearchByName retrieves users whose name contains the given text.
func (l *LocalStorage) SearchByName(text string) ([]*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	matches := make([]*User, 0)
	for _, u := range l.m {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(text)) {
			cp := *u
			matches = append(matches, &cp)
		}
	}
	return matches, nil
}
