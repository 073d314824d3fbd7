package users

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail is returned when creating or updating a user with an
// email another user already holds.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrInvalidCredentials is returned when a login attempt does not match a
// stored user and password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service provides user account management on a Storage backend. Passwords
// are bcrypt-hashed before they are stored.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new user Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreateUser registers a new user with a hashed password.
func (s *Service) CreateUser(name, email, username, password string) (*User, error) {
	if name == "" || email == "" || username == "" || password == "" {
		return nil, fmt.Errorf("name, email, username and password are required")
	}
	if _, err := s.storage.ReadByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.storage.Set(user); err != nil {
		s.logger.Error("failed to save user", zap.String("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(id string) (*User, error) {
	return s.storage.Read(id)
}

// GetUserByEmail retrieves a user by email.
func (s *Service) GetUserByEmail(email string) (*User, error) {
	return s.storage.ReadByEmail(email)
}

// GetUserByUsername retrieves a user by username.
func (s *Service) GetUserByUsername(username string) (*User, error) {
	return s.storage.ReadByUsername(username)
}

// ListUsers retrieves all users.
func (s *Service) ListUsers() ([]*User, error) {
	return s.storage.GetAll()
}

// UpdateUser overwrites a user's name and email, re-checking email uniqueness
// when it changes, and re-hashes the password when a new one is supplied.
func (s *Service) UpdateUser(id, name, email, password string) (*User, error) {
	user, err := s.storage.Read(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		if _, err := s.storage.ReadByEmail(email); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.storage.Set(user); err != nil {
		s.logger.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *Service) DeleteUser(id string) error {
	return s.storage.Delete(id)
}

// SearchUsersByName retrieves users whose name contains the given text.
func (s *Service) SearchUsersByName(text string) ([]*User, error) {
	return s.storage.SearchByName(text)
}

// Authenticate verifies a username/password pair and returns the matching
// user. Returns ErrInvalidCredentials for an unknown user or a wrong
// password, without distinguishing the two.
func (s *Service) Authenticate(username, password string) (*User, error) {
	user, err := s.storage.ReadByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
