package users

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewLocalStorage(), zaptest.NewLogger(t))
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser("Ana", "ana@example.com", "ana", "s3cret")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("expected password to be stored hashed")
	}

	if _, err := svc.Authenticate("ana", "s3cret"); err != nil {
		t.Errorf("expected correct password to authenticate, got %v", err)
	}
	if _, err := svc.Authenticate("ana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateUser("Ana", "ana@example.com", "ana", "s3cret"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := svc.CreateUser("Other", "ana@example.com", "other", "pw"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreateUser_RequiredFields(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.CreateUser("", "a@b.c", "a", "pw"); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.CreateUser("Ana", "a@b.c", "a", ""); err == nil {
		t.Error("expected error for missing password")
	}
}

func TestUpdateUser(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser("Ana", "ana@example.com", "ana", "s3cret")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := svc.CreateUser("Bea", "bea@example.com", "bea", "pw"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	// Taking another user's email is rejected.
	if _, err := svc.UpdateUser(user.ID, "", "bea@example.com", ""); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	updated, err := svc.UpdateUser(user.ID, "Ana María", "anamaria@example.com", "newpw")
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Name != "Ana María" || updated.Email != "anamaria@example.com" {
		t.Errorf("unexpected user after update: %+v", updated)
	}
	if _, err := svc.Authenticate("ana", "newpw"); err != nil {
		t.Errorf("expected new password to authenticate, got %v", err)
	}

	if _, err := svc.UpdateUser("missing", "X", "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchUsersByName(t *testing.T) {
	svc := newTestService(t)

	for _, u := range []struct{ name, email, username string }{
		{"Ana García", "ana@example.com", "ana"},
		{"Beatriz García", "bea@example.com", "bea"},
		{"Carlos López", "carlos@example.com", "carlos"},
	} {
		if _, err := svc.CreateUser(u.name, u.email, u.username, "pw"); err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
	}

	matches, err := svc.SearchUsersByName("garcía")
	if err != nil {
		t.Fatalf("SearchUsersByName returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestDeleteUser(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser("Ana", "ana@example.com", "ana", "s3cret")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if err := svc.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := svc.DeleteUser(user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
