package service

import (
	"context"
	"testing"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/config"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db), config.JWT{
		Secret:   "test-secret",
		TTLHours: 1,
	})
}

func TestUserRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	token, err := svc.Register(ctx, "Asha", "asha@example.com", "s3cret", "1 Spice Street")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != string(model.RoleUser) {
		t.Fatalf("role claim = %v, want user", claims["role"])
	}

	if _, err := svc.Login(ctx, "asha@example.com", "s3cret"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
}

func TestUserRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	if _, err := svc.Register(ctx, "Asha", "asha@example.com", "s3cret", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	_, err := svc.Register(ctx, "Imposter", "asha@example.com", "other", "")
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("err = %v, want invalid_input", err)
	}
}

func TestUserLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	if _, err := svc.Register(ctx, "Asha", "asha@example.com", "s3cret", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "wrong"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("wrong password err = %v, want unauthorized", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("unknown email err = %v, want unauthorized", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := NewUserService(repo, config.JWT{Secret: "test-secret", TTLHours: 1})
	user := seedUser(t, db, "old address")

	updated, err := svc.UpdateProfile(ctx, user.ID, "New Name", "new address")
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Name != "New Name" || updated.Address != "new address" {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if updated.Email != user.Email {
		t.Fatalf("email changed: %q", updated.Email)
	}
}

func TestEnsureManagerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := NewUserService(repo, config.JWT{Secret: "test-secret", TTLHours: 1})

	if err := svc.EnsureManager(ctx, "Boss", "boss@example.com", "adminpass"); err != nil {
		t.Fatalf("EnsureManager error: %v", err)
	}
	if err := svc.EnsureManager(ctx, "Boss", "boss@example.com", "adminpass"); err != nil {
		t.Fatalf("second EnsureManager error: %v", err)
	}

	manager, err := repo.FindByEmail(ctx, "boss@example.com")
	if err != nil {
		t.Fatalf("find manager: %v", err)
	}
	if manager.Role != model.RoleManager {
		t.Fatalf("role = %s, want manager", manager.Role)
	}

	if _, err := svc.Login(ctx, "boss@example.com", "adminpass"); err != nil {
		t.Fatalf("manager login: %v", err)
	}
}
