package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/config"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, name, email, password, address string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetMe(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, name, address string) (*model.User, error)
	EnsureManager(ctx context.Context, name, email, password string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWT
}

func NewUserService(userRepo repository.UserRepository, jwtCfg config.JWT) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, name, email, password, address string) (string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", apperr.New(apperr.KindInvalidInput, "email %s is already registered", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Address:      address,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.signToken(user)
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	return s.signToken(user)
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, findErr(err, "user")
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID, name, address string) (*model.User, error) {
	fields := map[string]interface{}{}
	if name != "" {
		fields["name"] = name
	}
	if address != "" {
		fields["address"] = address
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, findErr(err, "user")
		}
	}

	return s.GetMe(ctx, userID)
}

// EnsureManager seeds the catalog-manager account on startup when it does not
// exist yet.
func (s *userServiceImpl) EnsureManager(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check manager account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash manager password: %w", err)
	}

	return s.userRepo.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleManager,
	})
}

func (s *userServiceImpl) signToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Duration(s.jwtCfg.TTLHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}
