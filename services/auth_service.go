package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/repository"
)

// ITokenService abstracts token generation for the auth service
type ITokenService interface {
	Generate(user *models.User) (string, error)
}

// AuthService handles registration and credential verification
type AuthService struct {
	userRepo repository.UserRepository
	tokens   ITokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens ITokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new active, non-privileged user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, apperrors.New(400, "A user must have a username", nil)
	}
	if password == "" {
		return nil, apperrors.New(400, "A user must have a password", nil)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.New(400, "Username already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(400, "Username already exists", nil)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token for the user.
// Inactive users cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, apperrors.ErrInactiveUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, user, nil
}
