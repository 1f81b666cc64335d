package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService handles account registration and login.
type AuthService struct {
	userRepo repositories.UserRepo
	jwt      *auth.JWTService
}

// NewAuthService creates an auth service.
func NewAuthService(userRepo repositories.UserRepo, jwt *auth.JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt}
}

// Register creates an account and returns a signed token.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	businessType := models.BusinessType(req.BusinessType)
	switch businessType {
	case models.BusinessManufacturing, models.BusinessService, models.BusinessTrading, models.BusinessRetail:
	case "":
		businessType = models.BusinessRetail
	default:
		return nil, fmt.Errorf("invalid business type: %s", req.BusinessType)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		BusinessType: businessType,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
		IssuedAt:  time.Now(),
	}, nil
}
