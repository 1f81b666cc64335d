// Package auth issues and validates the JWT tokens protecting the API.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// JWTService signs and validates HS256 access tokens.
type JWTService struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewJWTService creates a JWT service with a 24h token lifetime.
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{
		secretKey:     secretKey,
		tokenDuration: 24 * time.Hour,
	}
}

// GenerateToken signs an access token for the user.
func (s *JWTService) GenerateToken(userID uuid.UUID, email string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.tokenDuration.Seconds()), nil
}

// ValidateToken parses and validates an access token.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id in token: %w", err)
	}
	email, _ := claims["email"].(string)

	return &TokenClaims{UserID: userID, Email: email}, nil
}
