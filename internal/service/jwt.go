// Package service implements credential and one-time code logic for the POS service.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, malformed payloads and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT token claims.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations.
type JWTService interface {
	GenerateAccessToken(username string, role models.Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetAccessExpiry() time.Duration
}

type jwtService struct {
	secret       []byte
	accessExpiry time.Duration
	now          func() time.Time
}

// NewJWTService creates a new JWTService instance.
func NewJWTService(secret string, accessExpiry time.Duration) (JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &jwtService{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		now:          time.Now,
	}, nil
}

func (s *jwtService) GenerateAccessToken(username string, role models.Role) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *jwtService) GetAccessExpiry() time.Duration {
	return s.accessExpiry
}
