package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/GunarsK-portfolio/pos-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// LoginResponse is returned to the client after a successful login.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	Role        models.Role `json:"role"`
	Username    string      `json:"username"`
}

// AuthService authenticates staff and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login finds the user with matching username and password. There is no
// lockout or attempt counting.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUser(ctx, func(u models.User) bool {
		return u.Username == username && passwordMatches(u.Password, password)
	})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: accessToken,
		Role:        user.Role,
		Username:    user.Username,
	}, nil
}
