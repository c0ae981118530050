package repository

import (
	"context"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindUser(ctx context.Context, match func(models.User) bool) (*models.User, error)
	FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error)
	ReplaceUsers(ctx context.Context, users []models.User) error
}

// FindUser returns the first user accepted by match.
func (s *FileStore) FindUser(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByUsernameAndEmail matches both fields exactly.
func (s *FileStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.FindUser(ctx, func(u models.User) bool {
		return u.Username == username && u.Email == email
	})
}

// ReplaceUsers swaps the whole user collection and persists it.
func (s *FileStore) ReplaceUsers(ctx context.Context, users []models.User) error {
	cp := make([]models.User, len(users))
	copy(cp, users)
	return s.replace(ctx, func(next *models.Snapshot) {
		next.Users = cp
	})
}
