package repository

import (
	"context"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
)

// MenuRepository defines the interface for menu data operations.
type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	ReplaceMenuItems(ctx context.Context, items []models.MenuItem) error
}

// ListMenuItems returns a copy of the menu.
func (s *FileStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.MenuItems, nil
}

// ReplaceMenuItems swaps the whole menu and persists it.
func (s *FileStore) ReplaceMenuItems(ctx context.Context, items []models.MenuItem) error {
	cp := make([]models.MenuItem, len(items))
	copy(cp, items)
	return s.replace(ctx, func(next *models.Snapshot) {
		next.MenuItems = cp
	})
}
