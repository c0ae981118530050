// Package repository provides data access layer for the POS service.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when no user matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// SnapshotReader exposes the whole persisted document.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	Ping(ctx context.Context) error
}

// FileStore keeps users, menu items and sales data in memory and rewrites
// a single JSON document on every mutation. The mutex guards both the
// in-memory document and the flush.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	data   *models.Snapshot
	logger *zap.Logger
}

var (
	_ UserRepository = (*FileStore)(nil)
	_ MenuRepository = (*FileStore)(nil)
	_ SnapshotReader = (*FileStore)(nil)
)

// NewFileStore loads the document at path. A missing file is seeded with
// the default users and menu and written out; a file that cannot be parsed
// is an error.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.data = DefaultSnapshot()
		if err := s.flush(s.data); err != nil {
			logger.Warn("failed to write seeded store, continuing in memory",
				zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("seeded new store", zap.String("path", path))
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}
	normalize(&snap)
	s.data = &snap

	logger.Info("loaded store",
		zap.String("path", path),
		zap.Int("users", len(snap.Users)),
		zap.Int("menu_items", len(snap.MenuItems)))
	return s, nil
}

// Snapshot returns a deep copy of the current document.
func (s *FileStore) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone(), nil
}

// Ping checks that the directory holding the store is still reachable.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store directory %s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

// replace applies mutate to a copy of the document, flushes the copy and
// swaps it in only when the flush succeeded.
func (s *FileStore) replace(ctx context.Context, mutate func(next *models.Snapshot)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	mutate(next)
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) flush(snap *models.Snapshot) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}
	return nil
}

func normalize(snap *models.Snapshot) {
	if snap.Users == nil {
		snap.Users = []models.User{}
	}
	if snap.MenuItems == nil {
		snap.MenuItems = []models.MenuItem{}
	}
	if len(snap.SalesData) == 0 || string(snap.SalesData) == "null" {
		snap.SalesData = json.RawMessage("[]")
	}
}
