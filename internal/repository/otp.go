package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"go.uber.org/zap"
)

// ErrOTPNotFound is returned when no code is pending for a username.
var ErrOTPNotFound = errors.New("otp not found")

// OTPRepository stores pending one-time codes. At most one entry exists per
// username; Save overwrites. Delete reports whether it removed an entry so
// that only one caller can consume a code.
type OTPRepository interface {
	Save(ctx context.Context, entry models.OTPEntry) error
	Get(ctx context.Context, username string) (*models.OTPEntry, error)
	Delete(ctx context.Context, username string) (bool, error)
	Ping(ctx context.Context) error
}

// MemoryOTPRepository keeps codes in process memory only.
type MemoryOTPRepository struct {
	mu      sync.Mutex
	entries map[string]models.OTPEntry
}

// NewMemoryOTPRepository creates an empty in-memory registry.
func NewMemoryOTPRepository() *MemoryOTPRepository {
	return &MemoryOTPRepository{entries: make(map[string]models.OTPEntry)}
}

func (r *MemoryOTPRepository) Save(ctx context.Context, entry models.OTPEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Username] = entry
	return nil
}

func (r *MemoryOTPRepository) Get(ctx context.Context, username string) (*models.OTPEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[username]
	if !ok {
		return nil, ErrOTPNotFound
	}
	return &entry, nil
}

func (r *MemoryOTPRepository) Delete(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[username]; !ok {
		return false, nil
	}
	delete(r.entries, username)
	return true, nil
}

func (r *MemoryOTPRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Sweep drops entries issued before cutoff and returns how many were removed.
func (r *MemoryOTPRepository) Sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for username, entry := range r.entries {
		if entry.IssuedAt.Before(cutoff) {
			delete(r.entries, username)
			removed++
		}
	}
	return removed
}

// Len returns the number of pending entries.
func (r *MemoryOTPRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RunSweeper calls Sweep every interval until ctx is done. Entries are kept
// for retention after issue, which must be at least the OTP validity window.
func (r *MemoryOTPRepository) RunSweeper(ctx context.Context, interval, retention time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now.Add(-retention)); n > 0 && logger != nil {
				logger.Debug("swept stale otp entries", zap.Int("removed", n))
			}
		}
	}
}
