package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

// repositories returns every OTPRepository implementation under test.
func repositories(t *testing.T) map[string]OTPRepository {
	t.Helper()
	client, mr := setupTestRedis(t)
	t.Cleanup(mr.Close)

	return map[string]OTPRepository{
		"memory": NewMemoryOTPRepository(),
		"redis":  NewRedisOTPRepository(client, time.Hour),
	}
}

// =============================================================================
// Shared Contract Tests
// =============================================================================

func TestOTPRepository_SaveGetDelete(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := repo.Get(ctx, "admin"); !errors.Is(err, ErrOTPNotFound) {
				t.Fatalf("Get() on empty repo error = %v, want ErrOTPNotFound", err)
			}

			entry := models.OTPEntry{Username: "admin", Code: "123456", IssuedAt: issued}
			if err := repo.Save(ctx, entry); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := repo.Get(ctx, "admin")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Code != "123456" || !got.IssuedAt.Equal(issued) || got.Username != "admin" {
				t.Errorf("Get() = %+v", got)
			}

			deleted, err := repo.Delete(ctx, "admin")
			if err != nil || !deleted {
				t.Fatalf("Delete() = %v, %v; want true, nil", deleted, err)
			}

			deleted, err = repo.Delete(ctx, "admin")
			if err != nil || deleted {
				t.Errorf("second Delete() = %v, %v; want false, nil", deleted, err)
			}

			if _, err := repo.Get(ctx, "admin"); !errors.Is(err, ErrOTPNotFound) {
				t.Errorf("Get() after delete error = %v, want ErrOTPNotFound", err)
			}
		})
	}
}

func TestOTPRepository_SaveOverwrites(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()

			_ = repo.Save(ctx, models.OTPEntry{Username: "kasir1", Code: "111111", IssuedAt: now.Add(-time.Minute)})
			_ = repo.Save(ctx, models.OTPEntry{Username: "kasir1", Code: "222222", IssuedAt: now})

			got, err := repo.Get(ctx, "kasir1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Code != "222222" {
				t.Errorf("Code = %s, want 222222", got.Code)
			}
		})
	}
}

func TestOTPRepository_Ping(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

// =============================================================================
// Memory Specific Tests
// =============================================================================

func TestMemoryOTPRepository_Sweep(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()
	now := time.Now()

	_ = repo.Save(ctx, models.OTPEntry{Username: "old", Code: "111111", IssuedAt: now.Add(-2 * time.Hour)})
	_ = repo.Save(ctx, models.OTPEntry{Username: "fresh", Code: "222222", IssuedAt: now})

	if removed := repo.Sweep(now.Add(-time.Hour)); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d, want 1", repo.Len())
	}
	if _, err := repo.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh entry should survive sweep: %v", err)
	}
}

func TestMemoryOTPRepository_RunSweeperStopsOnCancel(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		repo.RunSweeper(ctx, time.Millisecond, time.Hour, nil)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper() did not return after cancel")
	}
}

// =============================================================================
// Redis Specific Tests
// =============================================================================

func TestRedisOTPRepository_RetentionTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	repo := NewRedisOTPRepository(client, 30*time.Minute)
	ctx := context.Background()

	if err := repo.Save(ctx, models.OTPEntry{Username: "admin", Code: "654321", IssuedAt: time.Now()}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if ttl := mr.TTL("otp:admin"); ttl != 30*time.Minute {
		t.Errorf("TTL = %v, want 30m", ttl)
	}

	mr.FastForward(31 * time.Minute)

	if _, err := repo.Get(ctx, "admin"); !errors.Is(err, ErrOTPNotFound) {
		t.Errorf("Get() after retention error = %v, want ErrOTPNotFound", err)
	}
}

func TestRedisOTPRepository_CorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	mr.HSet("otp:admin", "code", "123456", "issued_at", "yesterday")

	repo := NewRedisOTPRepository(client, time.Hour)
	if _, err := repo.Get(context.Background(), "admin"); err == nil || errors.Is(err, ErrOTPNotFound) {
		t.Errorf("Get() error = %v, want parse error", err)
	}
}

func TestRedisOTPRepository_ConnectionError(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	repo := NewRedisOTPRepository(client, time.Hour)
	ctx := context.Background()

	if err := repo.Save(ctx, models.OTPEntry{Username: "admin", Code: "123456", IssuedAt: time.Now()}); err == nil {
		t.Error("Save() should fail when redis is down")
	}
	if err := repo.Ping(ctx); err == nil {
		t.Error("Ping() should fail when redis is down")
	}
}
