package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.json")
	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store, path
}

func readDocument(t *testing.T, path string) models.Snapshot {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return snap
}

// =============================================================================
// Load Tests
// =============================================================================

func TestNewFileStore_SeedsMissingFile(t *testing.T) {
	store, path := newTestStore(t)

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap.Users) != 2 {
		t.Errorf("expected 2 seeded users, got %d", len(snap.Users))
	}
	if len(snap.MenuItems) != 8 {
		t.Errorf("expected 8 seeded menu items, got %d", len(snap.MenuItems))
	}
	if string(snap.SalesData) != "[]" {
		t.Errorf("SalesData = %s, want []", snap.SalesData)
	}

	onDisk := readDocument(t, path)
	if len(onDisk.Users) != 2 || onDisk.Users[0].Username != "admin" {
		t.Errorf("seed was not written to disk: %+v", onDisk.Users)
	}
}

func TestNewFileStore_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	doc := `{
  "users": [{"username": "owner", "password": "pw", "email": "o@x.com", "role": "admin", "status": "active"}],
  "menuItems": [],
  "salesData": [{"total": 25000}]
}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	snap, _ := store.Snapshot(context.Background())
	if len(snap.Users) != 1 || snap.Users[0].Username != "owner" {
		t.Errorf("unexpected users: %+v", snap.Users)
	}
	if !strings.Contains(string(snap.SalesData), "25000") {
		t.Errorf("salesData not passed through: %s", snap.SalesData)
	}
}

func TestNewFileStore_MissingCollectionsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	snap, _ := store.Snapshot(context.Background())
	if snap.Users == nil || snap.MenuItems == nil {
		t.Error("collections should be empty slices, not nil")
	}
	if string(snap.SalesData) != "[]" {
		t.Errorf("SalesData = %s, want []", snap.SalesData)
	}
}

func TestNewFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(`{"users": [`), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := NewFileStore(path, nil); err == nil {
		t.Error("NewFileStore() should fail on corrupt file")
	}
}

// =============================================================================
// User Tests
// =============================================================================

func TestFindUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user, err := store.FindUser(ctx, func(u models.User) bool { return u.Role == models.RoleCashier })
	if err != nil {
		t.Fatalf("FindUser() error = %v", err)
	}
	if user.Username != "kasir1" {
		t.Errorf("Username = %s, want kasir1", user.Username)
	}

	_, err = store.FindUser(ctx, func(u models.User) bool { return u.Username == "ghost" })
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindByUsernameAndEmail(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  bool
	}{
		{name: "exact match", username: "admin", email: "admin@sotolamongan.com"},
		{name: "email of another user", username: "admin", email: "kasir1@sotolamongan.com", wantErr: true},
		{name: "case differs", username: "Admin", email: "admin@sotolamongan.com", wantErr: true},
		{name: "unknown", username: "nobody", email: "nobody@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.FindByUsernameAndEmail(ctx, tt.username, tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindByUsernameAndEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplaceUsers_Persists(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	users := []models.User{
		{Username: "boss", Password: "pw", Email: "boss@x.com", Role: models.RoleAdmin, Status: models.StatusActive},
	}
	if err := store.ReplaceUsers(ctx, users); err != nil {
		t.Fatalf("ReplaceUsers() error = %v", err)
	}

	// Caller mutations must not leak into the store
	users[0].Username = "mutated"

	snap, _ := store.Snapshot(ctx)
	if len(snap.Users) != 1 || snap.Users[0].Username != "boss" {
		t.Errorf("unexpected users in memory: %+v", snap.Users)
	}
	onDisk := readDocument(t, path)
	if len(onDisk.Users) != 1 || onDisk.Users[0].Username != "boss" {
		t.Errorf("unexpected users on disk: %+v", onDisk.Users)
	}
	if len(onDisk.MenuItems) != 8 {
		t.Errorf("menu should be untouched, got %d items", len(onDisk.MenuItems))
	}

	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "\n  \"users\"") {
		t.Error("store should be pretty printed with two-space indent")
	}
}

func TestReplace_FlushFailureKeepsMemory(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	// Point the store into a directory that does not exist
	store.path = filepath.Join(filepath.Dir(path), "missing", "database.json")

	err := store.ReplaceMenuItems(ctx, []models.MenuItem{{ID: 99, Name: "Ghost"}})
	if err == nil {
		t.Fatal("ReplaceMenuItems() should fail when the file cannot be written")
	}

	items, _ := store.ListMenuItems(ctx)
	if len(items) != 8 {
		t.Errorf("in-memory menu changed after failed flush: %d items", len(items))
	}
}

// =============================================================================
// Menu Tests
// =============================================================================

func TestReplaceMenuItems(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	img := "/img/bakso.png"
	items := []models.MenuItem{
		{ID: 10, Name: "Bakso", Category: models.CategoryFood, Price: 15000, Status: models.StatusActive, Image: &img},
	}
	if err := store.ReplaceMenuItems(ctx, items); err != nil {
		t.Fatalf("ReplaceMenuItems() error = %v", err)
	}

	got, err := store.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems() error = %v", err)
	}
	if len(got) != 1 || got[0].Image == nil || *got[0].Image != img {
		t.Errorf("unexpected menu: %+v", got)
	}

	// Snapshot copies must not alias stored images
	*got[0].Image = "changed"
	again, _ := store.ListMenuItems(ctx)
	if *again[0].Image != img {
		t.Error("ListMenuItems() returned an aliased image pointer")
	}

	onDisk := readDocument(t, path)
	if len(onDisk.MenuItems) != 1 || onDisk.MenuItems[0].ID != 10 {
		t.Errorf("unexpected menu on disk: %+v", onDisk.MenuItems)
	}
}

func TestReplace_PreservesSalesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	doc := `{"users": [], "menuItems": [], "salesData": [{"total":777,"items":[{"id":1,"qty":2}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.ReplaceMenuItems(ctx, []models.MenuItem{
		{ID: 1, Name: "Soto Ayam Lamongan", Category: models.CategoryFood, Price: 25000, Status: models.StatusActive},
	}); err != nil {
		t.Fatalf("ReplaceMenuItems() error = %v", err)
	}
	if err := store.ReplaceUsers(ctx, []models.User{
		{Username: "admin", Password: "admin123", Role: models.RoleAdmin, Status: models.StatusActive},
	}); err != nil {
		t.Fatalf("ReplaceUsers() error = %v", err)
	}

	var sales []map[string]interface{}
	if err := json.Unmarshal(readDocument(t, path).SalesData, &sales); err != nil {
		t.Fatalf("salesData on disk is not an array: %v", err)
	}
	if len(sales) != 1 || sales[0]["total"] != float64(777) {
		t.Errorf("salesData on disk = %v, want the original record", sales)
	}
	lines, ok := sales[0]["items"].([]interface{})
	if !ok || len(lines) != 1 {
		t.Errorf("nested sales items lost: %v", sales[0]["items"])
	}
}

func TestSnapshot_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPing(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
