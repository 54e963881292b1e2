package auth

import (
	"errors"
	"testing"

	domain "github.com/example/recipe-share/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserStoreDB(t *testing.T) UserStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	store, err := NewGormUserStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestGormUserStore_CreateAndFind(t *testing.T) {
	store := setupUserStoreDB(t)

	created, err := store.Create("Alice", "alice@example.com", "hash", domain.RoleUser)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() did not assign an ID")
	}

	found, err := store.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != created.ID || found.Name != "Alice" {
		t.Errorf("FindByEmail() = %+v, want id %d name Alice", found, created.ID)
	}

	if _, err := store.FindByID(created.ID); err != nil {
		t.Errorf("FindByID() error = %v", err)
	}
	if _, err := store.FindByID(999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGormUserStore_DuplicateEmail(t *testing.T) {
	store := setupUserStoreDB(t)

	if _, err := store.Create("Alice", "alice@example.com", "hash", domain.RoleUser); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := store.Create("Other", "alice@example.com", "hash2", domain.RoleUser)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGormUserStore_ListAll(t *testing.T) {
	store := setupUserStoreDB(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := store.Create("User", email, "hash", domain.RoleUser); err != nil {
			t.Fatalf("Create(%s) error = %v", email, err)
		}
	}

	users, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].ID >= users[1].ID {
		t.Errorf("users not ordered by id: %d, %d", users[0].ID, users[1].ID)
	}
}
