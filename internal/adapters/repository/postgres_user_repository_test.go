package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

func newTestUser(t *testing.T, prefix string) *domain.User {
	t.Helper()

	email := fmt.Sprintf("%s_%s@example.com", prefix, uuid.NewString())
	user, err := domain.NewUser(uuid.NewString(), email)
	if err != nil {
		t.Fatalf("Failed to create domain user: %v", err)
	}
	if err := user.SetPassword("passwordStrong123"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return user
}

func userRepositories(t *testing.T) map[string]domain.UserRepository {
	repos := map[string]domain.UserRepository{
		"memory": NewInMemoryUserRepository(),
	}
	if db, err := openTestDB(t); err == nil {
		repos["postgres"] = NewPostgresUserRepository(db)
	} else {
		t.Logf("postgres unavailable, memory only: %v", err)
	}
	return repos
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	for name, repo := range userRepositories(t) {
		t.Run(name+": Should create a user successfully", func(t *testing.T) {
			user := newTestUser(t, "test")

			if err := repo.Create(ctx, user); err != nil {
				t.Errorf("Expected no error, got %v", err)
			}

			savedUser, err := repo.GetByEmail(ctx, user.Email)
			if err != nil {
				t.Fatalf("Could not retrieve saved user: %v", err)
			}
			if savedUser.ID != user.ID {
				t.Errorf("Expected ID %s, got %s", user.ID, savedUser.ID)
			}
			if savedUser.PasswordHash == "" {
				t.Error("Password hash should be persisted")
			}
			if savedUser.CreatedAt.IsZero() || savedUser.UpdatedAt.IsZero() {
				t.Error("Timestamps should not be zero")
			}
		})

		t.Run(name+": Should fail on duplicate email", func(t *testing.T) {
			user1 := newTestUser(t, "duplicate")
			_ = repo.Create(ctx, user1)

			user2 := *user1
			user2.ID = uuid.NewString()

			if err := repo.Create(ctx, &user2); err != domain.ErrEmailAlreadyExists {
				t.Errorf("Expected ErrEmailAlreadyExists, got %v", err)
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	for name, repo := range userRepositories(t) {
		t.Run(name+": Should retrieve existing user by ID", func(t *testing.T) {
			user := newTestUser(t, "id_test")
			_ = repo.Create(ctx, user)

			foundUser, err := repo.GetByID(ctx, user.ID)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if foundUser.Email != user.Email {
				t.Errorf("Expected email %s, got %s", user.Email, foundUser.Email)
			}
		})

		t.Run(name+": Should return ErrUserNotFound for non-existent ID", func(t *testing.T) {
			if _, err := repo.GetByID(ctx, uuid.NewString()); err != domain.ErrUserNotFound {
				t.Errorf("Expected ErrUserNotFound, got %v", err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	for name, repo := range userRepositories(t) {
		t.Run(name+": Should return ErrUserNotFound for non-existent email", func(t *testing.T) {
			if _, err := repo.GetByEmail(ctx, "nonexistent@ghost.com"); err != domain.ErrUserNotFound {
				t.Errorf("Expected ErrUserNotFound, got %v", err)
			}
		})
	}
}

func TestInMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryUserRepository()
	user := newTestUser(t, "copy")
	_ = repo.Create(context.Background(), user)

	found, _ := repo.GetByID(context.Background(), user.ID)
	found.Email = "changed@example.com"

	again, _ := repo.GetByID(context.Background(), user.ID)
	if again.Email != user.Email {
		t.Errorf("Stored user was mutated through a returned pointer")
	}
}
