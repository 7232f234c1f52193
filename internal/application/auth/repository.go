package auth

import (
	"context"

	"github.com/rezkam/taskpad/internal/domain"
)

// Repository defines the storage operations the authenticator needs.
// Implementations map storage-level uniqueness conflicts to
// domain.ErrUserExists and absent rows to domain.ErrUserNotFound.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, params domain.UpdateProfileParams) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfilePicture(ctx context.Context, userID int64, path string) error

	// Default taxonomy seeding. The seed operations are idempotent: they
	// insert the fixed default rows and ignore per-user name conflicts, so
	// concurrent invocations for one user cannot duplicate rows.
	CountPriorities(ctx context.Context, userID int64) (int, error)
	CountStatuses(ctx context.Context, userID int64) (int, error)
	SeedDefaultPriorities(ctx context.Context, userID int64) error
	SeedDefaultStatuses(ctx context.Context, userID int64) error
}
