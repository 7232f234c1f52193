package taxonomy

import (
	"context"

	"github.com/rezkam/taskpad/internal/domain"
)

// Repository defines the storage operations for user-owned priorities,
// statuses, categories, and category values. Implementations report
// per-user name collisions as domain.ErrDuplicateName and rows that are
// absent or owned by someone else as domain.ErrNotFound.
type Repository interface {
	ListPriorities(ctx context.Context, userID int64) ([]domain.Priority, error)
	CreatePriority(ctx context.Context, priority *domain.Priority) error
	UpdatePriority(ctx context.Context, userID, id int64, name, color string, level int) error
	DeletePriority(ctx context.Context, userID, id int64) error

	ListStatuses(ctx context.Context, userID int64) ([]domain.Status, error)
	CreateStatus(ctx context.Context, status *domain.Status) error
	UpdateStatus(ctx context.Context, userID, id int64, name, color string) error
	DeleteStatus(ctx context.Context, userID, id int64) error

	ListCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	// DeleteCategory removes the category and cascades to its values.
	DeleteCategory(ctx context.Context, userID, id int64) error

	// ListCategoryValues returns all values across the user's categories,
	// ordered by category so rows for one category are contiguous.
	ListCategoryValues(ctx context.Context, userID int64) ([]domain.CategoryValue, error)
	// CreateCategoryValue checks ownership through the parent category.
	CreateCategoryValue(ctx context.Context, userID int64, value *domain.CategoryValue) error
	UpdateCategoryValue(ctx context.Context, userID, id int64, name, color string) error
	DeleteCategoryValue(ctx context.Context, userID, id int64) error
}
