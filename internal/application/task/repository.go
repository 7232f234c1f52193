package task

import (
	"context"

	"github.com/rezkam/taskpad/internal/domain"
)

// Repository defines the storage operations for tasks and their tag
// snapshots. Implementations report per-user title collisions as
// domain.ErrDuplicateTitle and rows that are absent or owned by someone
// else as domain.ErrNotFound.
type Repository interface {
	// ListTasks returns the user's tasks ordered by date descending, each
	// with its tag snapshots attached.
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)

	FindTaskByID(ctx context.Context, userID, id int64) (*domain.Task, error)

	// CreateTask persists the task and its tag rows, setting task.ID.
	CreateTask(ctx context.Context, task *domain.Task) error

	// UpdateTask rewrites the task row and replaces its entire tag set in
	// one transaction. A nil task.Image keeps the stored image.
	UpdateTask(ctx context.Context, task *domain.Task) error

	// DeleteTask removes the task and cascades to its tag rows.
	DeleteTask(ctx context.Context, userID, id int64) error

	// FindStatusByName resolves one of the user's statuses by name,
	// case-insensitively and ignoring surrounding whitespace.
	FindStatusByName(ctx context.Context, userID int64, name string) (*domain.Status, error)

	// FindStatusByID resolves one of the user's statuses by id.
	FindStatusByID(ctx context.Context, userID, id int64) (*domain.Status, error)
}
