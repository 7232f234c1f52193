package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rezkam/taskpad/internal/domain"
)

// Service implements priority, status, category, and category-value
// management. Everything is scoped to the owning user; uniqueness is
// enforced by storage constraints, not by pre-checks.
type Service struct {
	repo Repository
}

// NewService creates a new taxonomy service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// === Priorities ===

func (s *Service) ListPriorities(ctx context.Context, userID int64) ([]domain.Priority, error) {
	return s.repo.ListPriorities(ctx, userID)
}

// CreatePriority adds a user-defined priority level.
func (s *Service) CreatePriority(ctx context.Context, userID int64, name, color string, level int) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.MissingField("priority_name")
	case color == "":
		return domain.MissingField("priority_color")
	}

	return s.repo.CreatePriority(ctx, &domain.Priority{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Color:  color,
		Level:  level,
	})
}

func (s *Service) UpdatePriority(ctx context.Context, userID, id int64, name, color string, level int) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.MissingField("priority_name")
	case color == "":
		return domain.MissingField("priority_color")
	}
	return s.repo.UpdatePriority(ctx, userID, id, strings.TrimSpace(name), color, level)
}

func (s *Service) DeletePriority(ctx context.Context, userID, id int64) error {
	return s.repo.DeletePriority(ctx, userID, id)
}

// === Statuses ===

func (s *Service) ListStatuses(ctx context.Context, userID int64) ([]domain.Status, error) {
	return s.repo.ListStatuses(ctx, userID)
}

func (s *Service) CreateStatus(ctx context.Context, userID int64, name, color string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.MissingField("status_name")
	case color == "":
		return domain.MissingField("status_color")
	}

	return s.repo.CreateStatus(ctx, &domain.Status{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Color:  color,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, userID, id int64, name, color string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.MissingField("status_name")
	case color == "":
		return domain.MissingField("status_color")
	}
	return s.repo.UpdateStatus(ctx, userID, id, strings.TrimSpace(name), color)
}

func (s *Service) DeleteStatus(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteStatus(ctx, userID, id)
}

// === Categories ===

func (s *Service) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) CreateCategory(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.MissingField("category_name")
	}

	return s.repo.CreateCategory(ctx, &domain.Category{
		UserID: userID,
		Name:   name,
	})
}

// DeleteCategory removes the category and all of its values. Task tag
// snapshots taken from this category are untouched: they are value records,
// not references.
func (s *Service) DeleteCategory(ctx context.Context, userID, id int64) error {
	if err := s.repo.DeleteCategory(ctx, userID, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "category deleted with values", "user_id", userID, "category_id", id)
	return nil
}

// === Category values ===

func (s *Service) ListCategoryValues(ctx context.Context, userID int64) ([]domain.CategoryValue, error) {
	return s.repo.ListCategoryValues(ctx, userID)
}

func (s *Service) CreateCategoryValue(ctx context.Context, userID, categoryID int64, name, color string) error {
	switch {
	case categoryID == 0:
		return domain.MissingField("category_id")
	case strings.TrimSpace(name) == "":
		return domain.MissingField("value_name")
	case color == "":
		return domain.MissingField("value_color")
	}

	return s.repo.CreateCategoryValue(ctx, userID, &domain.CategoryValue{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
		Color:      color,
	})
}

func (s *Service) UpdateCategoryValue(ctx context.Context, userID, id int64, name, color string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.MissingField("value_name")
	case color == "":
		return domain.MissingField("value_color")
	}
	return s.repo.UpdateCategoryValue(ctx, userID, id, strings.TrimSpace(name), color)
}

func (s *Service) DeleteCategoryValue(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteCategoryValue(ctx, userID, id)
}
