package postgres

import (
	"context"
	"fmt"

	"github.com/rezkam/taskpad/internal/domain"
)

// === Taxonomy Repository Implementation (categories and values) ===

// ListCategories returns the user's categories in creation order.
func (s *Store) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	const query = `
		SELECT id, user_id, category_name
		FROM categories
		WHERE user_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return out, nil
}

// CreateCategory inserts a user-defined category, setting category.ID.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	const query = `
		INSERT INTO categories (user_id, category_name)
		VALUES ($1, $2)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, category.UserID, category.Name).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// DeleteCategory removes an owned category. Its values go with it through
// ON DELETE CASCADE; task tag snapshots are untouched.
func (s *Store) DeleteCategory(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// ListCategoryValues returns all values across the user's categories,
// ordered by category so rows for one category are contiguous.
func (s *Store) ListCategoryValues(ctx context.Context, userID int64) ([]domain.CategoryValue, error) {
	const query = `
		SELECT v.id, v.category_id, v.value_name, v.value_color
		FROM category_values v
		JOIN categories c ON c.id = v.category_id
		WHERE c.user_id = $1
		ORDER BY v.category_id, v.id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category values: %w", err)
	}
	defer rows.Close()

	var out []domain.CategoryValue
	for rows.Next() {
		var v domain.CategoryValue
		if err := rows.Scan(&v.ID, &v.CategoryID, &v.Name, &v.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category value: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category values: %w", err)
	}
	return out, nil
}

// CreateCategoryValue inserts a value under one of the user's categories,
// setting value.ID. Ownership is checked through the parent category in the
// same statement.
func (s *Store) CreateCategoryValue(ctx context.Context, userID int64, value *domain.CategoryValue) error {
	const query = `
		INSERT INTO category_values (category_id, value_name, value_color)
		SELECT c.id, $3, $4
		FROM categories c
		WHERE c.id = $1 AND c.user_id = $2
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, value.CategoryID, userID, value.Name, value.Color).Scan(&value.ID)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create category value: %w", err)
	}
	return nil
}

// UpdateCategoryValue rewrites a value the user owns through its category.
func (s *Store) UpdateCategoryValue(ctx context.Context, userID, id int64, name, color string) error {
	const query = `
		UPDATE category_values v
		SET value_name = $3, value_color = $4
		FROM categories c
		WHERE v.id = $1 AND v.category_id = c.id AND c.user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID, name, color)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to update category value: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// DeleteCategoryValue removes a value the user owns through its category.
func (s *Store) DeleteCategoryValue(ctx context.Context, userID, id int64) error {
	const query = `
		DELETE FROM category_values v
		USING categories c
		WHERE v.id = $1 AND v.category_id = c.id AND c.user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category value: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}
