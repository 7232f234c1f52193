package postgres

import (
	"context"
	"fmt"

	"github.com/rezkam/taskpad/internal/domain"
)

// === Taxonomy Repository Implementation (priorities and statuses) ===

// ListPriorities returns the user's priorities, highest level first.
func (s *Store) ListPriorities(ctx context.Context, userID int64) ([]domain.Priority, error) {
	const query = `
		SELECT id, user_id, priority_name, priority_color, priority_level, is_default
		FROM priorities
		WHERE user_id = $1
		ORDER BY priority_level DESC, id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	defer rows.Close()

	var out []domain.Priority
	for rows.Next() {
		var p domain.Priority
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.Level, &p.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan priority: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read priorities: %w", err)
	}
	return out, nil
}

// CreatePriority inserts a user-defined priority, setting priority.ID.
func (s *Store) CreatePriority(ctx context.Context, priority *domain.Priority) error {
	const query = `
		INSERT INTO priorities (user_id, priority_name, priority_color, priority_level, is_default)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		priority.UserID, priority.Name, priority.Color, priority.Level,
	).Scan(&priority.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create priority: %w", err)
	}
	return nil
}

// UpdatePriority rewrites an owned priority row.
func (s *Store) UpdatePriority(ctx context.Context, userID, id int64, name, color string, level int) error {
	const query = `
		UPDATE priorities
		SET priority_name = $3, priority_color = $4, priority_level = $5
		WHERE id = $1 AND user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID, name, color, level)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to update priority: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// DeletePriority removes an owned priority row. Tasks referencing it block
// the delete through the foreign key; that surfaces as a wrapped error, not
// a silent cascade.
func (s *Store) DeletePriority(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM priorities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete priority: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// ListStatuses returns the user's statuses in creation order.
func (s *Store) ListStatuses(ctx context.Context, userID int64) ([]domain.Status, error) {
	const query = `
		SELECT id, user_id, status_name, status_color, is_default
		FROM statuses
		WHERE user_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var out []domain.Status
	for rows.Next() {
		var st domain.Status
		if err := rows.Scan(&st.ID, &st.UserID, &st.Name, &st.Color, &st.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statuses: %w", err)
	}
	return out, nil
}

// CreateStatus inserts a user-defined status, setting status.ID.
func (s *Store) CreateStatus(ctx context.Context, status *domain.Status) error {
	const query = `
		INSERT INTO statuses (user_id, status_name, status_color, is_default)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, status.UserID, status.Name, status.Color).Scan(&status.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create status: %w", err)
	}
	return nil
}

// UpdateStatus rewrites an owned status row.
func (s *Store) UpdateStatus(ctx context.Context, userID, id int64, name, color string) error {
	const query = `
		UPDATE statuses
		SET status_name = $3, status_color = $4
		WHERE id = $1 AND user_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, userID, name, color)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// DeleteStatus removes an owned status row.
func (s *Store) DeleteStatus(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM statuses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

// FindStatusByName resolves one of the user's statuses by name,
// case-insensitively and ignoring surrounding whitespace. Used for the
// "Not Started" default on task creation and the "Completed" lookup that
// drives completedOn.
func (s *Store) FindStatusByName(ctx context.Context, userID int64, name string) (*domain.Status, error) {
	const query = `
		SELECT id, user_id, status_name, status_color, is_default
		FROM statuses
		WHERE user_id = $1 AND LOWER(TRIM(status_name)) = LOWER(TRIM($2))
		ORDER BY id
		LIMIT 1`

	var st domain.Status
	err := s.pool.QueryRow(ctx, query, userID, name).Scan(&st.ID, &st.UserID, &st.Name, &st.Color, &st.IsDefault)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find status %q: %w", name, err)
	}
	return &st, nil
}

// FindStatusByID resolves one of the user's statuses by id. Used on task
// edits to decide whether the target status counts as completed.
func (s *Store) FindStatusByID(ctx context.Context, userID, id int64) (*domain.Status, error) {
	const query = `
		SELECT id, user_id, status_name, status_color, is_default
		FROM statuses
		WHERE id = $1 AND user_id = $2`

	var st domain.Status
	err := s.pool.QueryRow(ctx, query, id, userID).Scan(&st.ID, &st.UserID, &st.Name, &st.Color, &st.IsDefault)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find status %d: %w", id, err)
	}
	return &st, nil
}
