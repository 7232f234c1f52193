package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/taskpad/internal/domain"
)

// === Task Repository Implementation ===

const taskColumns = `id, user_id, task_title, date, priority_id, status_id, task_image, task_description, completed_on`

// ListTasks returns the user's tasks ordered by date descending, each with
// its tag snapshots attached. Tags for all tasks are fetched in one query
// and grouped in memory.
func (s *Store) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1 ORDER BY date DESC, id DESC`, taskColumns)

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	index := make(map[int64]int)
	for rows.Next() {
		var t domain.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	if len(tasks) == 0 {
		return tasks, nil
	}

	const tagQuery = `
		SELECT tg.id, tg.task_id, tg.category_name, tg.value_name, tg.value_color
		FROM task_category_values tg
		JOIN tasks t ON t.id = tg.task_id
		WHERE t.user_id = $1
		ORDER BY tg.task_id, tg.id`

	tagRows, err := s.pool.Query(ctx, tagQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag domain.TaskTag
		var taskID int64
		if err := tagRows.Scan(&tag.ID, &taskID, &tag.CategoryName, &tag.ValueName, &tag.ValueColor); err != nil {
			return nil, fmt.Errorf("failed to scan task tag: %w", err)
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Tags = append(tasks[i].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task tags: %w", err)
	}

	return tasks, nil
}

// FindTaskByID retrieves one of the user's tasks with its tags.
func (s *Store) FindTaskByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1 AND user_id = $2`, taskColumns)

	var t domain.Task
	if err := scanTask(s.pool.QueryRow(ctx, query, id, userID), &t); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const tagQuery = `
		SELECT id, task_id, category_name, value_name, value_color
		FROM task_category_values
		WHERE task_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, tagQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list task tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag domain.TaskTag
		var taskID int64
		if err := rows.Scan(&tag.ID, &taskID, &tag.CategoryName, &tag.ValueName, &tag.ValueColor); err != nil {
			return nil, fmt.Errorf("failed to scan task tag: %w", err)
		}
		t.Tags = append(t.Tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task tags: %w", err)
	}

	return &t, nil
}

// CreateTask persists the task and its tag rows in one transaction, setting
// task.ID and the tag IDs.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer finalizeTx(ctx, tx, &err)

	const query = `
		INSERT INTO tasks (user_id, task_title, date, priority_id, status_id, task_image, task_description, completed_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRow(ctx, query,
		task.UserID, task.Title, task.Date, task.PriorityID, task.StatusID,
		task.Image, task.Description, task.CompletedOn,
	).Scan(&task.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTitle
		}
		if isForeignKeyViolation(err) {
			return &domain.ValidationError{Field: "priority_id", Issue: "references a priority that does not exist"}
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err = insertTags(ctx, tx, task); err != nil {
		return err
	}
	return nil
}

// UpdateTask rewrites the task row and replaces its entire tag set in one
// transaction. A nil task.Image keeps the stored image via COALESCE.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer finalizeTx(ctx, tx, &err)

	const query = `
		UPDATE tasks SET
			task_title = $3,
			date = $4,
			priority_id = $5,
			status_id = $6,
			task_image = COALESCE($7, task_image),
			task_description = $8,
			completed_on = $9
		WHERE id = $1 AND user_id = $2`

	tag, err := tx.Exec(ctx, query,
		task.ID, task.UserID, task.Title, task.Date, task.PriorityID, task.StatusID,
		task.Image, task.Description, task.CompletedOn)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTitle
		}
		if isForeignKeyViolation(err) {
			return &domain.ValidationError{Field: "priority_id", Issue: "references a priority that does not exist"}
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if err = checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound); err != nil {
		return err
	}

	// The tag set is replaced wholesale: delete then reinsert.
	if _, err = tx.Exec(ctx, `DELETE FROM task_category_values WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("failed to clear task tags: %w", err)
	}
	if err = insertTags(ctx, tx, task); err != nil {
		return err
	}
	return nil
}

// DeleteTask removes one of the user's tasks; tag rows go with it through
// ON DELETE CASCADE.
func (s *Store) DeleteTask(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrNotFound)
}

func insertTags(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	const query = `
		INSERT INTO task_category_values (task_id, category_name, value_name, value_color)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for i := range task.Tags {
		t := &task.Tags[i]
		if err := tx.QueryRow(ctx, query, task.ID, t.CategoryName, t.ValueName, t.ValueColor).Scan(&t.ID); err != nil {
			return fmt.Errorf("failed to insert task tag: %w", err)
		}
	}
	return nil
}

func scanTask(row pgx.Row, t *domain.Task) error {
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Date, &t.PriorityID, &t.StatusID,
		&t.Image, &t.Description, &t.CompletedOn)
	if err != nil {
		if isNoRows(err) {
			return err
		}
		return fmt.Errorf("failed to scan task: %w", err)
	}
	return nil
}
