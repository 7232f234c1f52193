package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rezkam/taskpad/internal/domain"
)

// restampOnRecompletion controls what happens when an edit lands on the
// completed status while the task is already completed: true overwrites
// completedOn with the edit time, false preserves the first completion time.
const restampOnRecompletion = true

// Service implements task CRUD with the completion side effect. New tasks
// always start in the user's "Not Started" status; completedOn is recomputed
// on every edit from the resulting status.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new task service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List returns the user's tasks, newest date first, tags attached.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx, userID)
}

// Create persists a new task. The caller-supplied status, if any, is
// ignored: tasks start in the user's "Not Started" status. Returns
// domain.ErrStatusNotConfigured when that status is missing and
// domain.ErrDuplicateTitle when the user already has a task with this title.
func (s *Service) Create(ctx context.Context, userID int64, params domain.CreateTaskParams) (*domain.Task, error) {
	switch {
	case params.Title == "":
		return nil, domain.MissingField("task_title")
	case params.Date.IsZero():
		return nil, domain.MissingField("date")
	case params.PriorityID == 0:
		return nil, domain.MissingField("priority_id")
	case params.Description == "":
		return nil, domain.MissingField("task_description")
	}

	notStarted, err := s.repo.FindStatusByName(ctx, userID, domain.StatusNameNotStarted)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrStatusNotConfigured
		}
		return nil, err
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       params.Title,
		Date:        params.Date,
		PriorityID:  params.PriorityID,
		StatusID:    notStarted.ID,
		Image:       params.Image,
		Description: params.Description,
		Tags:        params.Tags,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "task created", "user_id", userID, "task_id", task.ID, "tags", len(task.Tags))
	return task, nil
}

// Edit rewrites an owned task. All fields are required; the tag set is
// replaced wholesale; completedOn is recomputed from the resulting status.
// A nil Image keeps the stored one.
func (s *Service) Edit(ctx context.Context, userID, taskID int64, params domain.EditTaskParams) error {
	switch {
	case params.Title == "":
		return domain.MissingField("task_title")
	case params.Date.IsZero():
		return domain.MissingField("date")
	case params.PriorityID == 0:
		return domain.MissingField("priority_id")
	case params.StatusID == 0:
		return domain.MissingField("status_id")
	case params.Description == "":
		return domain.MissingField("task_description")
	}

	existing, err := s.repo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		return err
	}

	completedOn, err := s.resolveCompletedOn(ctx, userID, params.StatusID, existing.CompletedOn)
	if err != nil {
		return err
	}

	task := &domain.Task{
		ID:          taskID,
		UserID:      userID,
		Title:       params.Title,
		Date:        params.Date,
		PriorityID:  params.PriorityID,
		StatusID:    params.StatusID,
		Image:       params.Image,
		Description: params.Description,
		CompletedOn: completedOn,
		Tags:        params.Tags,
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return err
	}

	slog.InfoContext(ctx, "task updated", "user_id", userID, "task_id", taskID)
	return nil
}

// resolveCompletedOn computes the completion timestamp for the status a task
// is moving to. The status must be one of the user's own; a completed-named
// status stamps the current time, any other status clears the timestamp.
// Matching by name rather than by a canonical row means case variants like
// "COMPLETED" behave the same.
func (s *Service) resolveCompletedOn(ctx context.Context, userID, statusID int64, previous *time.Time) (*time.Time, error) {
	status, err := s.repo.FindStatusByID(ctx, userID, statusID)
	if err != nil {
		return nil, err
	}

	if !domain.IsCompletedName(status.Name) {
		return nil, nil
	}

	if previous != nil && !restampOnRecompletion {
		return previous, nil
	}

	now := s.now()
	return &now, nil
}

// Delete removes an owned task and its tag rows.
func (s *Service) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.repo.DeleteTask(ctx, userID, taskID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "task deleted", "user_id", userID, "task_id", taskID)
	return nil
}
