package domain

import "time"

// Task is the central entity: a dated, prioritized unit of work owned by one
// user. Titles are unique per user.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Date        time.Time
	PriorityID  int64
	StatusID    int64
	Image       *string
	Description string
	CompletedOn *time.Time
	Tags        []TaskTag
}

// TaskTag is a denormalized snapshot of one category/value association taken
// when the task was created or last edited. It is a value record, not a
// reference: renaming or deleting the category or value later leaves
// historical tags untouched.
type TaskTag struct {
	ID           int64
	CategoryName string
	ValueName    string
	ValueColor   string
}

// CreateTaskParams carries a task creation request. The initial status is
// not a caller choice; tasks always start in the user's "Not Started" status.
type CreateTaskParams struct {
	Title       string
	Date        time.Time
	PriorityID  int64
	Description string
	Image       *string
	Tags        []TaskTag
}

// EditTaskParams carries a full task edit. A nil Image keeps the stored one.
type EditTaskParams struct {
	Title       string
	Date        time.Time
	PriorityID  int64
	StatusID    int64
	Description string
	Image       *string
	Tags        []TaskTag
}
