package domain

import "strings"

// Priority is a user-defined severity label attached to tasks.
type Priority struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	Level     int
	IsDefault bool
}

// Status is a user-defined workflow state label. The set is open-ended; one
// status is distinguished by name (see IsCompletedName) and drives the
// completion timestamp.
type Status struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	IsDefault bool
}

// Names of the seeded statuses that carry special behavior.
const (
	StatusNameCompleted  = "Completed"
	StatusNameNotStarted = "Not Started"
)

// DefaultPriorities returns the three priority rows every user starts with.
func DefaultPriorities() []Priority {
	return []Priority{
		{Name: "Extreme", Color: "#F21E1E", Level: 5, IsDefault: true},
		{Name: "Moderate", Color: "#5BC0F8", Level: 3, IsDefault: true},
		{Name: "Low", Color: "#7ED957", Level: 1, IsDefault: true},
	}
}

// DefaultStatuses returns the three status rows every user starts with.
func DefaultStatuses() []Status {
	return []Status{
		{Name: StatusNameCompleted, Color: "#05A301", IsDefault: true},
		{Name: "In Progress", Color: "#0225FF", IsDefault: true},
		{Name: StatusNameNotStarted, Color: "#F21E1E", IsDefault: true},
	}
}

// IsCompletedName reports whether a status name designates the completed
// state. Matching is case-insensitive and ignores surrounding whitespace, so
// a user renaming "Completed" to "completed " keeps the behavior.
func IsCompletedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), StatusNameCompleted)
}
