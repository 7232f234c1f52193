package domain

// Category is a user-defined facet for tagging tasks beyond priority and
// status, e.g. "Project". Categories have no seeded defaults.
type Category struct {
	ID     int64
	UserID int64
	Name   string
}

// CategoryValue is one selectable value of a category, e.g. "Backend".
// Names are unique within their category.
type CategoryValue struct {
	ID         int64
	CategoryID int64
	Name       string
	Color      string
}
