package domain

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	ContactNumber  string
	Position       string
	ProfilePicture *string
}

// UpdateProfileParams carries a partial profile update. Nil fields are left
// untouched; the whitelist matches the profile settings screen.
type UpdateProfileParams struct {
	FirstName     *string
	LastName      *string
	Email         *string
	ContactNumber *string
	Position      *string
}

// Empty reports whether the update carries no fields at all.
func (p UpdateProfileParams) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.ContactNumber == nil && p.Position == nil
}
