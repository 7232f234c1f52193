package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/taskpad/internal/domain"
)

// === Auth Repository Implementation ===

// CreateUser inserts a new account and returns its generated ID. A username
// or email collision surfaces as domain.ErrUserExists.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, contact_number, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.ContactNumber, user.Position,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// FindUserByUsername retrieves an account by its unique username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
		SELECT id, username, email, password_hash, first_name, last_name, contact_number, position, profile_picture
		FROM users
		WHERE username = $1`

	return s.scanUser(s.pool.QueryRow(ctx, query, username))
}

// FindUserByID retrieves an account by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT id, username, email, password_hash, first_name, last_name, contact_number, position, profile_picture
		FROM users
		WHERE id = $1`

	return s.scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.ContactNumber, &u.Position, &u.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies a partial profile update. Nil fields keep their
// stored values via COALESCE.
func (s *Store) UpdateProfile(ctx context.Context, userID int64, params domain.UpdateProfileParams) error {
	const query = `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			contact_number = COALESCE($5, contact_number),
			position = COALESCE($6, position)
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, userID,
		params.FirstName, params.LastName, params.Email, params.ContactNumber, params.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return checkRowsAffected(tag.RowsAffected(), domain.ErrUserNotFound)
}

// UpdatePassword replaces the stored bcrypt hash.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrUserNotFound)
}

// UpdateProfilePicture stores the uploaded picture's serving path.
func (s *Store) UpdateProfilePicture(ctx context.Context, userID int64, path string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET profile_picture = $2 WHERE id = $1`, userID, path)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), domain.ErrUserNotFound)
}

// CountPriorities returns how many priority rows the user owns.
func (s *Store) CountPriorities(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM priorities WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count priorities: %w", err)
	}
	return count, nil
}

// CountStatuses returns how many status rows the user owns.
func (s *Store) CountStatuses(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM statuses WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count statuses: %w", err)
	}
	return count, nil
}

// SeedDefaultPriorities inserts the fixed default priority rows for a user.
// ON CONFLICT DO NOTHING makes concurrent seeding idempotent.
func (s *Store) SeedDefaultPriorities(ctx context.Context, userID int64) error {
	const query = `
		INSERT INTO priorities (user_id, priority_name, priority_color, priority_level, is_default)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (user_id, priority_name) DO NOTHING`

	for _, p := range domain.DefaultPriorities() {
		if _, err := s.pool.Exec(ctx, query, userID, p.Name, p.Color, p.Level); err != nil {
			return fmt.Errorf("failed to seed priority %q: %w", p.Name, err)
		}
	}
	return nil
}

// SeedDefaultStatuses inserts the fixed default status rows for a user.
func (s *Store) SeedDefaultStatuses(ctx context.Context, userID int64) error {
	const query = `
		INSERT INTO statuses (user_id, status_name, status_color, is_default)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id, status_name) DO NOTHING`

	for _, st := range domain.DefaultStatuses() {
		if _, err := s.pool.Exec(ctx, query, userID, st.Name, st.Color); err != nil {
			return fmt.Errorf("failed to seed status %q: %w", st.Name, err)
		}
	}
	return nil
}

// checkRowsAffected translates a zero row count into the given sentinel.
// Ownership checks ride on this: user-scoped WHERE clauses make a row owned
// by someone else indistinguishable from an absent one.
func checkRowsAffected(rows int64, missing error) error {
	if rows == 0 {
		return missing
	}
	return nil
}
