package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rezkam/taskpad/internal/domain"
)

// DefaultTokenTTL is the bearer token lifetime when none is configured.
const DefaultTokenTTL = 3 * time.Hour

// bcryptCost matches the cost the existing user base was hashed with.
const bcryptCost = 10

// Config holds configuration for the Authenticator.
type Config struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Authenticator handles registration, login, bearer tokens, and profile
// operations. It owns the default-taxonomy seeding triggered by both paths.
type Authenticator struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthenticator creates a new authenticator.
func NewAuthenticator(repo Repository, cfg Config) *Authenticator {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &Authenticator{
		repo:     repo,
		secret:   cfg.JWTSecret,
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
	}
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new user and seeds their default priorities and
// statuses. Returns domain.ErrUserExists when the username or email is taken.
func (a *Authenticator) Register(ctx context.Context, params RegisterParams) error {
	switch {
	case params.Username == "":
		return domain.MissingField("username")
	case params.Email == "":
		return domain.MissingField("email")
	case params.Password == "":
		return domain.MissingField("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := a.repo.CreateUser(ctx, &domain.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	})
	if err != nil {
		return err
	}

	if err := a.ensureDefaultTaxonomy(ctx, userID); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", userID, "username", params.Username)
	return nil
}

// Login verifies credentials and issues a signed bearer token.
// Returns domain.ErrUserNotFound for an unknown username and
// domain.ErrWrongPassword for a failed comparison. Accounts created before
// seeding existed get their default priorities/statuses backfilled here.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrWrongPassword
	}

	if err := a.ensureDefaultTaxonomy(ctx, user.ID); err != nil {
		return "", fmt.Errorf("failed to seed defaults: %w", err)
	}

	token, err := a.IssueToken(user.ID)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// ensureDefaultTaxonomy backfills the default priority and status rows for
// users that have none. The count check is a fast path; the seed inserts
// themselves tolerate concurrent duplicates.
func (a *Authenticator) ensureDefaultTaxonomy(ctx context.Context, userID int64) error {
	count, err := a.repo.CountPriorities(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := a.repo.SeedDefaultPriorities(ctx, userID); err != nil {
			return err
		}
		slog.InfoContext(ctx, "seeded default priorities", "user_id", userID)
	}

	count, err = a.repo.CountStatuses(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := a.repo.SeedDefaultStatuses(ctx, userID); err != nil {
			return err
		}
		slog.InfoContext(ctx, "seeded default statuses", "user_id", userID)
	}

	return nil
}

// IssueToken signs a bearer token embedding the user ID with a fixed expiry.
func (a *Authenticator) IssueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": a.now().Add(a.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the embedded user ID.
// Returns domain.ErrUnauthorized for anything malformed, mis-signed, or
// expired.
func (a *Authenticator) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	// JSON numbers decode as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	return int64(id), nil
}

// Dashboard returns the profile of the authenticated user.
func (a *Authenticator) Dashboard(ctx context.Context, userID int64) (*domain.User, error) {
	return a.repo.FindUserByID(ctx, userID)
}

// UpdateProfile applies a partial profile update.
// Returns domain.ErrNoFieldsToUpdate when the request carries nothing.
func (a *Authenticator) UpdateProfile(ctx context.Context, userID int64, params domain.UpdateProfileParams) error {
	if params.Empty() {
		return domain.ErrNoFieldsToUpdate
	}
	return a.repo.UpdateProfile(ctx, userID, params)
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (a *Authenticator) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	switch {
	case oldPassword == "":
		return domain.MissingField("oldPassword")
	case newPassword == "":
		return domain.MissingField("newPassword")
	}

	user, err := a.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.repo.UpdatePassword(ctx, userID, string(hash))
}

// SetProfilePicture stores the uploaded image path on the user row.
func (a *Authenticator) SetProfilePicture(ctx context.Context, userID int64, imagePath string) error {
	if imagePath == "" {
		return domain.MissingField("profile_picture")
	}
	return a.repo.UpdateProfilePicture(ctx, userID, imagePath)
}

// IsAuthError reports whether err belongs to the credential-failure class.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrWrongPassword) ||
		errors.Is(err, domain.ErrMissingToken)
}
