package store

import (
	"context"
	"time"

	"child-clinic-server/internal/models"
)

// UserStore persists guardian and admin accounts.
type UserStore interface {
	// Create persists a new account.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail returns the account with the given email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (models.User, error)

	// GetByID returns the account with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.User, error)

	// ListAll returns every account.
	ListAll(ctx context.Context) ([]models.User, error)

	// DeleteByID removes the account with the given id, or ErrNotFound
	// when no account matched.
	DeleteByID(ctx context.Context, id string) error
}

// RefreshTokenStore persists refresh tokens and their revocation state.
type RefreshTokenStore interface {
	// Create stores a newly issued refresh token.
	Create(ctx context.Context, token *models.RefreshToken) error

	// GetActive returns the stored token matching the given token string
	// and user that is neither revoked nor expired at now, or ErrNotFound.
	GetActive(ctx context.Context, token, userID string, now time.Time) (models.RefreshToken, error)

	// GetUnrevoked returns the stored token matching the given token
	// string that has not been revoked yet, or ErrNotFound.
	GetUnrevoked(ctx context.Context, token string) (models.RefreshToken, error)

	// Revoke marks the stored token revoked and persists it.
	Revoke(ctx context.Context, token *models.RefreshToken) error
}
