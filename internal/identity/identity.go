// Package identity resolves which user an incoming request acts as.
package identity

import (
	"context"
	"fmt"
	"log/slog"

	"holocron/internal/middleware"
	"holocron/internal/models"
	"holocron/internal/repository"
)

// Identity resolves the acting user and makes sure the row exists.
type Identity interface {
	CurrentUserID(ctx context.Context) uint
	Materialize(ctx context.Context, userID uint) (*models.User, error)
}

// Fixed always acts as one configured user. The user row is created on first
// use with the configured username and email; any other id gets placeholder
// credentials derived from the id.
type Fixed struct {
	users    repository.UserRepository
	userID   uint
	username string
	email    string
}

// NewFixed returns an Identity that always resolves userID.
func NewFixed(users repository.UserRepository, userID uint, username, email string) *Fixed {
	return &Fixed{users: users, userID: userID, username: username, email: email}
}

// CurrentUserID returns the configured user id.
func (f *Fixed) CurrentUserID(_ context.Context) uint {
	return f.userID
}

// Materialize returns the user row, inserting it when missing. A concurrent
// insert of the same row is resolved by reading it back.
func (f *Fixed) Materialize(ctx context.Context, userID uint) (*models.User, error) {
	user, err := f.users.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !models.IsNotFound(err) {
		return nil, err
	}

	user = f.placeholder(userID)
	if err := f.users.Create(ctx, user); err != nil {
		if models.ErrorCode(err) != models.CodeConflict {
			return nil, err
		}
		existing, getErr := f.users.GetByID(ctx, userID)
		if getErr != nil {
			return nil, err
		}
		return existing, nil
	}

	middleware.Logger.InfoContext(ctx, "Materialized current user",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("username", user.Username),
	)
	return user, nil
}

func (f *Fixed) placeholder(userID uint) *models.User {
	if userID == f.userID {
		return &models.User{ID: userID, Username: f.username, Email: f.email}
	}
	return &models.User{
		ID:       userID,
		Username: fmt.Sprintf("user%d", userID),
		Email:    fmt.Sprintf("user%d@test.com", userID),
	}
}
