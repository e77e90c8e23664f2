package port

import (
	"context"

	"github.com/bornholm/garden/internal/core/model"
)

type UserStore interface {
	// GetUserByID finds a user by its ID, or returns ErrNotFound if not found
	GetUserByID(ctx context.Context, userID model.UserID) (model.User, error)

	// FindUserByEmail finds a user by its email, or returns ErrNotFound if not found
	FindUserByEmail(ctx context.Context, email string) (model.User, error)

	// SaveUser creates or updates a user in the store
	SaveUser(ctx context.Context, user model.User) error

	// FindAuthToken searches for an AuthToken by its value, or returns ErrNotFound if not found
	FindAuthToken(ctx context.Context, token string) (model.AuthToken, error)

	// CreateAuthToken creates a new AuthToken for a User
	CreateAuthToken(ctx context.Context, token model.AuthToken) error

	// DeleteAuthToken deletes an AuthToken by its ID
	DeleteAuthToken(ctx context.Context, tokenID model.AuthTokenID) error
}
