package service

import (
	"context"
	"log/slog"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/crypto"
	"github.com/pkg/errors"
)

// UserManager provisions principals and their API tokens.
type UserManager struct {
	store port.UserStore
}

// Provision returns the user registered with the given email, creating it
// when it does not exist yet. An existing user is promoted to superuser if
// requested but never demoted.
func (m *UserManager) Provision(ctx context.Context, email string, displayName string, superuser bool) (model.User, bool, error) {
	existing, err := m.store.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return nil, false, errors.WithStack(err)
	}

	if existing != nil {
		if !superuser || existing.IsSuperuser() {
			return existing, false, nil
		}

		promoted := model.CopyUser(existing)
		promoted.SetSuperuser(true)

		if err := m.store.SaveUser(ctx, promoted); err != nil {
			return nil, false, errors.WithStack(err)
		}

		slog.InfoContext(ctx, "user promoted to superuser", slog.String("user", model.UserString(promoted)))

		return promoted, false, nil
	}

	if displayName == "" {
		displayName = email
	}

	user := model.NewUser(email, displayName, superuser)

	if err := m.store.SaveUser(ctx, user); err != nil {
		return nil, false, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "user created", slog.String("user", model.UserString(user)), slog.Bool("superuser", superuser))

	return user, true, nil
}

// IssueToken creates an API token for the user. A random value is
// generated when value is empty.
func (m *UserManager) IssueToken(ctx context.Context, owner model.User, label string, value string) (model.AuthToken, error) {
	if value == "" {
		generated, err := crypto.GenerateSecureToken()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		value = generated
	}

	token := model.NewAuthToken(owner, label, value)

	if err := m.store.CreateAuthToken(ctx, token); err != nil {
		return nil, errors.WithStack(err)
	}

	return token, nil
}

// Authenticate resolves the principal owning the given token value.
func (m *UserManager) Authenticate(ctx context.Context, value string) (model.User, error) {
	token, err := m.store.FindAuthToken(ctx, value)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return token.Owner(), nil
}

func NewUserManager(store port.UserStore) *UserManager {
	return &UserManager{
		store: store,
	}
}
