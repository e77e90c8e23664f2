package cache

import (
	"context"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

// UserStore caches principal lookups, which happen on every authenticated
// request.
type UserStore struct {
	backend        port.UserStore
	userCache      *MultiIndexCache[*CacheableUser]
	authTokenCache *MultiIndexCache[*CacheableAuthToken]
}

// CreateAuthToken implements [port.UserStore].
func (s *UserStore) CreateAuthToken(ctx context.Context, token model.AuthToken) error {
	defer s.authTokenCache.Remove(authTokenIDKey(token.ID()))

	return s.backend.CreateAuthToken(ctx, token)
}

// DeleteAuthToken implements [port.UserStore].
func (s *UserStore) DeleteAuthToken(ctx context.Context, tokenID model.AuthTokenID) error {
	defer s.authTokenCache.Remove(authTokenIDKey(tokenID))

	return s.backend.DeleteAuthToken(ctx, tokenID)
}

// FindAuthToken implements [port.UserStore].
func (s *UserStore) FindAuthToken(ctx context.Context, token string) (model.AuthToken, error) {
	if authToken, exists := s.authTokenCache.Get(authTokenValueKey(token)); exists {
		return authToken, nil
	}

	authToken, err := s.backend.FindAuthToken(ctx, token)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.authTokenCache.Add(NewCacheableAuthToken(authToken))

	return authToken, nil
}

// FindUserByEmail implements [port.UserStore].
func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	if user, exists := s.userCache.Get(userEmailKey(email)); exists {
		return user, nil
	}

	user, err := s.backend.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.userCache.Add(NewCacheableUser(user))

	return user, nil
}

// GetUserByID implements [port.UserStore].
func (s *UserStore) GetUserByID(ctx context.Context, userID model.UserID) (model.User, error) {
	if user, exists := s.userCache.Get(userIDKey(userID)); exists {
		return user, nil
	}

	user, err := s.backend.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.userCache.Add(NewCacheableUser(user))

	return user, nil
}

// SaveUser implements [port.UserStore].
func (s *UserStore) SaveUser(ctx context.Context, user model.User) error {
	defer func() {
		s.userCache.Remove(userIDKey(user.ID()))
		// Cached tokens embed a snapshot of their owner
		s.authTokenCache.Purge()
	}()

	return s.backend.SaveUser(ctx, user)
}

func NewUserStore(backend port.UserStore, size int, ttl time.Duration) *UserStore {
	return &UserStore{
		backend:        backend,
		userCache:      NewMultiIndexCache[*CacheableUser](size, ttl),
		authTokenCache: NewMultiIndexCache[*CacheableAuthToken](size, ttl),
	}
}

var _ port.UserStore = &UserStore{}
