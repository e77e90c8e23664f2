package cache

import (
	"strings"

	"github.com/bornholm/garden/internal/core/model"
)

// CacheableUser indexes a user by id and by email.
type CacheableUser struct {
	model.User
}

// CacheKeys implements [Cacheable].
func (u *CacheableUser) CacheKeys() []string {
	return []string{
		userIDKey(u.ID()),
		userEmailKey(u.Email()),
	}
}

func NewCacheableUser(user model.User) *CacheableUser {
	return &CacheableUser{user}
}

var (
	_ model.User = &CacheableUser{}
	_ Cacheable  = &CacheableUser{}
)

func userIDKey(id model.UserID) string {
	return cacheKey("user", "id", string(id))
}

func userEmailKey(email string) string {
	return cacheKey("user", "email", email)
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}
