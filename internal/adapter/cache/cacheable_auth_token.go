package cache

import "github.com/bornholm/garden/internal/core/model"

// CacheableAuthToken indexes an API token by id and by secret value. The
// owner snapshot embedded in the token is cached along with it.
type CacheableAuthToken struct {
	model.AuthToken
}

// CacheKeys implements [Cacheable].
func (t *CacheableAuthToken) CacheKeys() []string {
	return []string{
		authTokenIDKey(t.ID()),
		authTokenValueKey(t.Value()),
	}
}

func NewCacheableAuthToken(authToken model.AuthToken) *CacheableAuthToken {
	return &CacheableAuthToken{authToken}
}

var (
	_ model.AuthToken = &CacheableAuthToken{}
	_ Cacheable       = &CacheableAuthToken{}
)

func authTokenIDKey(id model.AuthTokenID) string {
	return cacheKey("token", "id", string(id))
}

func authTokenValueKey(value string) string {
	return cacheKey("token", "value", value)
}
