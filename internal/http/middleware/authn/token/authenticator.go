package token

import (
	"context"
	"net/http"
	"strings"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/http/middleware/authn"
	"github.com/pkg/errors"
)

type Resolver interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticator resolves principals from "Authorization: Bearer <token>"
// headers.
type Authenticator struct {
	resolver Resolver
}

// Authenticate implements [authn.Authenticator].
func (a *Authenticator) Authenticate(w http.ResponseWriter, r *http.Request) (model.User, error) {
	authorization := r.Header.Get("Authorization")

	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return nil, nil
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	user, err := a.resolver.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	return user, nil
}

func NewAuthenticator(resolver Resolver) *Authenticator {
	return &Authenticator{
		resolver: resolver,
	}
}

var _ authn.Authenticator = &Authenticator{}
