package setup

import (
	"context"
	"net/http"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/http/middleware/authn"
	"github.com/bornholm/garden/internal/http/middleware/authn/token"
	"github.com/pkg/errors"
)

func getAuthnMiddlewareFromConfig(ctx context.Context, conf *config.Config) (func(http.Handler) http.Handler, error) {
	userManager, err := getUserManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authn.Middleware(authn.Unauthorized, token.NewAuthenticator(userManager)), nil
}
