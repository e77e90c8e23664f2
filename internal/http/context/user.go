package context

import (
	"context"
	"log/slog"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/go-x/slogx"
)

const keyPrincipal contextKey = "principal"

// User returns the principal authenticated for the request, or nil for an
// anonymous request.
func User(ctx context.Context) model.User {
	principal, _ := ctx.Value(keyPrincipal).(model.User)
	return principal
}

// SetUser binds the principal to ctx. Log records emitted with the
// returned context carry the principal.
func SetUser(ctx context.Context, principal model.User) context.Context {
	ctx = context.WithValue(ctx, keyPrincipal, principal)
	return slogx.WithAttrs(ctx, slog.String("user", model.UserString(principal)))
}
