package authn

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/garden/internal/core/model"
	httpCtx "github.com/bornholm/garden/internal/http/context"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

var (
	ErrSkipRequest = errors.New("skip request")
)

// Authenticator resolves the principal of a request. It returns a nil
// user when the request carries no credentials it understands.
type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (model.User, error)
}

func Middleware(onUnauthorized func(w http.ResponseWriter, r *http.Request), authenticators ...Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			for _, authenticator := range authenticators {
				user, err := authenticator.Authenticate(w, r)
				if err != nil {
					if errors.Is(err, ErrSkipRequest) {
						return
					}

					slog.ErrorContext(r.Context(), "could not authenticate user", slogx.Error(errors.WithStack(err)))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}

				if user == nil {
					continue
				}

				r = r.WithContext(httpCtx.SetUser(r.Context(), user))

				next.ServeHTTP(w, r)
				return
			}

			onUnauthorized(w, r)
		}

		return fn
	}
}

// Unauthorized answers with a bearer challenge.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="garden"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
