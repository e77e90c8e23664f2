package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

// Handler returns the root handler serving every mount.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	for prefix, handler := range s.opts.Mounts {
		mountPath, err := url.JoinPath("/", s.opts.BaseURL, prefix)
		if err != nil {
			return nil, errors.Wrapf(err, "could not build mount path for '%s'", prefix)
		}

		if strings.HasSuffix(prefix, "/") && !strings.HasSuffix(mountPath, "/") {
			mountPath += "/"
		}

		slog.Debug("mounting handler", slog.String("path", mountPath))

		mux.Handle(mountPath, http.StripPrefix(strings.TrimSuffix(mountPath, "/"), handler))
	}

	var handler http.Handler = mux

	if len(s.opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   s.opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler(handler)
	}

	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(slog.Default())(handler)

	return handler, nil
}

// Run serves until ctx is canceled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return errors.WithStack(err)
	}

	server := &http.Server{
		Addr:              s.opts.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "could not shutdown server", slogx.Error(errors.WithStack(err)))
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}
