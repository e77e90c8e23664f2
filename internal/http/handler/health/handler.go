package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// CheckFunc reports an error when a dependency of the service is unhealthy.
type CheckFunc func(ctx context.Context) error

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks  map[string]CheckFunc
	timeout time.Duration
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := Response{
		Status: "ok",
		Checks: make(map[string]string, len(h.checks)),
	}

	status := http.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			slog.ErrorContext(ctx, "health check failed", slog.String("check", name), slogx.Error(errors.WithStack(err)))
			res.Checks[name] = "failing"
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}

		res.Checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}

type OptionFunc func(h *Handler)

func WithCheck(name string, check CheckFunc) OptionFunc {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(h *Handler) {
		h.timeout = timeout
	}
}

func NewHandler(funcs ...OptionFunc) *Handler {
	h := &Handler{
		checks:  map[string]CheckFunc{},
		timeout: 5 * time.Second,
	}

	for _, fn := range funcs {
		fn(h)
	}

	return h
}

var _ http.Handler = &Handler{}
