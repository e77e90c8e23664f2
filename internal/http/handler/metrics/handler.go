package metrics

import (
	"net/http"

	"github.com/bornholm/garden/internal/http/middleware/authz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler exposes the collectors of the given gatherer in the
// Prometheus text format to superusers.
func NewHandler(gatherer prometheus.Gatherer) http.Handler {
	assertSuperuser := authz.Middleware(nil, authz.IsAuthenticated, authz.Active(), authz.Superuser())

	return assertSuperuser(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
