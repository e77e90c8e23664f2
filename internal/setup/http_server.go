package setup

import (
	"context"
	"net/http"

	"github.com/bornholm/garden/internal/config"
	httpServer "github.com/bornholm/garden/internal/http"
	"github.com/bornholm/garden/internal/http/handler/health"
	"github.com/bornholm/garden/internal/http/handler/metrics"
	"github.com/bornholm/garden/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*httpServer.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	authnMiddleware, err := getAuthnMiddlewareFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure authn middleware from config")
	}

	healthHandler, err := getHealthHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure health handler from config")
	}

	rateLimit := func(h http.Handler) http.Handler { return h }
	if conf.HTTP.RateLimit.Enabled {
		rateLimit = ratelimit.Middleware(
			ratelimit.WithTrustHeaders(conf.HTTP.RateLimit.TrustHeaders),
			ratelimit.WithLimit(conf.HTTP.RateLimit.Interval, conf.HTTP.RateLimit.MaxBurst),
			ratelimit.WithCache(conf.HTTP.RateLimit.CacheSize, conf.HTTP.RateLimit.CacheTTL),
		)
	}

	options := []httpServer.OptionFunc{
		httpServer.WithAddress(conf.HTTP.Address),
		httpServer.WithBaseURL(conf.HTTP.BaseURL),
		httpServer.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		httpServer.WithMount("/health", healthHandler),
		httpServer.WithMount("/api/v1/", rateLimit(authnMiddleware(api))),
		httpServer.WithMount("/metrics/", authnMiddleware(metrics.NewHandler(prometheus.DefaultGatherer))),
	}

	server := httpServer.NewServer(options...)

	return server, nil
}

func getHealthHandlerFromConfig(ctx context.Context, conf *config.Config) (*health.Handler, error) {
	store, err := getBaseStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	funcs := []health.OptionFunc{}

	if p, ok := store.(pinger); ok {
		funcs = append(funcs, health.WithCheck("database", p.Ping))
	}

	return health.NewHandler(funcs...), nil
}
