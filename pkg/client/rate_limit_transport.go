package client

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RateLimitTransport replays requests rejected by the garden API rate
// limiter. The delay between attempts follows the Retry-After header, then
// X-RateLimit-Reset, then DefaultWait.
//
// Requests whose body cannot be rewound are not replayed: the 429 response
// is returned to the caller.
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	for attempt := 0; ; attempt++ {
		res, err := base.RoundTrip(req)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt >= t.MaxRetries || !replayable {
			return res, nil
		}

		delay := t.retryDelay(res)

		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()

		slog.DebugContext(req.Context(), "garden api rate limited, retrying", slog.Duration("delay", delay), slog.Int("attempt", attempt+1), slog.Int("max_retries", t.MaxRetries))

		if err := wait(req.Context(), delay); err != nil {
			return nil, errors.WithStack(err)
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, errors.Wrap(err, "could not rewind request body")
			}

			req.Body = body
		}
	}
}

func (t *RateLimitTransport) retryDelay(res *http.Response) time.Duration {
	if value := res.Header.Get("Retry-After"); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			delay := time.Duration(seconds) * time.Second
			// Spread clients released at the same instant
			return delay + time.Duration(rand.Int64N(int64(delay)/4+1))
		}

		if date, err := http.ParseTime(value); err == nil {
			return max(time.Until(date), 0)
		}
	}

	if value := res.Header.Get("X-RateLimit-Reset"); value != "" {
		if reset, err := strconv.ParseInt(value, 10, 64); err == nil {
			if delay := time.Until(time.Unix(reset, 0)); delay > 0 {
				return delay
			}
		}
	}

	return t.DefaultWait
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
