package ratelimit

import "time"

type Options struct {
	// Honor X-Forwarded-For and X-Real-Ip when identifying clients
	TrustHeaders bool
	// Interval between two token refills of a client bucket
	Interval time.Duration
	MaxBurst int
	// Number of tracked clients and how long an idle client is remembered
	CacheSize int
	CacheTTL  time.Duration
	// Clock used to compute the reset header
	Now func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TrustHeaders: false,
		Interval:     100 * time.Millisecond,
		MaxBurst:     50,
		CacheSize:    1024,
		CacheTTL:     10 * time.Minute,
		Now:          time.Now,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithTrustHeaders(trustHeaders bool) OptionFunc {
	return func(opts *Options) {
		opts.TrustHeaders = trustHeaders
	}
}

func WithLimit(interval time.Duration, maxBurst int) OptionFunc {
	return func(opts *Options) {
		opts.Interval = interval
		opts.MaxBurst = maxBurst
	}
}

func WithCache(size int, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.CacheSize = size
		opts.CacheTTL = ttl
	}
}
