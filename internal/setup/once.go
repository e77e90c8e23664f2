package setup

import (
	"context"
	"sync"

	"github.com/bornholm/garden/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes the result of the given factory: every
// component is built at most once per process.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once    sync.Once
		service T
		err     error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			service, err = factory(ctx, conf)
			if err != nil {
				err = errors.WithStack(err)
			}
		})

		return service, err
	}
}
