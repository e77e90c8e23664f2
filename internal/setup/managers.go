package setup

import (
	"context"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/core/service"
	"github.com/pkg/errors"
)

var getPlantManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.PlantManager, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	policy := port.DeletePolicy(conf.Plants.DeletePolicy)
	if !policy.Valid() {
		return nil, errors.Errorf("invalid plant delete policy '%s'", conf.Plants.DeletePolicy)
	}

	return service.NewPlantManager(
		store,
		service.WithPlantManagerMaxLimit(conf.API.MaxLimit),
		service.WithPlantManagerDeletePolicy(policy),
	), nil
})

var getReminderManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.ReminderManager, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewReminderManager(
		store, store,
		service.WithReminderManagerMaxLimit(conf.API.MaxLimit),
	), nil
})

var getUserManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.UserManager, error) {
	userStore, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewUserManager(userStore), nil
})

func NewUserManagerFromConfig(ctx context.Context, conf *config.Config) (*service.UserManager, error) {
	manager, err := getUserManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return manager, nil
}

func NewBootstrapperFromConfig(ctx context.Context, conf *config.Config) (*service.Bootstrapper, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewBootstrapper(
		store,
		service.WithBootstrapperSuperuser(conf.Bootstrap.SuperuserEmail, conf.Bootstrap.SuperuserToken),
		service.WithBootstrapperSampleData(conf.Bootstrap.SampleData),
	), nil
}
