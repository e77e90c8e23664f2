package setup

import (
	"context"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/http/handler/api"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	plantManager, err := getPlantManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reminderManager, err := getReminderManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	history, err := getReportHistoryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	handler := api.NewHandler(plantManager, reminderManager, history)

	return handler, nil
}
