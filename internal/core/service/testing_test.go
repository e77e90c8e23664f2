package service

import (
	"context"
	"testing"

	"github.com/bornholm/garden/internal/adapter/memory"
	"github.com/bornholm/garden/internal/core/model"
	"github.com/pkg/errors"
)

type fixture struct {
	Store     *memory.Store
	Plants    *PlantManager
	Reminders *ReminderManager
	U1        model.User
	U2        model.User
	Superuser model.User
}

func newFixture(t *testing.T, funcs ...PlantManagerOptionFunc) *fixture {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()

	f := &fixture{
		Store:     store,
		Plants:    NewPlantManager(store, funcs...),
		Reminders: NewReminderManager(store, store),
		U1:        model.NewUser("u1@example.com", "U1", false),
		U2:        model.NewUser("u2@example.com", "U2", false),
		Superuser: model.NewUser("admin@example.com", "Admin", true),
	}

	for _, u := range []model.User{f.U1, f.U2, f.Superuser} {
		if err := store.SaveUser(ctx, u); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return f
}

func (f *fixture) createPlant(t *testing.T, owner model.User, name string) model.PersistedPlant {
	t.Helper()

	plant, err := f.Plants.Create(context.Background(), owner, tomatoPayload(name))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return plant
}

func ptr[T any](v T) *T {
	return &v
}
