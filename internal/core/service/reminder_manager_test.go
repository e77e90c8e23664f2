package service

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

func TestReminderManager(t *testing.T) {
	remindTime := time.Date(2025, time.June, 1, 8, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	type testCase struct {
		Name string
		Run  func(t *testing.T, f *fixture)
	}

	testCases := []testCase{
		{
			Name: "CreateThenGet",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				plant := f.createPlant(t, f.U1, "Tomato")

				created, err := f.Reminders.Create(ctx, f.U1, ReminderCreate{
					PlantID:    plant.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
					Notes:      "Morning",
				})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				reminder, err := f.Reminders.Get(ctx, f.U1, created.ID())
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := plant.ID(), reminder.PlantID(); e != g {
					t.Errorf("reminder.PlantID(): expected %v, got %v", e, g)
				}

				if e, g := model.ReminderTypeWater, reminder.Type(); e != g {
					t.Errorf("reminder.Type(): expected %v, got %v", e, g)
				}

				if e, g := remindTime, reminder.RemindTime(); !e.Equal(g) {
					t.Errorf("reminder.RemindTime(): expected %v, got %v", e, g)
				}

				if e, g := "Morning", reminder.Notes(); e != g {
					t.Errorf("reminder.Notes(): expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "CreateOnUnknownPlant",
			Run: func(t *testing.T, f *fixture) {
				_, err := f.Reminders.Create(context.Background(), f.Superuser, ReminderCreate{
					PlantID:    model.NewPlantID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
				})
				if !errors.Is(err, port.ErrNotFound) {
					t.Errorf("err: expected %v, got %+v", port.ErrNotFound, err)
				}
			},
		},
		{
			Name: "CreateOnOtherUserPlant",
			Run: func(t *testing.T, f *fixture) {
				plant := f.createPlant(t, f.U1, "Tomato")

				_, err := f.Reminders.Create(context.Background(), f.U2, ReminderCreate{
					PlantID:    plant.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
				})
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("err: expected %v, got %+v", ErrForbidden, err)
				}
			},
		},
		{
			Name: "CreateValidation",
			Run: func(t *testing.T, f *fixture) {
				_, err := f.Reminders.Create(context.Background(), f.U1, ReminderCreate{})

				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("err: expected *ValidationError, got %+v", err)
				}

				for _, field := range []string{"plant_id", "reminder_type", "remind_time"} {
					if _, exists := validationErr.Fields[field]; !exists {
						t.Errorf("expected field '%s' to be invalid, got %v", field, validationErr.Fields)
					}
				}
			},
		},
		{
			Name: "AccessIsInheritedFromPlant",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				plant := f.createPlant(t, f.U1, "Tomato")

				reminder, err := f.Reminders.Create(ctx, f.U1, ReminderCreate{
					PlantID:    plant.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
				})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if _, err := f.Reminders.Get(ctx, f.U2, reminder.ID()); !errors.Is(err, ErrForbidden) {
					t.Errorf("Get: expected %v, got %+v", ErrForbidden, err)
				}

				if _, err := f.Reminders.Update(ctx, f.U2, reminder.ID(), ReminderUpdate{Notes: ptr("Mine")}); !errors.Is(err, ErrForbidden) {
					t.Errorf("Update: expected %v, got %+v", ErrForbidden, err)
				}

				if err := f.Reminders.Delete(ctx, f.U2, reminder.ID()); !errors.Is(err, ErrForbidden) {
					t.Errorf("Delete: expected %v, got %+v", ErrForbidden, err)
				}

				if _, err := f.Reminders.Get(ctx, f.Superuser, reminder.ID()); err != nil {
					t.Errorf("%+v", errors.WithStack(err))
				}
			},
		},
		{
			Name: "MissingIsNotFoundRegardlessOfPrivilege",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				missing := model.NewReminderID()

				for _, principal := range []model.User{f.U1, f.Superuser} {
					if _, err := f.Reminders.Get(ctx, principal, missing); !errors.Is(err, port.ErrNotFound) {
						t.Errorf("Get: expected %v, got %+v", port.ErrNotFound, err)
					}

					if _, err := f.Reminders.Update(ctx, principal, missing, ReminderUpdate{}); !errors.Is(err, port.ErrNotFound) {
						t.Errorf("Update: expected %v, got %+v", port.ErrNotFound, err)
					}

					if err := f.Reminders.Delete(ctx, principal, missing); !errors.Is(err, port.ErrNotFound) {
						t.Errorf("Delete: expected %v, got %+v", port.ErrNotFound, err)
					}
				}
			},
		},
		{
			Name: "PartialUpdate",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				plant := f.createPlant(t, f.U1, "Tomato")

				reminder, err := f.Reminders.Create(ctx, f.U1, ReminderCreate{
					PlantID:    plant.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
					Notes:      "Morning",
				})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				later := remindTime.Add(48 * time.Hour)

				updated, err := f.Reminders.Update(ctx, f.U1, reminder.ID(), ReminderUpdate{RemindTime: &later})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := later, updated.RemindTime(); !e.Equal(g) {
					t.Errorf("updated.RemindTime(): expected %v, got %v", e, g)
				}

				if e, g := "Morning", updated.Notes(); e != g {
					t.Errorf("updated.Notes(): expected %v, got %v", e, g)
				}

				if e, g := model.ReminderTypeWater, updated.Type(); e != g {
					t.Errorf("updated.Type(): expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "MoveToAnotherPlant",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				tomato := f.createPlant(t, f.U1, "Tomato")
				carrot := f.createPlant(t, f.U1, "Carrot")
				foreign := f.createPlant(t, f.U2, "Basil")

				reminder, err := f.Reminders.Create(ctx, f.U1, ReminderCreate{
					PlantID:    tomato.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
				})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if _, err := f.Reminders.Update(ctx, f.U1, reminder.ID(), ReminderUpdate{PlantID: ptr(foreign.ID())}); !errors.Is(err, ErrForbidden) {
					t.Errorf("foreign plant: expected %v, got %+v", ErrForbidden, err)
				}

				if _, err := f.Reminders.Update(ctx, f.U1, reminder.ID(), ReminderUpdate{PlantID: ptr(model.NewPlantID())}); !errors.Is(err, ErrPlantNotFound) || !errors.Is(err, port.ErrNotFound) {
					t.Errorf("unknown plant: expected %v, got %+v", ErrPlantNotFound, err)
				}

				moved, err := f.Reminders.Update(ctx, f.U1, reminder.ID(), ReminderUpdate{PlantID: ptr(carrot.ID())})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := carrot.ID(), moved.PlantID(); e != g {
					t.Errorf("moved.PlantID(): expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "ListIsScopedToPlantOwner",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				tomato := f.createPlant(t, f.U1, "Tomato")
				carrot := f.createPlant(t, f.U2, "Carrot")

				for _, p := range []model.PersistedPlant{tomato, carrot, tomato} {
					if _, err := f.Reminders.Create(ctx, f.Superuser, ReminderCreate{
						PlantID:    p.ID(),
						Type:       model.ReminderTypeWater,
						RemindTime: remindTime,
					}); err != nil {
						t.Fatalf("%+v", errors.WithStack(err))
					}
				}

				reminders, total, err := f.Reminders.List(ctx, f.U1, ListOptions{})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := int64(2), total; e != g {
					t.Errorf("total: expected %v, got %v", e, g)
				}

				for _, r := range reminders {
					if e, g := tomato.ID(), r.PlantID(); e != g {
						t.Errorf("r.PlantID(): expected %v, got %v", e, g)
					}
				}

				_, total, err = f.Reminders.List(ctx, f.Superuser, ListOptions{})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := int64(3), total; e != g {
					t.Errorf("total: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "OrphanIsOnlyVisibleToSuperuser",
			Run: func(t *testing.T, f *fixture) {
				ctx := context.Background()
				tomato := f.createPlant(t, f.U1, "Tomato")

				reminder, err := f.Reminders.Create(ctx, f.U1, ReminderCreate{
					PlantID:    tomato.ID(),
					Type:       model.ReminderTypeWater,
					RemindTime: remindTime,
				})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if err := f.Plants.Delete(ctx, f.U1, tomato.ID()); err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if _, err := f.Reminders.Get(ctx, f.U1, reminder.ID()); !errors.Is(err, ErrForbidden) {
					t.Errorf("Get: expected %v, got %+v", ErrForbidden, err)
				}

				_, total, err := f.Reminders.List(ctx, f.U1, ListOptions{})
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := int64(0), total; e != g {
					t.Errorf("total: expected %v, got %v", e, g)
				}

				if err := f.Reminders.Delete(ctx, f.Superuser, reminder.ID()); err != nil {
					t.Errorf("%+v", errors.WithStack(err))
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.Run(t, newFixture(t))
		})
	}
}
