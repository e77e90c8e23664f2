package testsuite

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestStore(t *testing.T, factory func(t *testing.T) (port.Store, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store port.Store) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "SaveAndFindUser",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				user := model.NewUser("jdoe@example.com", "John Doe", false)

				if err := store.SaveUser(ctx, user); err != nil {
					return errors.WithStack(err)
				}

				found, err := store.FindUserByEmail(ctx, "jdoe@example.com")
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := user.ID(), found.ID(); e != g {
					t.Errorf("found.ID(): expected %v, got %v", e, g)
				}

				user.SetSuperuser(true)

				if err := store.SaveUser(ctx, user); err != nil {
					return errors.WithStack(err)
				}

				byID, err := store.GetUserByID(ctx, user.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if !byID.IsSuperuser() {
					t.Errorf("byID.IsSuperuser(): expected true, got false")
				}

				if _, err := store.GetUserByID(ctx, model.NewUserID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetUserByID(unknown): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "AuthTokens",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				user := mustCreateUser(t, ctx, store, "token@example.com", false)

				token := model.NewAuthToken(user, "cli", "secret-value")

				if err := store.CreateAuthToken(ctx, token); err != nil {
					return errors.WithStack(err)
				}

				found, err := store.FindAuthToken(ctx, "secret-value")
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := user.ID(), found.Owner().ID(); e != g {
					t.Errorf("found.Owner().ID(): expected %v, got %v", e, g)
				}

				if err := store.DeleteAuthToken(ctx, token.ID()); err != nil {
					return errors.WithStack(err)
				}

				if _, err := store.FindAuthToken(ctx, "secret-value"); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("FindAuthToken(deleted): expected port.ErrNotFound, got %+v", err)
				}

				if err := store.DeleteAuthToken(ctx, token.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("DeleteAuthToken(deleted): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "CreatePlantWithUnknownOwner",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				plant := model.NewPlant(model.NewUserID(), samplePlantAttributes("Tomato"))

				if _, err := store.CreatePlant(ctx, plant); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("CreatePlant(): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "CreateAndGetPlant",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner := mustCreateUser(t, ctx, store, "owner@example.com", false)

				attrs := samplePlantAttributes("Tomato")
				plant := model.NewPlant(owner.ID(), attrs)

				created, err := store.CreatePlant(ctx, plant)
				if err != nil {
					return errors.WithStack(err)
				}

				if created.CreatedAt().IsZero() {
					t.Errorf("created.CreatedAt(): should not be zero value")
				}

				found, err := store.GetPlantByID(ctx, plant.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("found: %s", spew.Sdump(model.PlantAttributesOf(found)))

				assertPlantAttributes(t, attrs, model.PlantAttributesOf(found))

				if e, g := owner.ID(), found.OwnerID(); e != g {
					t.Errorf("found.OwnerID(): expected %v, got %v", e, g)
				}

				if _, err := store.GetPlantByID(ctx, model.NewPlantID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetPlantByID(unknown): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "QueryPlants",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				alice := mustCreateUser(t, ctx, store, "alice@example.com", false)
				bob := mustCreateUser(t, ctx, store, "bob@example.com", false)

				names := []string{"Tomato", "Carrot", "Basil", "Leek"}
				for i, name := range names {
					owner := alice
					if i%2 == 1 {
						owner = bob
					}

					if _, err := store.CreatePlant(ctx, model.NewPlant(owner.ID(), samplePlantAttributes(name))); err != nil {
						return errors.WithStack(err)
					}
				}

				all, total, err := store.QueryPlants(ctx, port.QueryPlantsOptions{})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(4), total; e != g {
					t.Errorf("total: expected %d, got %d", e, g)
				}

				for i, p := range all {
					if e, g := names[i], p.Name(); e != g {
						t.Errorf("all[%d].Name(): expected %s, got %s", i, e, g)
					}
				}

				aliceID := alice.ID()
				owned, total, err := store.QueryPlants(ctx, port.QueryPlantsOptions{OwnerID: &aliceID})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(2), total; e != g {
					t.Errorf("owned total: expected %d, got %d", e, g)
				}

				for _, p := range owned {
					if e, g := alice.ID(), p.OwnerID(); e != g {
						t.Errorf("p.OwnerID(): expected %v, got %v", e, g)
					}
				}

				limit := 2
				page, total, err := store.QueryPlants(ctx, port.QueryPlantsOptions{Page: port.Page{Skip: 1, Limit: &limit}})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(4), total; e != g {
					t.Errorf("paginated total: expected %d, got %d", e, g)
				}

				if e, g := 2, len(page); e != g {
					t.Fatalf("len(page): expected %d, got %d", e, g)
				}

				if e, g := "Carrot", page[0].Name(); e != g {
					t.Errorf("page[0].Name(): expected %s, got %s", e, g)
				}

				if e, g := "Basil", page[1].Name(); e != g {
					t.Errorf("page[1].Name(): expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "UpdatePlant",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner := mustCreateUser(t, ctx, store, "owner@example.com", false)

				attrs := samplePlantAttributes("Tomato")
				plant, err := store.CreatePlant(ctx, model.NewPlant(owner.ID(), attrs))
				if err != nil {
					return errors.WithStack(err)
				}

				name := "Cherry Tomato"
				quantity := 0

				updated, err := store.UpdatePlant(ctx, plant.ID(), port.PlantUpdates{
					Name:     &name,
					Quantity: &quantity,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				expected := attrs
				expected.Name = name
				expected.Quantity = quantity

				assertPlantAttributes(t, expected, model.PlantAttributesOf(updated))

				found, err := store.GetPlantByID(ctx, plant.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				assertPlantAttributes(t, expected, model.PlantAttributesOf(found))

				if _, err := store.UpdatePlant(ctx, model.NewPlantID(), port.PlantUpdates{Name: &name}); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("UpdatePlant(unknown): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "DeletePlantPolicies",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner := mustCreateUser(t, ctx, store, "owner@example.com", false)

				create := func(name string) (model.PersistedPlant, model.PersistedReminder, error) {
					plant, err := store.CreatePlant(ctx, model.NewPlant(owner.ID(), samplePlantAttributes(name)))
					if err != nil {
						return nil, nil, errors.WithStack(err)
					}

					reminder, err := store.CreateReminder(ctx, model.NewReminder(plant.ID(), model.ReminderTypeWater, time.Now(), ""))
					if err != nil {
						return nil, nil, errors.WithStack(err)
					}

					return plant, reminder, nil
				}

				// Restrict
				plant, reminder, err := create("Restricted")
				if err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeletePlant(ctx, plant.ID(), port.DeletePolicyRestrict); !errors.Is(err, port.ErrConflict) {
					t.Errorf("DeletePlant(restrict): expected port.ErrConflict, got %+v", err)
				}

				if _, err := store.GetPlantByID(ctx, plant.ID()); err != nil {
					t.Errorf("GetPlantByID(restricted): unexpected error %+v", err)
				}

				if err := store.DeleteReminder(ctx, reminder.ID()); err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeletePlant(ctx, plant.ID(), port.DeletePolicyRestrict); err != nil {
					t.Errorf("DeletePlant(restrict, no dependents): unexpected error %+v", err)
				}

				// Cascade
				plant, reminder, err = create("Cascaded")
				if err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeletePlant(ctx, plant.ID(), port.DeletePolicyCascade); err != nil {
					return errors.WithStack(err)
				}

				if _, err := store.GetReminderByID(ctx, reminder.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetReminderByID(cascaded): expected port.ErrNotFound, got %+v", err)
				}

				// Orphan
				plant, reminder, err = create("Orphaned")
				if err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeletePlant(ctx, plant.ID(), port.DeletePolicyOrphan); err != nil {
					return errors.WithStack(err)
				}

				if _, err := store.GetPlantByID(ctx, plant.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetPlantByID(deleted): expected port.ErrNotFound, got %+v", err)
				}

				orphan, err := store.GetReminderByID(ctx, reminder.ID())
				if err != nil {
					t.Fatalf("GetReminderByID(orphan): unexpected error %+v", err)
				}

				if e, g := plant.ID(), orphan.PlantID(); e != g {
					t.Errorf("orphan.PlantID(): expected %v, got %v", e, g)
				}

				if err := store.DeletePlant(ctx, plant.ID(), port.DeletePolicyOrphan); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("DeletePlant(deleted): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "CreateReminderWithUnknownPlant",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				reminder := model.NewReminder(model.NewPlantID(), model.ReminderTypeWater, time.Now(), "")

				if _, err := store.CreateReminder(ctx, reminder); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("CreateReminder(): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "CreateGetAndUpdateReminder",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner := mustCreateUser(t, ctx, store, "owner@example.com", false)

				plant, err := store.CreatePlant(ctx, model.NewPlant(owner.ID(), samplePlantAttributes("Tomato")))
				if err != nil {
					return errors.WithStack(err)
				}

				remindTime := time.Date(2025, 3, 20, 8, 30, 15, 123456789, time.FixedZone("CET", 3600))

				reminder, err := store.CreateReminder(ctx, model.NewReminder(plant.ID(), model.ReminderTypeWater, remindTime, "Water the plant"))
				if err != nil {
					return errors.WithStack(err)
				}

				found, err := store.GetReminderByID(ctx, reminder.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if !found.RemindTime().Equal(model.NormalizeTime(remindTime)) {
					t.Errorf("found.RemindTime(): expected %v, got %v", model.NormalizeTime(remindTime), found.RemindTime())
				}

				if e, g := model.ReminderTypeWater, found.Type(); e != g {
					t.Errorf("found.Type(): expected %v, got %v", e, g)
				}

				kind := model.ReminderTypeFertilization
				updated, err := store.UpdateReminder(ctx, reminder.ID(), port.ReminderUpdates{Type: &kind})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := kind, updated.Type(); e != g {
					t.Errorf("updated.Type(): expected %v, got %v", e, g)
				}

				if e, g := "Water the plant", updated.Notes(); e != g {
					t.Errorf("updated.Notes(): expected %v, got %v", e, g)
				}

				if !updated.RemindTime().Equal(found.RemindTime()) {
					t.Errorf("updated.RemindTime(): expected %v, got %v", found.RemindTime(), updated.RemindTime())
				}

				unknownPlant := model.NewPlantID()
				if _, err := store.UpdateReminder(ctx, reminder.ID(), port.ReminderUpdates{PlantID: &unknownPlant}); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("UpdateReminder(unknown plant): expected port.ErrNotFound, got %+v", err)
				}

				if _, err := store.UpdateReminder(ctx, model.NewReminderID(), port.ReminderUpdates{Type: &kind}); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("UpdateReminder(unknown): expected port.ErrNotFound, got %+v", err)
				}

				if err := store.DeleteReminder(ctx, model.NewReminderID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("DeleteReminder(unknown): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "QueryReminders",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				alice := mustCreateUser(t, ctx, store, "alice@example.com", false)
				bob := mustCreateUser(t, ctx, store, "bob@example.com", false)

				alicePlant, err := store.CreatePlant(ctx, model.NewPlant(alice.ID(), samplePlantAttributes("Tomato")))
				if err != nil {
					return errors.WithStack(err)
				}

				bobPlant, err := store.CreatePlant(ctx, model.NewPlant(bob.ID(), samplePlantAttributes("Carrot")))
				if err != nil {
					return errors.WithStack(err)
				}

				now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

				fixtures := []struct {
					Plant model.PlantID
					At    time.Time
				}{
					{alicePlant.ID(), now.Add(-time.Hour)},
					{bobPlant.ID(), now.Add(-time.Second)},
					{alicePlant.ID(), now},
					{bobPlant.ID(), now.Add(time.Millisecond)},
					{alicePlant.ID(), now.Add(24 * time.Hour)},
				}

				for _, f := range fixtures {
					if _, err := store.CreateReminder(ctx, model.NewReminder(f.Plant, model.ReminderTypeWater, f.At, "")); err != nil {
						return errors.WithStack(err)
					}
				}

				due, total, err := store.QueryReminders(ctx, port.QueryRemindersOptions{DueAt: &now})
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("due: %s", spew.Sdump(due))

				if e, g := int64(3), total; e != g {
					t.Errorf("due total: expected %d, got %d", e, g)
				}

				for _, r := range due {
					if r.RemindTime().After(now) {
						t.Errorf("reminder %s is not due at %v", r.ID(), now)
					}
				}

				aliceID := alice.ID()
				owned, total, err := store.QueryReminders(ctx, port.QueryRemindersOptions{PlantOwnerID: &aliceID})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(3), total; e != g {
					t.Errorf("owned total: expected %d, got %d", e, g)
				}

				for _, r := range owned {
					if e, g := alicePlant.ID(), r.PlantID(); e != g {
						t.Errorf("r.PlantID(): expected %v, got %v", e, g)
					}
				}

				bobPlantID := bobPlant.ID()
				limit := 1
				byPlant, total, err := store.QueryReminders(ctx, port.QueryRemindersOptions{
					PlantID: &bobPlantID,
					Page:    port.Page{Skip: 1, Limit: &limit},
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(2), total; e != g {
					t.Errorf("byPlant total: expected %d, got %d", e, g)
				}

				if e, g := 1, len(byPlant); e != g {
					t.Fatalf("len(byPlant): expected %d, got %d", e, g)
				}

				if !byPlant[0].RemindTime().Equal(now.Add(time.Millisecond)) {
					t.Errorf("byPlant[0].RemindTime(): expected %v, got %v", now.Add(time.Millisecond), byPlant[0].RemindTime())
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t)
			if err != nil {
				t.Fatalf("could not create store: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}

func mustCreateUser(t *testing.T, ctx context.Context, store port.UserStore, email string, superuser bool) model.User {
	user := model.NewUser(email, email, superuser)

	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("could not save user: %+v", errors.WithStack(err))
	}

	return user
}

func samplePlantAttributes(name string) model.PlantAttributes {
	return model.PlantAttributes{
		Name:           name,
		Cultivar:       "Cherry",
		Quantity:       10,
		Date:           time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		Location:       "Garden",
		DaysToGerm:     7,
		DaysToMaturity: 60,
		Notes:          "Needs full sun",
		PlantingDepth:  "1 inch",
		Spacing:        "2 feet",
		LifeCycle:      model.LifeCycleAnnual,
	}
}

func assertPlantAttributes(t *testing.T, expected, got model.PlantAttributes) {
	t.Helper()

	if !expected.Date.Equal(got.Date) {
		t.Errorf("Date: expected %v, got %v", expected.Date, got.Date)
	}

	expected.Date = time.Time{}
	got.Date = time.Time{}

	if expected != got {
		t.Errorf("attributes: expected %s, got %s", spew.Sdump(expected), spew.Sdump(got))
	}
}
