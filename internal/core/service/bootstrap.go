package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

const bootstrapTokenLabel = "bootstrap"

type BootstrapperOptions struct {
	SuperuserEmail string
	SuperuserToken string
	SampleData     bool
	Now            func() time.Time
}

type BootstrapperOptionFunc func(opts *BootstrapperOptions)

func WithBootstrapperSuperuser(email string, token string) BootstrapperOptionFunc {
	return func(opts *BootstrapperOptions) {
		opts.SuperuserEmail = email
		opts.SuperuserToken = token
	}
}

func WithBootstrapperSampleData(enabled bool) BootstrapperOptionFunc {
	return func(opts *BootstrapperOptions) {
		opts.SampleData = enabled
	}
}

func WithBootstrapperClock(now func() time.Time) BootstrapperOptionFunc {
	return func(opts *BootstrapperOptions) {
		opts.Now = now
	}
}

func NewBootstrapperOptions(funcs ...BootstrapperOptionFunc) *BootstrapperOptions {
	opts := &BootstrapperOptions{
		SuperuserEmail: "admin@example.com",
		SampleData:     true,
		Now:            time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// Bootstrapper seeds a fresh store with a superuser and, optionally, a
// small sample garden. Running it again is a no-op.
type Bootstrapper struct {
	users     *UserManager
	plants    *PlantManager
	reminders *ReminderManager
	store     port.Store
	opts      *BootstrapperOptions
}

func (b *Bootstrapper) Bootstrap(ctx context.Context) (model.User, error) {
	superuser, _, err := b.users.Provision(ctx, b.opts.SuperuserEmail, "", true)
	if err != nil {
		return nil, errors.Wrap(err, "could not provision superuser")
	}

	if b.opts.SuperuserToken != "" {
		if err := b.ensureToken(ctx, superuser, b.opts.SuperuserToken); err != nil {
			return nil, errors.Wrap(err, "could not create superuser token")
		}
	}

	if !b.opts.SampleData {
		return superuser, nil
	}

	if err := b.seedPlants(ctx, superuser); err != nil {
		return nil, errors.Wrap(err, "could not seed plants")
	}

	if err := b.seedReminders(ctx, superuser); err != nil {
		return nil, errors.Wrap(err, "could not seed reminders")
	}

	return superuser, nil
}

func (b *Bootstrapper) ensureToken(ctx context.Context, owner model.User, value string) error {
	existing, err := b.store.FindAuthToken(ctx, value)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return errors.WithStack(err)
	}

	if existing != nil {
		if existing.Owner().ID() != owner.ID() {
			return errors.Wrap(port.ErrConflict, "token is already bound to another user")
		}

		return nil
	}

	if _, err := b.users.IssueToken(ctx, owner, bootstrapTokenLabel, value); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Bootstrapper) seedPlants(ctx context.Context, owner model.User) error {
	limit := 0
	_, total, err := b.store.QueryPlants(ctx, port.QueryPlantsOptions{Page: port.Page{Limit: &limit}})
	if err != nil {
		return errors.WithStack(err)
	}

	if total > 0 {
		return nil
	}

	for _, payload := range samplePlants() {
		plant, err := b.plants.Create(ctx, owner, payload)
		if err != nil {
			return errors.WithStack(err)
		}

		slog.InfoContext(ctx, "sample plant created", slog.String("plant_id", string(plant.ID())), slog.String("name", plant.Name()))
	}

	return nil
}

func (b *Bootstrapper) seedReminders(ctx context.Context, owner model.User) error {
	limit := 0
	_, total, err := b.store.QueryReminders(ctx, port.QueryRemindersOptions{Page: port.Page{Limit: &limit}})
	if err != nil {
		return errors.WithStack(err)
	}

	if total > 0 {
		return nil
	}

	plants, _, err := b.plants.List(ctx, owner, ListOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	remindTime := b.opts.Now().Add(24 * time.Hour)

	for _, p := range plants {
		reminder, err := b.reminders.Create(ctx, owner, ReminderCreate{
			PlantID:    p.ID(),
			Type:       model.ReminderTypeWater,
			RemindTime: remindTime,
			Notes:      "Water " + p.Name(),
		})
		if err != nil {
			return errors.WithStack(err)
		}

		slog.InfoContext(ctx, "sample reminder created", slog.String("reminder_id", string(reminder.ID())), slog.String("plant_id", string(p.ID())))
	}

	return nil
}

func samplePlants() []PlantCreate {
	return []PlantCreate{
		{
			Name:           "Tomato",
			Cultivar:       "Cherry",
			Quantity:       10,
			Date:           time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC),
			Location:       "Garden",
			DaysToGerm:     7,
			DaysToMaturity: 60,
			Notes:          "Needs full sun",
			PlantingDepth:  "1 inch",
			Spacing:        "2 feet",
			LifeCycle:      model.LifeCycleAnnual,
		},
		{
			Name:           "Carrot",
			Cultivar:       "Nantes",
			Quantity:       20,
			Date:           time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			Location:       "Garden",
			DaysToGerm:     10,
			DaysToMaturity: 70,
			Notes:          "Needs loose soil",
			PlantingDepth:  "1/2 inch",
			Spacing:        "3 inches",
			LifeCycle:      model.LifeCycleBiennial,
		},
	}
}

func NewBootstrapper(store port.Store, funcs ...BootstrapperOptionFunc) *Bootstrapper {
	opts := NewBootstrapperOptions(funcs...)
	return &Bootstrapper{
		users:     NewUserManager(store),
		plants:    NewPlantManager(store),
		reminders: NewReminderManager(store, store),
		store:     store,
		opts:      opts,
	}
}
