package service

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/adapter/memory"
	"github.com/pkg/errors"
)

func TestBootstrapper(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	bootstrapper := NewBootstrapper(
		store,
		WithBootstrapperSuperuser("root@example.com", "s3cr3t"),
		WithBootstrapperClock(func() time.Time { return now }),
	)

	// Bootstrapping twice must not duplicate anything
	for i := 0; i < 2; i++ {
		superuser, err := bootstrapper.Bootstrap(ctx)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if !superuser.IsSuperuser() {
			t.Errorf("expected bootstrapped user to be a superuser")
		}

		if e, g := "root@example.com", superuser.Email(); e != g {
			t.Errorf("superuser.Email(): expected %v, got %v", e, g)
		}
	}

	principal, err := NewUserManager(store).Authenticate(ctx, "s3cr3t")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "root@example.com", principal.Email(); e != g {
		t.Errorf("principal.Email(): expected %v, got %v", e, g)
	}

	plants, total, err := NewPlantManager(store).List(ctx, principal, ListOptions{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), total; e != g {
		t.Fatalf("total plants: expected %v, got %v", e, g)
	}

	if e, g := "Tomato", plants[0].Name(); e != g {
		t.Errorf("plants[0].Name(): expected %v, got %v", e, g)
	}

	reminders, total, err := NewReminderManager(store, store).List(ctx, principal, ListOptions{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), total; e != g {
		t.Fatalf("total reminders: expected %v, got %v", e, g)
	}

	if e, g := now.Add(24*time.Hour), reminders[0].RemindTime(); !e.Equal(g) {
		t.Errorf("reminders[0].RemindTime(): expected %v, got %v", e, g)
	}
}

func TestUserManagerProvision(t *testing.T) {
	ctx := context.Background()
	users := NewUserManager(memory.NewStore())

	user, created, err := users.Provision(ctx, "gardener@example.com", "", false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !created {
		t.Errorf("expected user to be created")
	}

	if e, g := "gardener@example.com", user.DisplayName(); e != g {
		t.Errorf("user.DisplayName(): expected %v, got %v", e, g)
	}

	promoted, created, err := users.Provision(ctx, "gardener@example.com", "", true)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if created {
		t.Errorf("expected existing user to be reused")
	}

	if e, g := user.ID(), promoted.ID(); e != g {
		t.Errorf("promoted.ID(): expected %v, got %v", e, g)
	}

	if !promoted.IsSuperuser() {
		t.Errorf("expected user to be promoted")
	}

	token, err := users.IssueToken(ctx, promoted, "cli", "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if token.Value() == "" {
		t.Errorf("expected generated token value")
	}
}
