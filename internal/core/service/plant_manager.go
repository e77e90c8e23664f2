package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type PlantCreate struct {
	Name           string          `json:"name" validate:"required,min=1,max=255"`
	Cultivar       string          `json:"cultivar" validate:"max=255"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	Date           time.Time       `json:"date"`
	Location       string          `json:"location" validate:"max=255"`
	DaysToGerm     int             `json:"days_to_germ" validate:"gte=0"`
	DaysToMaturity int             `json:"days_to_maturity" validate:"gte=0"`
	Notes          string          `json:"notes"`
	PlantingDepth  string          `json:"planting_depth" validate:"max=255"`
	Spacing        string          `json:"spacing" validate:"max=255"`
	LifeCycle      model.LifeCycle `json:"life_cycle" validate:"omitempty,oneof=annual biennial perennial"`
}

func (p PlantCreate) attributes() model.PlantAttributes {
	return model.PlantAttributes{
		Name:           p.Name,
		Cultivar:       p.Cultivar,
		Quantity:       p.Quantity,
		Date:           truncateDate(p.Date),
		Location:       p.Location,
		DaysToGerm:     p.DaysToGerm,
		DaysToMaturity: p.DaysToMaturity,
		Notes:          p.Notes,
		PlantingDepth:  p.PlantingDepth,
		Spacing:        p.Spacing,
		LifeCycle:      p.LifeCycle,
	}
}

type PlantUpdate struct {
	Name           *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Cultivar       *string          `json:"cultivar" validate:"omitnil,max=255"`
	Quantity       *int             `json:"quantity" validate:"omitnil,gte=0"`
	Date           *time.Time       `json:"date"`
	Location       *string          `json:"location" validate:"omitnil,max=255"`
	DaysToGerm     *int             `json:"days_to_germ" validate:"omitnil,gte=0"`
	DaysToMaturity *int             `json:"days_to_maturity" validate:"omitnil,gte=0"`
	Notes          *string          `json:"notes"`
	PlantingDepth  *string          `json:"planting_depth" validate:"omitnil,max=255"`
	Spacing        *string          `json:"spacing" validate:"omitnil,max=255"`
	LifeCycle      *model.LifeCycle `json:"life_cycle" validate:"omitempty,oneof=annual biennial perennial"`
}

func (p PlantUpdate) updates() port.PlantUpdates {
	updates := port.PlantUpdates{
		Name:           p.Name,
		Cultivar:       p.Cultivar,
		Quantity:       p.Quantity,
		Location:       p.Location,
		DaysToGerm:     p.DaysToGerm,
		DaysToMaturity: p.DaysToMaturity,
		Notes:          p.Notes,
		PlantingDepth:  p.PlantingDepth,
		Spacing:        p.Spacing,
		LifeCycle:      p.LifeCycle,
	}

	if p.Date != nil {
		date := truncateDate(*p.Date)
		updates.Date = &date
	}

	return updates
}

// Planting dates carry no time of day.
func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type PlantManagerOptions struct {
	MaxLimit     int
	DeletePolicy port.DeletePolicy
}

type PlantManagerOptionFunc func(opts *PlantManagerOptions)

func WithPlantManagerMaxLimit(maxLimit int) PlantManagerOptionFunc {
	return func(opts *PlantManagerOptions) {
		opts.MaxLimit = maxLimit
	}
}

func WithPlantManagerDeletePolicy(policy port.DeletePolicy) PlantManagerOptionFunc {
	return func(opts *PlantManagerOptions) {
		opts.DeletePolicy = policy
	}
}

func NewPlantManagerOptions(funcs ...PlantManagerOptionFunc) *PlantManagerOptions {
	opts := &PlantManagerOptions{
		MaxLimit:     DefaultMaxLimit,
		DeletePolicy: port.DeletePolicyOrphan,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// PlantManager exposes the plant operations on behalf of a principal.
type PlantManager struct {
	store        port.PlantStore
	maxLimit     int
	deletePolicy port.DeletePolicy
}

func (m *PlantManager) List(ctx context.Context, principal model.User, opts ListOptions) (plants []model.PersistedPlant, total int64, err error) {
	defer func() { observe(metrics.ResourcePlant, "list", err) }()

	if principal == nil {
		return nil, 0, errors.WithStack(ErrForbidden)
	}

	query := port.QueryPlantsOptions{
		Page: clampPage(opts, m.maxLimit),
	}

	if !principal.IsSuperuser() {
		ownerID := principal.ID()
		query.OwnerID = &ownerID
	}

	plants, total, err = m.store.QueryPlants(ctx, query)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return plants, total, nil
}

func (m *PlantManager) Get(ctx context.Context, principal model.User, id model.PlantID) (plant model.PersistedPlant, err error) {
	defer func() { observe(metrics.ResourcePlant, "get", err) }()

	plant, err = m.getAuthorized(ctx, principal, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return plant, nil
}

func (m *PlantManager) Create(ctx context.Context, principal model.User, payload PlantCreate) (plant model.PersistedPlant, err error) {
	defer func() { observe(metrics.ResourcePlant, "create", err) }()

	if principal == nil {
		return nil, errors.WithStack(ErrForbidden)
	}

	if err := validatePayload(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	plant, err = m.store.CreatePlant(ctx, model.NewPlant(principal.ID(), payload.attributes()))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "plant created", slog.String("plant_id", string(plant.ID())), slog.String("owner_id", string(plant.OwnerID())))

	return plant, nil
}

func (m *PlantManager) Update(ctx context.Context, principal model.User, id model.PlantID, payload PlantUpdate) (plant model.PersistedPlant, err error) {
	defer func() { observe(metrics.ResourcePlant, "update", err) }()

	if _, err := m.getAuthorized(ctx, principal, id); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := validatePayload(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	plant, err = m.store.UpdatePlant(ctx, id, payload.updates())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return plant, nil
}

func (m *PlantManager) Delete(ctx context.Context, principal model.User, id model.PlantID) (err error) {
	defer func() { observe(metrics.ResourcePlant, "delete", err) }()

	if _, err := m.getAuthorized(ctx, principal, id); err != nil {
		return errors.WithStack(err)
	}

	if err := m.store.DeletePlant(ctx, id, m.deletePolicy); err != nil {
		return errors.WithStack(err)
	}

	slog.DebugContext(ctx, "plant deleted", slog.String("plant_id", string(id)), slog.String("policy", string(m.deletePolicy)))

	return nil
}

func (m *PlantManager) getAuthorized(ctx context.Context, principal model.User, id model.PlantID) (model.PersistedPlant, error) {
	plant, err := m.store.GetPlantByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if Authorize(principal, plant.OwnerID()) == Deny {
		slog.DebugContext(
			slogx.WithAttrs(ctx, slog.String("plant_id", string(id))),
			"plant access denied",
			slog.String("principal", model.UserString(principal)),
		)
		return nil, errors.WithStack(ErrForbidden)
	}

	return plant, nil
}

func NewPlantManager(store port.PlantStore, funcs ...PlantManagerOptionFunc) *PlantManager {
	opts := NewPlantManagerOptions(funcs...)
	return &PlantManager{
		store:        store,
		maxLimit:     opts.MaxLimit,
		deletePolicy: opts.DeletePolicy,
	}
}
