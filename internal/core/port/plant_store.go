package port

import (
	"context"
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

// DeletePolicy decides what happens to the reminders of a deleted plant.
type DeletePolicy string

const (
	// DeletePolicyOrphan leaves dependent reminders in place.
	DeletePolicyOrphan DeletePolicy = "orphan"
	// DeletePolicyCascade deletes dependent reminders with the plant.
	DeletePolicyCascade DeletePolicy = "cascade"
	// DeletePolicyRestrict refuses the deletion with ErrConflict while dependents exist.
	DeletePolicyRestrict DeletePolicy = "restrict"
)

func (p DeletePolicy) Valid() bool {
	switch p {
	case DeletePolicyOrphan, DeletePolicyCascade, DeletePolicyRestrict:
		return true
	default:
		return false
	}
}

type PlantStore interface {
	// CreatePlant persists a new plant. It returns ErrNotFound if the owner does not exist.
	CreatePlant(ctx context.Context, plant model.Plant) (model.PersistedPlant, error)

	// GetPlantByID finds a plant by its ID, or returns ErrNotFound if not found
	GetPlantByID(ctx context.Context, id model.PlantID) (model.PersistedPlant, error)

	// QueryPlants returns a page of plants in insertion order and the total
	// number of plants matching the filters
	QueryPlants(ctx context.Context, opts QueryPlantsOptions) ([]model.PersistedPlant, int64, error)

	// UpdatePlant applies the non-nil fields of updates to the plant
	UpdatePlant(ctx context.Context, id model.PlantID, updates PlantUpdates) (model.PersistedPlant, error)

	// DeletePlant deletes a plant, handling its reminders according to policy
	DeletePlant(ctx context.Context, id model.PlantID, policy DeletePolicy) error
}

type QueryPlantsOptions struct {
	Page

	// Filters

	// Plants owned by this user
	OwnerID *model.UserID
}

type PlantUpdates struct {
	Name           *string
	Cultivar       *string
	Quantity       *int
	Date           *time.Time
	Location       *string
	DaysToGerm     *int
	DaysToMaturity *int
	Notes          *string
	PlantingDepth  *string
	Spacing        *string
	LifeCycle      *model.LifeCycle
}

// Apply overwrites the attributes for which an update is defined.
func (u PlantUpdates) Apply(attrs *model.PlantAttributes) {
	if u.Name != nil {
		attrs.Name = *u.Name
	}
	if u.Cultivar != nil {
		attrs.Cultivar = *u.Cultivar
	}
	if u.Quantity != nil {
		attrs.Quantity = *u.Quantity
	}
	if u.Date != nil {
		attrs.Date = *u.Date
	}
	if u.Location != nil {
		attrs.Location = *u.Location
	}
	if u.DaysToGerm != nil {
		attrs.DaysToGerm = *u.DaysToGerm
	}
	if u.DaysToMaturity != nil {
		attrs.DaysToMaturity = *u.DaysToMaturity
	}
	if u.Notes != nil {
		attrs.Notes = *u.Notes
	}
	if u.PlantingDepth != nil {
		attrs.PlantingDepth = *u.PlantingDepth
	}
	if u.Spacing != nil {
		attrs.Spacing = *u.Spacing
	}
	if u.LifeCycle != nil {
		attrs.LifeCycle = *u.LifeCycle
	}
}
