package gorm

import (
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

type Plant struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner   *User
	OwnerID string `gorm:"index;not null"`

	Name           string `gorm:"index"`
	Cultivar       string
	Quantity       int
	Date           string
	Location       string
	DaysToGerm     int
	DaysToMaturity int
	Notes          string
	PlantingDepth  string
	Spacing        string
	LifeCycle      string
}

type wrappedPlant struct {
	p *Plant
}

// CreatedAt implements [model.PersistedPlant].
func (w *wrappedPlant) CreatedAt() time.Time {
	return w.p.CreatedAt
}

// UpdatedAt implements [model.PersistedPlant].
func (w *wrappedPlant) UpdatedAt() time.Time {
	return w.p.UpdatedAt
}

// ID implements [model.PersistedPlant].
func (w *wrappedPlant) ID() model.PlantID {
	return model.PlantID(w.p.ID)
}

// OwnerID implements [model.PersistedPlant].
func (w *wrappedPlant) OwnerID() model.UserID {
	return model.UserID(w.p.OwnerID)
}

// Name implements [model.PersistedPlant].
func (w *wrappedPlant) Name() string {
	return w.p.Name
}

// Cultivar implements [model.PersistedPlant].
func (w *wrappedPlant) Cultivar() string {
	return w.p.Cultivar
}

// Quantity implements [model.PersistedPlant].
func (w *wrappedPlant) Quantity() int {
	return w.p.Quantity
}

// Date implements [model.PersistedPlant].
func (w *wrappedPlant) Date() time.Time {
	if w.p.Date == "" {
		return time.Time{}
	}

	date, err := time.Parse(time.DateOnly, w.p.Date)
	if err != nil {
		return time.Time{}
	}

	return date
}

// Location implements [model.PersistedPlant].
func (w *wrappedPlant) Location() string {
	return w.p.Location
}

// DaysToGerm implements [model.PersistedPlant].
func (w *wrappedPlant) DaysToGerm() int {
	return w.p.DaysToGerm
}

// DaysToMaturity implements [model.PersistedPlant].
func (w *wrappedPlant) DaysToMaturity() int {
	return w.p.DaysToMaturity
}

// Notes implements [model.PersistedPlant].
func (w *wrappedPlant) Notes() string {
	return w.p.Notes
}

// PlantingDepth implements [model.PersistedPlant].
func (w *wrappedPlant) PlantingDepth() string {
	return w.p.PlantingDepth
}

// Spacing implements [model.PersistedPlant].
func (w *wrappedPlant) Spacing() string {
	return w.p.Spacing
}

// LifeCycle implements [model.PersistedPlant].
func (w *wrappedPlant) LifeCycle() model.LifeCycle {
	return model.LifeCycle(w.p.LifeCycle)
}

var _ model.PersistedPlant = &wrappedPlant{}

func fromPlant(p model.Plant) *Plant {
	plant := &Plant{
		ID:      string(p.ID()),
		OwnerID: string(p.OwnerID()),
	}

	setPlantAttributes(plant, model.PlantAttributesOf(p))

	return plant
}

func setPlantAttributes(plant *Plant, attrs model.PlantAttributes) {
	plant.Name = attrs.Name
	plant.Cultivar = attrs.Cultivar
	plant.Quantity = attrs.Quantity
	plant.Location = attrs.Location
	plant.DaysToGerm = attrs.DaysToGerm
	plant.DaysToMaturity = attrs.DaysToMaturity
	plant.Notes = attrs.Notes
	plant.PlantingDepth = attrs.PlantingDepth
	plant.Spacing = attrs.Spacing
	plant.LifeCycle = string(attrs.LifeCycle)

	plant.Date = ""
	if !attrs.Date.IsZero() {
		plant.Date = attrs.Date.Format(time.DateOnly)
	}
}
