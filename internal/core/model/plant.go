package model

import (
	"time"

	"github.com/rs/xid"
)

type PlantID string

func NewPlantID() PlantID {
	return PlantID(xid.New().String())
}

type LifeCycle string

const (
	LifeCycleUnknown   LifeCycle = ""
	LifeCycleAnnual    LifeCycle = "annual"
	LifeCycleBiennial  LifeCycle = "biennial"
	LifeCyclePerennial LifeCycle = "perennial"
)

// PlantAttributes groups the descriptive fields of a plant.
type PlantAttributes struct {
	Name           string
	Cultivar       string
	Quantity       int
	Date           time.Time
	Location       string
	DaysToGerm     int
	DaysToMaturity int
	Notes          string
	PlantingDepth  string
	Spacing        string
	LifeCycle      LifeCycle
}

// Plant is the unit of access control: every plant has exactly one owner,
// set at creation and never reassigned.
type Plant interface {
	WithID[PlantID]
	WithOwner

	Name() string
	Cultivar() string
	Quantity() int
	Date() time.Time
	Location() string
	DaysToGerm() int
	DaysToMaturity() int
	Notes() string
	PlantingDepth() string
	Spacing() string
	LifeCycle() LifeCycle
}

type PersistedPlant interface {
	Plant
	WithLifecycle
}

type BasePlant struct {
	id      PlantID
	ownerID UserID
	attrs   PlantAttributes
}

// ID implements Plant.
func (p *BasePlant) ID() PlantID {
	return p.id
}

// OwnerID implements Plant.
func (p *BasePlant) OwnerID() UserID {
	return p.ownerID
}

// Name implements Plant.
func (p *BasePlant) Name() string {
	return p.attrs.Name
}

// Cultivar implements Plant.
func (p *BasePlant) Cultivar() string {
	return p.attrs.Cultivar
}

// Quantity implements Plant.
func (p *BasePlant) Quantity() int {
	return p.attrs.Quantity
}

// Date implements Plant.
func (p *BasePlant) Date() time.Time {
	return p.attrs.Date
}

// Location implements Plant.
func (p *BasePlant) Location() string {
	return p.attrs.Location
}

// DaysToGerm implements Plant.
func (p *BasePlant) DaysToGerm() int {
	return p.attrs.DaysToGerm
}

// DaysToMaturity implements Plant.
func (p *BasePlant) DaysToMaturity() int {
	return p.attrs.DaysToMaturity
}

// Notes implements Plant.
func (p *BasePlant) Notes() string {
	return p.attrs.Notes
}

// PlantingDepth implements Plant.
func (p *BasePlant) PlantingDepth() string {
	return p.attrs.PlantingDepth
}

// Spacing implements Plant.
func (p *BasePlant) Spacing() string {
	return p.attrs.Spacing
}

// LifeCycle implements Plant.
func (p *BasePlant) LifeCycle() LifeCycle {
	return p.attrs.LifeCycle
}

// Attributes returns a copy of the plant descriptive fields.
func (p *BasePlant) Attributes() PlantAttributes {
	return p.attrs
}

var _ Plant = &BasePlant{}

func NewPlant(ownerID UserID, attrs PlantAttributes) *BasePlant {
	return NewPlantWithID(NewPlantID(), ownerID, attrs)
}

func NewPlantWithID(id PlantID, ownerID UserID, attrs PlantAttributes) *BasePlant {
	return &BasePlant{
		id:      id,
		ownerID: ownerID,
		attrs:   attrs,
	}
}

// PlantAttributesOf extracts the descriptive fields of any plant.
func PlantAttributesOf(p Plant) PlantAttributes {
	return PlantAttributes{
		Name:           p.Name(),
		Cultivar:       p.Cultivar(),
		Quantity:       p.Quantity(),
		Date:           p.Date(),
		Location:       p.Location(),
		DaysToGerm:     p.DaysToGerm(),
		DaysToMaturity: p.DaysToMaturity(),
		Notes:          p.Notes(),
		PlantingDepth:  p.PlantingDepth(),
		Spacing:        p.Spacing(),
		LifeCycle:      p.LifeCycle(),
	}
}
