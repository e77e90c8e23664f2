package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/service"
	httpCtx "github.com/bornholm/garden/internal/http/context"
	"github.com/bornholm/go-x/slogx"
)

const detailPlantNotFound = "Plant not found"

type Plant struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Name           string          `json:"name"`
	Cultivar       string          `json:"cultivar"`
	Quantity       int             `json:"quantity"`
	Date           Date            `json:"date"`
	Location       string          `json:"location"`
	DaysToGerm     int             `json:"days_to_germ"`
	DaysToMaturity int             `json:"days_to_maturity"`
	Notes          string          `json:"notes"`
	PlantingDepth  string          `json:"planting_depth"`
	Spacing        string          `json:"spacing"`
	LifeCycle      model.LifeCycle `json:"life_cycle"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toPlant(p model.PersistedPlant) Plant {
	return Plant{
		ID:             string(p.ID()),
		OwnerID:        string(p.OwnerID()),
		Name:           p.Name(),
		Cultivar:       p.Cultivar(),
		Quantity:       p.Quantity(),
		Date:           Date{p.Date()},
		Location:       p.Location(),
		DaysToGerm:     p.DaysToGerm(),
		DaysToMaturity: p.DaysToMaturity(),
		Notes:          p.Notes(),
		PlantingDepth:  p.PlantingDepth(),
		Spacing:        p.Spacing(),
		LifeCycle:      p.LifeCycle(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

type CreatePlantRequest struct {
	Name           string          `json:"name"`
	Cultivar       string          `json:"cultivar"`
	Quantity       int             `json:"quantity"`
	Date           Date            `json:"date"`
	Location       string          `json:"location"`
	DaysToGerm     int             `json:"days_to_germ"`
	DaysToMaturity int             `json:"days_to_maturity"`
	Notes          string          `json:"notes"`
	PlantingDepth  string          `json:"planting_depth"`
	Spacing        string          `json:"spacing"`
	LifeCycle      model.LifeCycle `json:"life_cycle"`
}

func (req CreatePlantRequest) payload() service.PlantCreate {
	return service.PlantCreate{
		Name:           req.Name,
		Cultivar:       req.Cultivar,
		Quantity:       req.Quantity,
		Date:           req.Date.Time,
		Location:       req.Location,
		DaysToGerm:     req.DaysToGerm,
		DaysToMaturity: req.DaysToMaturity,
		Notes:          req.Notes,
		PlantingDepth:  req.PlantingDepth,
		Spacing:        req.Spacing,
		LifeCycle:      req.LifeCycle,
	}
}

type UpdatePlantRequest struct {
	Name           *string          `json:"name"`
	Cultivar       *string          `json:"cultivar"`
	Quantity       *int             `json:"quantity"`
	Date           *Date            `json:"date"`
	Location       *string          `json:"location"`
	DaysToGerm     *int             `json:"days_to_germ"`
	DaysToMaturity *int             `json:"days_to_maturity"`
	Notes          *string          `json:"notes"`
	PlantingDepth  *string          `json:"planting_depth"`
	Spacing        *string          `json:"spacing"`
	LifeCycle      *model.LifeCycle `json:"life_cycle"`
}

func (req UpdatePlantRequest) payload() service.PlantUpdate {
	payload := service.PlantUpdate{
		Name:           req.Name,
		Cultivar:       req.Cultivar,
		Quantity:       req.Quantity,
		Location:       req.Location,
		DaysToGerm:     req.DaysToGerm,
		DaysToMaturity: req.DaysToMaturity,
		Notes:          req.Notes,
		PlantingDepth:  req.PlantingDepth,
		Spacing:        req.Spacing,
		LifeCycle:      req.LifeCycle,
	}

	if req.Date != nil {
		payload.Date = &req.Date.Time
	}

	return payload
}

func (h *Handler) handleListPlants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	plants, total, err := h.plantManager.List(ctx, user, getListOptions(r.URL.Query()))
	if err != nil {
		writeError(w, r, err, detailPlantNotFound)
		return
	}

	res := ListResponse[Plant]{
		Data:  make([]Plant, 0, len(plants)),
		Count: total,
	}

	for _, p := range plants {
		res.Data = append(res.Data, toPlant(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	var req CreatePlantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	plant, err := h.plantManager.Create(ctx, user, req.payload())
	if err != nil {
		writeError(w, r, err, detailPlantNotFound)
		return
	}

	slog.InfoContext(ctx, "plant created", slog.String("plant_id", string(plant.ID())))

	writeJSON(w, r, http.StatusOK, toPlant(plant))
}

func (h *Handler) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	plantID := model.PlantID(r.PathValue("plantID"))

	plant, err := h.plantManager.Get(ctx, user, plantID)
	if err != nil {
		writeError(w, r, err, detailPlantNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlant(plant))
}

func (h *Handler) handleUpdatePlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	plantID := model.PlantID(r.PathValue("plantID"))
	ctx = slogx.WithAttrs(ctx, slog.String("plant_id", string(plantID)))

	var req UpdatePlantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	plant, err := h.plantManager.Update(ctx, user, plantID, req.payload())
	if err != nil {
		writeError(w, r.WithContext(ctx), err, detailPlantNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlant(plant))
}

func (h *Handler) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	plantID := model.PlantID(r.PathValue("plantID"))
	ctx = slogx.WithAttrs(ctx, slog.String("plant_id", string(plantID)))

	if err := h.plantManager.Delete(ctx, user, plantID); err != nil {
		writeError(w, r.WithContext(ctx), err, detailPlantNotFound)
		return
	}

	slog.InfoContext(ctx, "plant deleted")

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Plant deleted successfully"})
}
