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

const detailReminderNotFound = "Reminder not found"

type Reminder struct {
	ID         string             `json:"id"`
	PlantID    string             `json:"plant_id"`
	Type       model.ReminderType `json:"reminder_type"`
	RemindTime time.Time          `json:"remind_time"`
	Notes      string             `json:"notes"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func toReminder(r model.PersistedReminder) Reminder {
	return Reminder{
		ID:         string(r.ID()),
		PlantID:    string(r.PlantID()),
		Type:       r.Type(),
		RemindTime: r.RemindTime(),
		Notes:      r.Notes(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

func (h *Handler) handleListReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	reminders, total, err := h.reminderManager.List(ctx, user, getListOptions(r.URL.Query()))
	if err != nil {
		writeError(w, r, err, detailReminderNotFound)
		return
	}

	res := ListResponse[Reminder]{
		Data:  make([]Reminder, 0, len(reminders)),
		Count: total,
	}

	for _, rm := range reminders {
		res.Data = append(res.Data, toReminder(rm))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	var payload service.ReminderCreate
	if err := decodeJSON(r, &payload); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	reminder, err := h.reminderManager.Create(ctx, user, payload)
	if err != nil {
		writeError(w, r, err, detailPlantNotFound)
		return
	}

	slog.InfoContext(ctx, "reminder created", slog.String("reminder_id", string(reminder.ID())))

	writeJSON(w, r, http.StatusOK, toReminder(reminder))
}

func (h *Handler) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	reminderID := model.ReminderID(r.PathValue("reminderID"))

	reminder, err := h.reminderManager.Get(ctx, user, reminderID)
	if err != nil {
		writeError(w, r, err, detailReminderNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, toReminder(reminder))
}

func (h *Handler) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	reminderID := model.ReminderID(r.PathValue("reminderID"))
	ctx = slogx.WithAttrs(ctx, slog.String("reminder_id", string(reminderID)))

	var payload service.ReminderUpdate
	if err := decodeJSON(r, &payload); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	reminder, err := h.reminderManager.Update(ctx, user, reminderID, payload)
	if err != nil {
		writeError(w, r.WithContext(ctx), err, detailReminderNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, toReminder(reminder))
}

func (h *Handler) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	reminderID := model.ReminderID(r.PathValue("reminderID"))
	ctx = slogx.WithAttrs(ctx, slog.String("reminder_id", string(reminderID)))

	if err := h.reminderManager.Delete(ctx, user, reminderID); err != nil {
		writeError(w, r.WithContext(ctx), err, detailReminderNotFound)
		return
	}

	slog.InfoContext(ctx, "reminder deleted")

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Reminder deleted successfully"})
}
