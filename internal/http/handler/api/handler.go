package api

import (
	"net/http"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/service"
	"github.com/bornholm/garden/internal/http/middleware/authz"
)

// ReportSource exposes the outcome of the most recent due-reminder scan.
type ReportSource interface {
	Last() *model.DueReport
}

type Handler struct {
	plantManager    *service.PlantManager
	reminderManager *service.ReminderManager
	reports         ReportSource
	mux             *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(plantManager *service.PlantManager, reminderManager *service.ReminderManager, reports ReportSource) *Handler {
	h := &Handler{
		plantManager:    plantManager,
		reminderManager: reminderManager,
		reports:         reports,
		mux:             &http.ServeMux{},
	}

	forbidden := http.HandlerFunc(handleForbidden)

	assertUser := authz.Middleware(forbidden, authz.IsAuthenticated, authz.Active())
	assertSuperuser := authz.Middleware(forbidden, authz.IsAuthenticated, authz.Active(), authz.Superuser())

	h.mux.Handle("GET /plants", assertUser(http.HandlerFunc(h.handleListPlants)))
	h.mux.Handle("POST /plants", assertUser(http.HandlerFunc(h.handleCreatePlant)))
	h.mux.Handle("GET /plants/{plantID}", assertUser(http.HandlerFunc(h.handleGetPlant)))
	h.mux.Handle("PUT /plants/{plantID}", assertUser(http.HandlerFunc(h.handleUpdatePlant)))
	h.mux.Handle("DELETE /plants/{plantID}", assertUser(http.HandlerFunc(h.handleDeletePlant)))

	h.mux.Handle("GET /reminders", assertUser(http.HandlerFunc(h.handleListReminders)))
	h.mux.Handle("POST /reminders", assertUser(http.HandlerFunc(h.handleCreateReminder)))
	h.mux.Handle("GET /reminders/{reminderID}", assertUser(http.HandlerFunc(h.handleGetReminder)))
	h.mux.Handle("PUT /reminders/{reminderID}", assertUser(http.HandlerFunc(h.handleUpdateReminder)))
	h.mux.Handle("DELETE /reminders/{reminderID}", assertUser(http.HandlerFunc(h.handleDeleteReminder)))

	h.mux.Handle("GET /scanner/last", assertSuperuser(http.HandlerFunc(h.handleLastScan)))

	return h
}

var _ http.Handler = &Handler{}
