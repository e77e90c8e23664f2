package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/adapter/memory"
	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/service"
	"github.com/bornholm/garden/internal/http/middleware/authn"
	"github.com/bornholm/garden/internal/http/middleware/authn/token"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

const (
	tokenU1        = "u1-token"
	tokenU2        = "u2-token"
	tokenSuperuser = "superuser-token"
	tokenInactive  = "inactive-token"
)

type testServer struct {
	Handler http.Handler
	History *memory.ReportHistory
	U1      model.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	users := service.NewUserManager(store)

	provision := func(email string, superuser bool, value string) model.User {
		user, _, err := users.Provision(ctx, email, "", superuser)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if _, err := users.IssueToken(ctx, user, "test", value); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		return user
	}

	u1 := provision("u1@example.com", false, tokenU1)
	provision("u2@example.com", false, tokenU2)
	provision("admin@example.com", true, tokenSuperuser)

	inactive := model.NewUser("inactive@example.com", "Inactive", false)
	inactive.SetActive(false)
	if err := store.SaveUser(ctx, inactive); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if _, err := users.IssueToken(ctx, inactive, "test", tokenInactive); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	history := memory.NewReportHistory(5)

	handler := NewHandler(
		service.NewPlantManager(store),
		service.NewReminderManager(store, store),
		history,
	)

	return &testServer{
		Handler: authn.Middleware(authn.Unauthorized, token.NewAuthenticator(users))(handler),
		History: history,
		U1:      u1,
	}
}

func (s *testServer) do(t *testing.T, method string, path string, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buff bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buff.WriteString(raw)
		} else if err := json.NewEncoder(&buff).Encode(body); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	req := httptest.NewRequest(method, path, &buff)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res := httptest.NewRecorder()
	s.Handler.ServeHTTP(res, req)

	return res
}

func decode[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(res.Body.Bytes(), &value); err != nil {
		t.Fatalf("could not decode response '%s': %+v", res.Body.String(), errors.WithStack(err))
	}

	return value
}

func expectStatus(t *testing.T, res *httptest.ResponseRecorder, status int) {
	t.Helper()

	if e, g := status, res.Code; e != g {
		t.Fatalf("res.Code: expected %v, got %v (body: %s)", e, g, res.Body.String())
	}
}

func (s *testServer) createPlant(t *testing.T, bearer string, name string) Plant {
	t.Helper()

	res := s.do(t, http.MethodPost, "/plants", bearer, map[string]any{
		"name":       name,
		"quantity":   5,
		"date":       "2025-03-13",
		"life_cycle": "annual",
	})
	expectStatus(t, res, http.StatusOK)

	return decode[Plant](t, res)
}

func TestHandlerPlants(t *testing.T) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, s *testServer)
	}

	testCases := []testCase{
		{
			Name: "Anonymous request",
			Run: func(t *testing.T, s *testServer) {
				res := s.do(t, http.MethodGet, "/plants", "", nil)
				expectStatus(t, res, http.StatusUnauthorized)

				res = s.do(t, http.MethodGet, "/plants", "unknown-token", nil)
				expectStatus(t, res, http.StatusUnauthorized)
			},
		},
		{
			Name: "Inactive user",
			Run: func(t *testing.T, s *testServer) {
				res := s.do(t, http.MethodGet, "/plants", tokenInactive, nil)
				expectStatus(t, res, http.StatusForbidden)
			},
		},
		{
			Name: "Create and get",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")

				if e, g := string(s.U1.ID()), plant.OwnerID; e != g {
					t.Errorf("plant.OwnerID: expected %v, got %v", e, g)
				}

				res := s.do(t, http.MethodGet, "/plants/"+plant.ID, tokenU1, nil)
				expectStatus(t, res, http.StatusOK)

				var raw map[string]any
				if err := json.Unmarshal(res.Body.Bytes(), &raw); err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "2025-03-13", raw["date"]; e != g {
					t.Errorf("raw[\"date\"]: expected %v, got %v", e, g)
				}

				if e, g := "Tomato", raw["name"]; e != g {
					t.Errorf("raw[\"name\"]: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "Invalid payload",
			Run: func(t *testing.T, s *testServer) {
				res := s.do(t, http.MethodPost, "/plants", tokenU1, map[string]any{"quantity": -1})
				expectStatus(t, res, http.StatusUnprocessableEntity)

				body := decode[ErrorResponse](t, res)

				if _, exists := body.Fields["name"]; !exists {
					t.Errorf("expected 'name' field error, got %s", spew.Sdump(body))
				}

				if _, exists := body.Fields["quantity"]; !exists {
					t.Errorf("expected 'quantity' field error, got %s", spew.Sdump(body))
				}

				res = s.do(t, http.MethodPost, "/plants", tokenU1, "{not json")
				expectStatus(t, res, http.StatusUnprocessableEntity)
			},
		},
		{
			Name: "Foreign plant",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")

				for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
					res := s.do(t, method, "/plants/"+plant.ID, tokenU2, map[string]any{"name": "Stolen"})
					expectStatus(t, res, http.StatusForbidden)

					if e, g := detailForbidden, decode[ErrorResponse](t, res).Detail; e != g {
						t.Errorf("%s: detail: expected %v, got %v", method, e, g)
					}
				}

				res := s.do(t, http.MethodGet, "/plants/"+plant.ID, tokenSuperuser, nil)
				expectStatus(t, res, http.StatusOK)
			},
		},
		{
			Name: "Unknown plant",
			Run: func(t *testing.T, s *testServer) {
				res := s.do(t, http.MethodGet, "/plants/unknown", tokenU1, nil)
				expectStatus(t, res, http.StatusNotFound)

				if e, g := detailPlantNotFound, decode[ErrorResponse](t, res).Detail; e != g {
					t.Errorf("detail: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "List scoped by owner",
			Run: func(t *testing.T, s *testServer) {
				s.createPlant(t, tokenU1, "Tomato")
				s.createPlant(t, tokenU1, "Carrot")
				s.createPlant(t, tokenU2, "Basil")

				res := s.do(t, http.MethodGet, "/plants", tokenU1, nil)
				expectStatus(t, res, http.StatusOK)

				list := decode[ListResponse[Plant]](t, res)

				if e, g := int64(2), list.Count; e != g {
					t.Errorf("list.Count: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodGet, "/plants?skip=1&limit=1", tokenSuperuser, nil)
				expectStatus(t, res, http.StatusOK)

				list = decode[ListResponse[Plant]](t, res)

				if e, g := int64(3), list.Count; e != g {
					t.Errorf("list.Count: expected %v, got %v", e, g)
				}

				if e, g := 1, len(list.Data); e != g {
					t.Fatalf("len(list.Data): expected %v, got %v", e, g)
				}

				if e, g := "Carrot", list.Data[0].Name; e != g {
					t.Errorf("list.Data[0].Name: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "Update and delete",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")

				res := s.do(t, http.MethodPut, "/plants/"+plant.ID, tokenU1, map[string]any{"quantity": 12, "date": "2025-04-01"})
				expectStatus(t, res, http.StatusOK)

				updated := decode[Plant](t, res)

				if e, g := 12, updated.Quantity; e != g {
					t.Errorf("updated.Quantity: expected %v, got %v", e, g)
				}

				if e, g := "Tomato", updated.Name; e != g {
					t.Errorf("updated.Name: expected %v, got %v", e, g)
				}

				if e, g := "2025-04-01", updated.Date.Format(time.DateOnly); e != g {
					t.Errorf("updated.Date: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodDelete, "/plants/"+plant.ID, tokenU1, nil)
				expectStatus(t, res, http.StatusOK)

				if e, g := "Plant deleted successfully", decode[MessageResponse](t, res).Message; e != g {
					t.Errorf("message: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodGet, "/plants/"+plant.ID, tokenU1, nil)
				expectStatus(t, res, http.StatusNotFound)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.Run(t, newTestServer(t))
		})
	}
}

func TestHandlerReminders(t *testing.T) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, s *testServer)
	}

	remindTime := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	createReminder := func(t *testing.T, s *testServer, bearer string, plantID string) Reminder {
		t.Helper()

		res := s.do(t, http.MethodPost, "/reminders", bearer, map[string]any{
			"plant_id":      plantID,
			"reminder_type": "water",
			"remind_time":   remindTime.Format(time.RFC3339),
		})
		expectStatus(t, res, http.StatusOK)

		return decode[Reminder](t, res)
	}

	testCases := []testCase{
		{
			Name: "Lifecycle",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")
				reminder := createReminder(t, s, tokenU1, plant.ID)

				if !reminder.RemindTime.Equal(remindTime) {
					t.Errorf("reminder.RemindTime: expected %v, got %v", remindTime, reminder.RemindTime)
				}

				res := s.do(t, http.MethodPut, "/reminders/"+reminder.ID, tokenU1, map[string]any{"notes": "morning"})
				expectStatus(t, res, http.StatusOK)

				if e, g := "morning", decode[Reminder](t, res).Notes; e != g {
					t.Errorf("notes: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodGet, "/reminders", tokenU1, nil)
				expectStatus(t, res, http.StatusOK)

				if e, g := int64(1), decode[ListResponse[Reminder]](t, res).Count; e != g {
					t.Errorf("count: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodDelete, "/reminders/"+reminder.ID, tokenU1, nil)
				expectStatus(t, res, http.StatusOK)

				if e, g := "Reminder deleted successfully", decode[MessageResponse](t, res).Message; e != g {
					t.Errorf("message: expected %v, got %v", e, g)
				}

				res = s.do(t, http.MethodGet, "/reminders/"+reminder.ID, tokenU1, nil)
				expectStatus(t, res, http.StatusNotFound)

				if e, g := detailReminderNotFound, decode[ErrorResponse](t, res).Detail; e != g {
					t.Errorf("detail: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "Foreign plant",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")

				res := s.do(t, http.MethodPost, "/reminders", tokenU2, map[string]any{
					"plant_id":      plant.ID,
					"reminder_type": "water",
					"remind_time":   remindTime.Format(time.RFC3339),
				})
				expectStatus(t, res, http.StatusForbidden)

				reminder := createReminder(t, s, tokenU1, plant.ID)

				res = s.do(t, http.MethodGet, "/reminders/"+reminder.ID, tokenU2, nil)
				expectStatus(t, res, http.StatusForbidden)
			},
		},
		{
			Name: "Unknown plant",
			Run: func(t *testing.T, s *testServer) {
				res := s.do(t, http.MethodPost, "/reminders", tokenU1, map[string]any{
					"plant_id":      "unknown",
					"reminder_type": "water",
					"remind_time":   remindTime.Format(time.RFC3339),
				})
				expectStatus(t, res, http.StatusNotFound)

				if e, g := detailPlantNotFound, decode[ErrorResponse](t, res).Detail; e != g {
					t.Errorf("detail: expected %v, got %v", e, g)
				}

				plant := s.createPlant(t, tokenU1, "Tomato")
				reminder := createReminder(t, s, tokenU1, plant.ID)

				res = s.do(t, http.MethodPut, "/reminders/"+reminder.ID, tokenU1, map[string]any{"plant_id": "unknown"})
				expectStatus(t, res, http.StatusNotFound)

				if e, g := detailPlantNotFound, decode[ErrorResponse](t, res).Detail; e != g {
					t.Errorf("detail: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "Missing remind time",
			Run: func(t *testing.T, s *testServer) {
				plant := s.createPlant(t, tokenU1, "Tomato")

				res := s.do(t, http.MethodPost, "/reminders", tokenU1, map[string]any{
					"plant_id":      plant.ID,
					"reminder_type": "water",
				})
				expectStatus(t, res, http.StatusUnprocessableEntity)

				body := decode[ErrorResponse](t, res)
				if _, exists := body.Fields["remind_time"]; !exists {
					t.Errorf("expected 'remind_time' field error, got %s", spew.Sdump(body))
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.Run(t, newTestServer(t))
		})
	}
}

func TestHandlerLastScan(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodGet, "/scanner/last", tokenU1, nil)
	expectStatus(t, res, http.StatusForbidden)

	res = s.do(t, http.MethodGet, "/scanner/last", tokenSuperuser, nil)
	expectStatus(t, res, http.StatusNotFound)

	scannedAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	report := &model.DueReport{
		ScanID:    model.NewScanID(),
		ScannedAt: scannedAt,
		Entries: []model.DueEntry{
			{
				ReminderID: model.NewReminderID(),
				Type:       model.ReminderTypeWater,
				PlantID:    model.NewPlantID(),
				RemindTime: scannedAt.Add(-2 * time.Hour),
				Overdue:    2 * time.Hour,
			},
		},
	}

	if err := s.History.Report(context.Background(), report); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	res = s.do(t, http.MethodGet, "/scanner/last", tokenSuperuser, nil)
	expectStatus(t, res, http.StatusOK)

	last := decode[ScanReport](t, res)

	if e, g := string(report.ScanID), last.ScanID; e != g {
		t.Errorf("last.ScanID: expected %v, got %v", e, g)
	}

	if e, g := 1, len(last.Entries); e != g {
		t.Fatalf("len(last.Entries): expected %v, got %v", e, g)
	}

	if e, g := "2h0m0s", last.Entries[0].Overdue; e != g {
		t.Errorf("last.Entries[0].Overdue: expected %v, got %v", e, g)
	}
}
