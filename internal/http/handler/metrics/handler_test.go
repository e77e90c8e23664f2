package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/garden/internal/core/model"
	httpCtx "github.com/bornholm/garden/internal/http/context"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "garden_test_total",
		Help: "Test counter",
	})
	registry.MustRegister(counter)
	counter.Inc()

	h := NewHandler(registry)

	type testCase struct {
		Name           string
		User           model.User
		ExpectedStatus int
	}

	testCases := []testCase{
		{
			Name:           "Anonymous",
			User:           nil,
			ExpectedStatus: http.StatusForbidden,
		},
		{
			Name:           "Regular user",
			User:           model.NewUser("u1@example.com", "U1", false),
			ExpectedStatus: http.StatusForbidden,
		},
		{
			Name:           "Superuser",
			User:           model.NewUser("admin@example.com", "Admin", true),
			ExpectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.User != nil {
				req = req.WithContext(httpCtx.SetUser(req.Context(), tc.User))
			}

			res := httptest.NewRecorder()
			h.ServeHTTP(res, req)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Fatalf("res.Code: expected %v, got %v", e, g)
			}

			if tc.ExpectedStatus != http.StatusOK {
				return
			}

			if !strings.Contains(res.Body.String(), "garden_test_total 1") {
				t.Errorf("expected exposition to contain the test counter, got %s", res.Body.String())
			}
		})
	}
}
