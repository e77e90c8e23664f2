package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestHandler(t *testing.T) {
	type testCase struct {
		Name           string
		Checks         []OptionFunc
		ExpectedStatus int
		ExpectedState  string
	}

	testCases := []testCase{
		{
			Name:           "No checks",
			ExpectedStatus: http.StatusOK,
			ExpectedState:  "ok",
		},
		{
			Name: "Passing check",
			Checks: []OptionFunc{
				WithCheck("database", func(ctx context.Context) error { return nil }),
			},
			ExpectedStatus: http.StatusOK,
			ExpectedState:  "ok",
		},
		{
			Name: "Failing check",
			Checks: []OptionFunc{
				WithCheck("database", func(ctx context.Context) error { return errors.New("unreachable") }),
			},
			ExpectedStatus: http.StatusServiceUnavailable,
			ExpectedState:  "degraded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			h := NewHandler(tc.Checks...)

			res := httptest.NewRecorder()
			h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Errorf("res.Code: expected %v, got %v", e, g)
			}

			var body Response
			if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedState, body.Status; e != g {
				t.Errorf("body.Status: expected %v, got %v", e, g)
			}
		})
	}
}
