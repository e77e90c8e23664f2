package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestServerHandler(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.URL.Path)
	})

	type testCase struct {
		Name         string
		BaseURL      string
		Path         string
		ExpectedCode int
		ExpectedBody string
	}

	testCases := []testCase{
		{
			Name:         "Root base url",
			BaseURL:      "/",
			Path:         "/api/v1/plants",
			ExpectedCode: http.StatusOK,
			ExpectedBody: "/plants",
		},
		{
			Name:         "Prefixed base url",
			BaseURL:      "/garden",
			Path:         "/garden/api/v1/plants",
			ExpectedCode: http.StatusOK,
			ExpectedBody: "/plants",
		},
		{
			Name:         "Exact mount",
			BaseURL:      "/",
			Path:         "/health",
			ExpectedCode: http.StatusOK,
			ExpectedBody: "",
		},
		{
			Name:         "Unknown path",
			BaseURL:      "/",
			Path:         "/unknown",
			ExpectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			server := NewServer(
				WithBaseURL(tc.BaseURL),
				WithMount("/api/v1/", echo),
				WithMount("/health", echo),
			)

			handler, err := server.Handler()
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, tc.Path, nil))

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Fatalf("res.Code: expected %v, got %v", e, g)
			}

			if tc.ExpectedCode != http.StatusOK {
				return
			}

			if e, g := tc.ExpectedBody, res.Body.String(); e != g {
				t.Errorf("res.Body: expected %v, got %v", e, g)
			}
		})
	}
}
