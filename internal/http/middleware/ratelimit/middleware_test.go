package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	type testCase struct {
		Name string
		Run  func(t *testing.T)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	do := func(h http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		res := httptest.NewRecorder()
		h.ServeHTTP(res, req)
		return res
	}

	testCases := []testCase{
		{
			Name: "Burst exhausted",
			Run: func(t *testing.T) {
				h := Middleware(WithLimit(time.Hour, 2))(ok)

				for i := 0; i < 2; i++ {
					res := do(h, "10.0.0.1:1234", nil)
					if e, g := http.StatusNoContent, res.Code; e != g {
						t.Fatalf("res.Code: expected %v, got %v", e, g)
					}
				}

				res := do(h, "10.0.0.1:1234", nil)
				if e, g := http.StatusTooManyRequests, res.Code; e != g {
					t.Fatalf("res.Code: expected %v, got %v", e, g)
				}

				if res.Header().Get("Retry-After") == "" {
					t.Errorf("expected Retry-After header")
				}
			},
		},
		{
			Name: "Clients are limited separately",
			Run: func(t *testing.T) {
				h := Middleware(WithLimit(time.Hour, 1))(ok)

				if e, g := http.StatusNoContent, do(h, "10.0.0.1:1234", nil).Code; e != g {
					t.Fatalf("first client: expected %v, got %v", e, g)
				}

				if e, g := http.StatusNoContent, do(h, "10.0.0.2:1234", nil).Code; e != g {
					t.Fatalf("second client: expected %v, got %v", e, g)
				}
			},
		},
		{
			Name: "Forwarded headers",
			Run: func(t *testing.T) {
				h := Middleware(WithLimit(time.Hour, 1), WithTrustHeaders(true))(ok)

				headers := map[string]string{"X-Forwarded-For": "192.168.1.10, 10.0.0.1"}

				if e, g := http.StatusNoContent, do(h, "10.0.0.1:1234", headers).Code; e != g {
					t.Fatalf("res.Code: expected %v, got %v", e, g)
				}

				if e, g := http.StatusTooManyRequests, do(h, "10.0.0.9:1234", headers).Code; e != g {
					t.Fatalf("res.Code: expected %v, got %v", e, g)
				}

				if e, g := http.StatusNoContent, do(h, "10.0.0.9:1234", nil).Code; e != g {
					t.Fatalf("res.Code: expected %v, got %v", e, g)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.Run(t)
		})
	}
}
